package server

import (
	"fmt"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nhdewitt/orders-server/internal/handler"
	"github.com/nhdewitt/orders-server/internal/request"
	"github.com/nhdewitt/orders-server/internal/response"
)

// readTimeout bounds how long a client may take to send its request line
// and headers.
var readTimeout = 10 * time.Second

type Server struct {
	listener    net.Listener
	isListening atomic.Bool
	router      Router
	conns       sync.WaitGroup

	mu   sync.Mutex
	open map[net.Conn]struct{}
}

// Serve listens on port and handles each connection on its own goroutine.
// Port 0 picks a free port; see Addr.
func Serve(port int, router Router) (*Server, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, err
	}
	s := &Server{
		listener: listener,
		router:   router,
		open:     make(map[net.Conn]struct{}),
	}
	s.isListening.Store(true)
	s.conns.Add(1)
	go s.listen()

	return s, nil
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Close stops accepting connections, closes the ones still open and waits
// for their goroutines to return.
func (s *Server) Close() error {
	if !s.isListening.CompareAndSwap(true, false) {
		return nil
	}

	err := s.listener.Close()

	s.mu.Lock()
	for conn := range s.open {
		conn.Close()
	}
	s.mu.Unlock()

	s.conns.Wait()
	return err
}

// track registers conn, or reports false if the server is already closing.
func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isListening.Load() {
		return false
	}
	s.open[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.open, conn)
	s.mu.Unlock()
}

func (s *Server) listen() {
	defer s.conns.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !s.isListening.Load() {
				return
			}
			log.Printf("Error accepting connection: %v", err)
			continue
		}
		connectionsAccepted.Inc()

		if !s.track(conn) {
			conn.Close()
			return
		}
		s.conns.Add(1)
		go func() {
			defer s.conns.Done()
			defer s.untrack(conn)
			s.handle(conn)
		}()
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	id := uuid.NewString()
	w := response.NewWriter(conn)

	if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		log.Printf("[%s] Error setting read deadline: %v", id, err)
		return
	}
	req, err := request.RequestFromReader(conn)
	if err != nil {
		requestErrors.Inc()
		log.Printf("[%s] Error parsing request from %s: %v", id, conn.RemoteAddr(), err)
		if werr := w.WriteResponse(response.New(response.StatusBadRequest, nil, nil)); werr != nil {
			log.Printf("[%s] Error writing response: %v", id, werr)
		}
		return
	}

	start := time.Now()
	resp, name := s.dispatch(id, req)
	elapsed := time.Since(start)

	handleDurations.WithLabelValues(name).Observe(elapsed.Seconds())
	responsesWritten.WithLabelValues(name, string(resp.Status)).Inc()
	log.Printf("[%s] %s %s -> %s (%s, %s)", id, req.RequestLine.Method, req.RequestLine.RequestTarget, resp.Status, name, elapsed)

	if err := w.WriteResponse(resp); err != nil {
		log.Printf("[%s] Error writing response: %v", id, err)
	}
}

// dispatch runs the router, turning a handler panic into a 500.
func (s *Server) dispatch(id string, req *request.Request) (resp *response.Response, name string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[%s] Handler panic: %v", id, r)
			resp = response.New(response.StatusInternalServerError, nil, nil)
			name = "panic"
		}
	}()

	var h handler.Handler
	resp, h = s.router.Handle(req)
	return resp, h.Name()
}
