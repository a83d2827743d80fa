package handler

import (
	"strings"

	"github.com/nhdewitt/orders-server/internal/assets"
	"github.com/nhdewitt/orders-server/internal/config"
	"github.com/nhdewitt/orders-server/internal/orders"
	"github.com/nhdewitt/orders-server/internal/request"
	"github.com/nhdewitt/orders-server/internal/response"
)

const (
	indexPage         = "index.html"
	healthPage        = "health.html"
	notFoundPage      = "404.html"
	serverErrorPage   = "500.html"
	contentTypeHeader = "Content-Type"
	contentTypeJSON   = "application/json"
)

// Handler turns a request into a response. Implementations keep no state
// between calls and are safe for concurrent use.
type Handler interface {
	Handle(req *request.Request) *response.Response
	Name() string
}

// Set holds one of each handler variant, all reading from the same roots.
type Set struct {
	NotFound   *PageNotFoundHandler
	Static     *StaticPageHandler
	WebService *WebServiceHandler
}

func NewSet(cfg config.Config) *Set {
	files := assets.NewLoader(cfg.PublicPath)
	return &Set{
		NotFound:   &PageNotFoundHandler{files: files},
		Static:     &StaticPageHandler{files: files},
		WebService: &WebServiceHandler{files: files, store: orders.NewStore(cfg.DataPath)},
	}
}

// Route picks the handler for req: GET /api/... goes to the web service, any
// other GET to the static pages, everything else is not found.
func (s *Set) Route(req *request.Request) Handler {
	if req.RequestLine.Method != "GET" {
		return s.NotFound
	}
	route := segments(req)
	if len(route) > 1 && route[1] == "api" {
		return s.WebService
	}
	return s.Static
}

// Handle routes req and runs the chosen handler.
func (s *Set) Handle(req *request.Request) (*response.Response, Handler) {
	h := s.Route(req)
	return h.Handle(req), h
}

// segments splits the request path on "/". A leading slash yields an empty
// first element.
func segments(req *request.Request) []string {
	path, ok := req.Resource.(request.Path)
	if !ok {
		return nil
	}
	return strings.Split(string(path), "/")
}

func notFound(files *assets.Loader) *response.Response {
	return response.New(response.StatusNotFound, nil, files.LoadPtr(notFoundPage))
}
