package request

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nhdewitt/orders-server/internal/headers"
)

type requestState int

const (
	stateRequestLine requestState = iota
	stateHeaders
	stateDone
)

const (
	bufferSize = 8
	crlf       = "\r\n"

	// MaxHeaderBytes caps the request line and header block together.
	MaxHeaderBytes = 8 << 10
)

var (
	ErrEarlyEOF       = errors.New("early EOF")
	ErrHeaderTooLarge = errors.New("request header too large")
	ErrInvalidTarget  = errors.New("request target is not in origin-form")
)

// Resource is the request target. Path is the only variant.
type Resource interface {
	isResource()
}

// Path is an origin-form target such as /api/shipping/orders.
type Path string

func (Path) isResource() {}

type Request struct {
	RequestLine RequestLine
	Headers     headers.Headers
	Resource    Resource
	state       requestState
}

type RequestLine struct {
	HttpVersion   string
	RequestTarget string
	Method        string
}

// New builds a finished request for the given method and path.
func New(method, path string) *Request {
	return &Request{
		RequestLine: RequestLine{
			Method:        method,
			RequestTarget: path,
			HttpVersion:   "1.1",
		},
		Headers:  headers.NewHeaders(),
		Resource: Path(path),
		state:    stateDone,
	}
}

// RequestFromReader parses a request line and header block. The body, if any,
// is left unread.
func RequestFromReader(reader io.Reader) (*Request, error) {
	buf := make([]byte, bufferSize)
	readToIndex := 0
	consumed := 0

	r := Request{
		Headers: headers.NewHeaders(),
		state:   stateRequestLine,
	}

	for r.state != stateDone {
		if readToIndex == len(buf) {
			tmpBuf := make([]byte, len(buf)*2)
			copy(tmpBuf, buf[:readToIndex])
			buf = tmpBuf
		}

		n, err := reader.Read(buf[readToIndex:])
		if n > 0 {
			readToIndex += n

			bytesParsed, perr := r.parse(buf[:readToIndex])
			if perr != nil {
				return nil, perr
			}

			copy(buf, buf[bytesParsed:readToIndex])
			readToIndex -= bytesParsed
			consumed += bytesParsed

			if r.state != stateDone && consumed+readToIndex > MaxHeaderBytes {
				return nil, ErrHeaderTooLarge
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				if r.state != stateDone {
					return nil, fmt.Errorf("error parsing data: %w", ErrEarlyEOF)
				}
				break
			}
			return nil, err
		}
	}

	return &r, nil
}

// parse consumes as many complete lines from data as it can.
func (r *Request) parse(data []byte) (int, error) {
	total := 0
	for r.state != stateDone {
		n, err := r.parseOne(data[total:])
		if err != nil {
			return 0, err
		}
		if n == 0 {
			break
		}
		total += n
	}
	return total, nil
}

func (r *Request) parseOne(data []byte) (int, error) {
	switch r.state {
	case stateRequestLine:
		parsed, parsedRequest, err := parseRequestLine(data)
		if err != nil {
			return 0, fmt.Errorf("error parsing data: %w", err)
		}
		if parsed == 0 {
			return 0, nil
		}

		r.RequestLine = parsedRequest
		r.Resource = Path(parsedRequest.RequestTarget)
		r.state = stateHeaders

		return parsed, nil
	case stateHeaders:
		n, done, err := r.Headers.Parse(data)
		if err != nil {
			return 0, fmt.Errorf("error parsing headers: %w", err)
		}
		if done {
			r.state = stateDone
		}
		return n, nil
	case stateDone:
		return 0, fmt.Errorf("error: trying to read data in a done state")
	default:
		return 0, fmt.Errorf("error: unknown state")
	}
}

func parseRequestLine(req []byte) (int, RequestLine, error) {
	idx := bytes.Index(req, []byte(crlf))
	if idx == -1 {
		return 0, RequestLine{}, nil
	}
	line := string(req[:idx])
	consumed := idx + len(crlf)

	rl, err := requestLineFromString(line)
	if err != nil {
		return 0, RequestLine{}, err
	}

	return consumed, *rl, nil
}

func requestLineFromString(s string) (*RequestLine, error) {
	parts := strings.Fields(s)
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid request line: %s", s)
	}

	method := parts[0]
	for _, c := range method {
		if c < 'A' || c > 'Z' {
			return nil, fmt.Errorf("invalid method: %s", method)
		}
	}

	target := parts[1]
	if !strings.HasPrefix(target, "/") {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTarget, target)
	}

	protocol, version, ok := strings.Cut(parts[2], "/")
	if !ok || protocol != "HTTP" {
		return nil, fmt.Errorf("invalid HTTP version: %s", parts[2])
	}
	if version != "1.1" {
		return nil, fmt.Errorf("invalid HTTP version: %s", parts[2])
	}

	return &RequestLine{
		Method:        method,
		RequestTarget: target,
		HttpVersion:   version,
	}, nil
}
