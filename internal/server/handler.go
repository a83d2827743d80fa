package server

import (
	"github.com/nhdewitt/orders-server/internal/handler"
	"github.com/nhdewitt/orders-server/internal/request"
	"github.com/nhdewitt/orders-server/internal/response"
)

// Router picks a handler for a request and returns its response together with
// the handler that produced it. *handler.Set satisfies it.
type Router interface {
	Handle(req *request.Request) (*response.Response, handler.Handler)
}
