package handler

import (
	"github.com/nhdewitt/orders-server/internal/assets"
	"github.com/nhdewitt/orders-server/internal/request"
	"github.com/nhdewitt/orders-server/internal/response"
)

type PageNotFoundHandler struct {
	files *assets.Loader
}

func (h *PageNotFoundHandler) Name() string { return "not_found" }

func (h *PageNotFoundHandler) Handle(_ *request.Request) *response.Response {
	return notFound(h.files)
}
