package handler

import (
	"github.com/nhdewitt/orders-server/internal/assets"
	"github.com/nhdewitt/orders-server/internal/request"
	"github.com/nhdewitt/orders-server/internal/response"
)

// StaticPageHandler serves files from the public root. Only the first path
// segment is looked at, so /style.css/extra serves style.css.
type StaticPageHandler struct {
	files *assets.Loader
}

func (h *StaticPageHandler) Name() string { return "static" }

func (h *StaticPageHandler) Handle(req *request.Request) *response.Response {
	route := segments(req)
	if len(route) < 2 {
		return notFound(h.files)
	}

	switch route[1] {
	case "":
		return response.New(response.StatusOK, nil, h.files.LoadPtr(indexPage))
	case "health":
		return response.New(response.StatusOK, nil, h.files.LoadPtr(healthPage))
	default:
		contents, ok := h.files.Load(route[1])
		if !ok {
			return notFound(h.files)
		}
		hdrs := map[string]string{contentTypeHeader: assets.ContentType(contents)}
		return response.New(response.StatusOK, hdrs, &contents)
	}
}
