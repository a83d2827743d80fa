package handler

import (
	"encoding/json"
	"log"

	"github.com/nhdewitt/orders-server/internal/assets"
	"github.com/nhdewitt/orders-server/internal/orders"
	"github.com/nhdewitt/orders-server/internal/request"
	"github.com/nhdewitt/orders-server/internal/response"
)

// WebServiceHandler serves the JSON API under /api. The orders document is
// re-read on every request.
type WebServiceHandler struct {
	files *assets.Loader
	store *orders.Store
}

func (h *WebServiceHandler) Name() string { return "web_service" }

func (h *WebServiceHandler) Handle(req *request.Request) *response.Response {
	route := segments(req)
	if len(route) < 3 {
		return notFound(h.files)
	}

	switch {
	case route[2] == "shipping" && len(route) > 3 && route[3] == "orders":
		return h.shippingOrders()
	default:
		return notFound(h.files)
	}
}

func (h *WebServiceHandler) shippingOrders() *response.Response {
	list, err := h.store.Load()
	if err != nil {
		log.Printf("Error loading orders: %v", err)
		return h.serverError()
	}

	body, err := json.Marshal(list)
	if err != nil {
		log.Printf("Error encoding orders: %v", err)
		return h.serverError()
	}
	contents := string(body)

	hdrs := map[string]string{contentTypeHeader: contentTypeJSON}
	return response.New(response.StatusOK, hdrs, &contents)
}

func (h *WebServiceHandler) serverError() *response.Response {
	return response.New(response.StatusInternalServerError, nil, h.files.LoadPtr(serverErrorPage))
}
