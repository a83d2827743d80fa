package response

import (
	"github.com/nhdewitt/orders-server/internal/headers"
)

// Response is produced once by a handler and then only read. Headers and Body
// are optional: nil Headers means no extra headers, nil Body means no body.
type Response struct {
	Status  StatusCode
	Headers headers.Headers
	Body    *string
}

// New copies hdrs so later changes to the caller's map do not leak into the
// response.
func New(status StatusCode, hdrs map[string]string, body *string) *Response {
	r := &Response{
		Status: status,
		Body:   body,
	}
	if hdrs != nil {
		r.Headers = headers.FromMap(hdrs)
	}
	return r
}

// Header returns the value of key, or "" if unset.
func (r *Response) Header(key string) string {
	if r.Headers == nil {
		return ""
	}
	return r.Headers.Get(key)
}

// BodyString returns the body, or "" when there is none.
func (r *Response) BodyString() string {
	if r.Body == nil {
		return ""
	}
	return *r.Body
}
