package response

// StatusCode is the three-digit status token, e.g. "200".
type StatusCode string

const (
	StatusOK                  StatusCode = "200"
	StatusBadRequest          StatusCode = "400"
	StatusNotFound            StatusCode = "404"
	StatusInternalServerError StatusCode = "500"
)

var reasonPhrases = map[StatusCode]string{
	StatusOK:                  "OK",
	StatusBadRequest:          "Bad Request",
	StatusNotFound:            "Not Found",
	StatusInternalServerError: "Internal Server Error",
}

// Reason returns the reason phrase for s, or "" for unknown codes.
func (s StatusCode) Reason() string {
	return reasonPhrases[s]
}
