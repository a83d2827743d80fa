package response

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/nhdewitt/orders-server/internal/headers"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type writerState int

const (
	StateWritingStatusLine writerState = iota
	StateWritingHeaders
	StateWritingBody
	StateDone
)

var errOutOfOrder = errors.New("writer state out-of-order")

type Writer struct {
	writer io.Writer
	state  writerState
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		writer: w,
		state:  StateWritingStatusLine,
	}
}

func (w *Writer) WriteStatusLine(statusCode StatusCode) error {
	if w.state != StateWritingStatusLine {
		return errOutOfOrder
	}

	line := "HTTP/1.1 " + string(statusCode)
	if reason := statusCode.Reason(); reason != "" {
		line += " " + reason
	}
	if _, err := io.WriteString(w.writer, line+"\r\n"); err != nil {
		return fmt.Errorf("error writing status line: %w", err)
	}

	w.state = StateWritingHeaders
	return nil
}

// WriteHeaders writes h in sorted key order so identical responses serialize
// to identical bytes.
func (w *Writer) WriteHeaders(h headers.Headers) error {
	if w.state != StateWritingHeaders {
		return errOutOfOrder
	}

	caser := cases.Title(language.English)
	for _, k := range h.Keys() {
		line := caser.String(k) + ": " + h[k]
		if _, err := io.WriteString(w.writer, line+"\r\n"); err != nil {
			return fmt.Errorf("error writing headers: %w", err)
		}
	}
	if _, err := io.WriteString(w.writer, "\r\n"); err != nil {
		return fmt.Errorf("error writing headers: %w", err)
	}

	w.state = StateWritingBody
	return nil
}

func (w *Writer) WriteBody(p []byte) (int, error) {
	if w.state != StateWritingBody {
		return 0, errOutOfOrder
	}

	w.state = StateDone
	return w.writer.Write(p)
}

// WriteResponse serializes resp in full. Content-Length and Connection are
// added on the wire only; resp itself is left untouched.
func (w *Writer) WriteResponse(resp *Response) error {
	if err := w.WriteStatusLine(resp.Status); err != nil {
		return err
	}

	body := resp.BodyString()
	h := resp.Headers.Clone()
	h.SetNew("Content-Length", strconv.Itoa(len(body)))
	h.SetNew("Connection", "close")
	if err := w.WriteHeaders(h); err != nil {
		return err
	}

	if _, err := w.WriteBody([]byte(body)); err != nil {
		return fmt.Errorf("error writing body: %w", err)
	}
	return nil
}
