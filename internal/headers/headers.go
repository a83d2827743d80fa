package headers

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"
)

const (
	crlf                = "\r\n"
	validFieldNameChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!#$%&'*+-.^_`|~"
)

// Headers maps lower-cased field names to values. Repeated fields are joined
// with ", ".
type Headers map[string]string

func NewHeaders() Headers {
	return map[string]string{}
}

// FromMap copies m, lower-casing every key.
func FromMap(m map[string]string) Headers {
	h := NewHeaders()
	for k, v := range m {
		h.SetNew(k, v)
	}
	return h
}

func (h Headers) Parse(data []byte) (n int, done bool, err error) {
	idx := bytes.Index(data, []byte(crlf))
	if idx == -1 {
		return 0, false, nil
	}
	if idx == 0 {
		n = idx + 2
		return n, true, nil
	}

	fields := data[:idx]
	colonIdx := bytes.IndexByte(fields, ':')
	if colonIdx == -1 {
		return 0, false, fmt.Errorf("malformed header line (no colon): %q", fields)
	}

	prefix := fields[:colonIdx]
	name := bytes.TrimLeft(prefix, " \t")

	if len(name) == 0 || bytes.ContainsAny(prefix, " \t") {
		return 0, false, fmt.Errorf("malformed field-name: %q", fields)
	}

	for _, r := range string(name) {
		if !strings.ContainsRune(validFieldNameChars, r) {
			return 0, false, fmt.Errorf("invalid character in field-name: %q", fields)
		}
	}

	value := string(bytes.TrimSpace(fields[colonIdx+1:]))
	h.Set(string(name), value)

	return idx + 2, false, nil
}

func (h Headers) Set(key, value string) {
	key = strings.ToLower(key)
	if v, ok := h[key]; ok {
		h[key] = v + ", " + value
		return
	}
	h[key] = value
}

func (h Headers) SetNew(key, value string) {
	h[strings.ToLower(key)] = value
}

func (h Headers) Get(key string) string {
	return h[strings.ToLower(key)]
}

// Keys returns the field names in sorted order.
func (h Headers) Keys() []string {
	return slices.Sorted(maps.Keys(h))
}

func (h Headers) Clone() Headers {
	c := NewHeaders()
	maps.Copy(c, h)
	return c
}
