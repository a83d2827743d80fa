package assets

import "strings"

const (
	TypeCSS        = "text/css"
	TypeJavaScript = "text/javascript"
	TypeHTML       = "text/html"
)

// ContentType infers a MIME type from the trailing characters of the loaded
// content, not from the file name. Anything ending in "js" counts as
// javascript, with or without a dot.
func ContentType(content string) string {
	switch {
	case strings.HasSuffix(content, ".css"):
		return TypeCSS
	case strings.HasSuffix(content, "js"):
		return TypeJavaScript
	default:
		return TypeHTML
	}
}
