package assets

import (
	"os"
	"unicode/utf8"
)

// Loader reads text files from a public root directory.
type Loader struct {
	Root string
}

func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// Load returns the contents of root/name. Any failure, including content that
// is not valid UTF-8, reports ok == false; callers never see the cause.
func (l *Loader) Load(name string) (contents string, ok bool) {
	data, err := os.ReadFile(l.Root + "/" + name)
	if err != nil {
		return "", false
	}
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

// LoadPtr is Load with the absent value expressed as nil, the form Response
// bodies take.
func (l *Loader) LoadPtr(name string) *string {
	contents, ok := l.Load(name)
	if !ok {
		return nil
	}
	return &contents
}
