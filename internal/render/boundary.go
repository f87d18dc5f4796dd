package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"go.uber.org/zap"
)

// Boundary isolates one page region: an error or panic while rendering it
// is logged and the region renders as nothing, leaving the rest of the page intact.
type Boundary struct {
	log *zap.Logger
}

func NewBoundary(log *zap.Logger) Boundary {
	if log == nil {
		log = zap.NewNop()
	}
	return Boundary{log: log.Named("boundary")}
}

// Render runs fn into a buffer and returns its output, or "" on failure.
func (b Boundary) Render(region string, fn func(w io.Writer) error) (out template.HTML) {
	var buf bytes.Buffer
	defer func() {
		if rec := recover(); rec != nil {
			b.log.Error("region panicked", zap.String("region", region), zap.String("panic", fmt.Sprint(rec)))
			out = ""
		}
	}()
	if err := fn(&buf); err != nil {
		b.log.Error("region failed", zap.String("region", region), zap.Error(err))
		return ""
	}
	return template.HTML(buf.String())
}
