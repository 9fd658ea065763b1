package output

import (
	"fmt"
	"io"

	"github.com/jortega/sqlens/pipeline"
)

// Formatter defines the interface for result formatters.
//
// Implementers must provide Format to render one analysis result and
// SetOutput to change the output destination.
type Formatter interface {
	// Format writes res in the formatter's specific format
	Format(res *pipeline.Result) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// New returns the formatter registered under name.
func New(name string, w io.Writer) (Formatter, error) {
	switch name {
	case "table":
		return NewTableFormatter(w), nil
	case "json":
		return NewJSONFormatter(w), nil
	case "tree":
		return NewTreeFormatter(w), nil
	case "dot":
		return NewDOTFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	}
	return nil, fmt.Errorf("unsupported format %q (supported: table, json, tree, dot, csv)", name)
}
