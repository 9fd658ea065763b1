package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jortega/sqlens/pipeline"
	"github.com/jortega/sqlens/sql"
)

// CSVFormatter outputs the token stream as CSV, one token per record,
// which is convenient for loading a lexing exercise into a spreadsheet.
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes the tokens of res as CSV with a header row.
func (c *CSVFormatter) Format(res *pipeline.Result) error {
	csvWriter := csv.NewWriter(c.writer)

	if err := csvWriter.Write([]string{"index", "kind", "lexeme", "line", "column", "offset"}); err != nil {
		return err
	}
	n := 0
	for _, tok := range res.Tokens {
		if tok.Kind == sql.TokenEOF {
			continue
		}
		record := []string{
			strconv.Itoa(n),
			tok.Kind.String(),
			tok.Lexeme,
			strconv.Itoa(tok.Pos.Line),
			strconv.Itoa(tok.Pos.Column),
			strconv.Itoa(tok.Pos.Offset),
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
		n++
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}
