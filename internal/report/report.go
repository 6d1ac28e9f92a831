// Package report renders solved boards as text, JSON or HCL.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/gridwords/internal/board"
	"github.com/specialistvlad/gridwords/internal/solver"
	"github.com/zclconf/go-cty/cty"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatHCL  = "hcl"
)

// Formats lists every accepted format name.
var Formats = []string{FormatText, FormatJSON, FormatHCL}

// Result is one solved board.
type Result struct {
	Name    string         `json:"name"`
	Rows    []string       `json:"rows"`
	Matches []solver.Match `json:"matches"`
}

// NewResult pairs a board with its matches.
func NewResult(name string, g board.Grid, matches []solver.Match) Result {
	if matches == nil {
		matches = []solver.Match{}
	}
	return Result{Name: name, Rows: g.Rows(), Matches: matches}
}

// Words returns the matched words in order.
func (r Result) Words() []string {
	return solver.Words(r.Matches)
}

// Write renders results to w in the given format.
func Write(w io.Writer, format string, results []Result) error {
	switch format {
	case FormatText, "":
		return writeText(w, results)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case FormatHCL:
		_, err := w.Write(EncodeHCL(results))
		return err
	default:
		return fmt.Errorf("unknown output format %q: must be one of %s", format, strings.Join(Formats, ", "))
	}
}

func writeText(w io.Writer, results []Result) error {
	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		if len(results) > 1 || r.Name != "" {
			fmt.Fprintf(&sb, "Board %s\n", r.Name)
		}
		for _, row := range r.Rows {
			fmt.Fprintf(&sb, "  %s\n", row)
		}
		if len(r.Matches) == 0 {
			sb.WriteString("No words found\n")
			continue
		}
		fmt.Fprintf(&sb, "Found the following words (%d)\n", len(r.Matches))
		for _, m := range r.Matches {
			sb.WriteString(m.Word)
			sb.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// EncodeHCL renders results as board blocks that carry their words, in a
// form the puzzle loader can read back.
func EncodeHCL(results []Result) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for i, r := range results {
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("board", []string{r.Name})
		block.Body().SetAttributeValue("rows", stringList(r.Rows))
		block.Body().SetAttributeValue("words", stringList(r.Words()))
	}
	return f.Bytes()
}

func stringList(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(items))
	for i, s := range items {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}
