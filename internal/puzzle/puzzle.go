package puzzle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/gridwords/internal/board"
	"github.com/specialistvlad/gridwords/internal/ctxlog"
	"github.com/specialistvlad/gridwords/internal/dictionary"
	"github.com/specialistvlad/gridwords/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Puzzle is everything declared by one or more puzzle files.
type Puzzle struct {
	// Dictionary is the dictionary source, empty when no file set one.
	Dictionary string
	// Size is the declared board size, zero when no file set one.
	Size   int
	Boards []Board
}

// Board is one named grid.
type Board struct {
	Name string
	// Source is the location of the rows expression, e.g. "main.hcl:3,10-40".
	Source string
	Grid   board.Grid
	// Expected holds the words a previous run reported, when the block
	// carries them. Nil means nothing was recorded.
	Expected []string
}

// fileRoot is the decoding target for a whole file.
type fileRoot struct {
	Dictionary *string       `hcl:"dictionary,optional"`
	Size       *int          `hcl:"size,optional"`
	Boards     []*boardBlock `hcl:"board,block"`
}

type boardBlock struct {
	Name     string         `hcl:"name,label"`
	Rows     hcl.Expression `hcl:"rows"`
	FoldCase *bool          `hcl:"fold_case,optional"`
	Words    []string       `hcl:"words,optional"`
}

// evalContext exposes the process environment as env and a small set of
// string functions to every expression in a puzzle file.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": environment(),
		},
		Functions: map[string]function.Function{
			"lower":     stdlib.LowerFunc,
			"upper":     stdlib.UpperFunc,
			"split":     stdlib.SplitFunc,
			"join":      stdlib.JoinFunc,
			"trimspace": stdlib.TrimSpaceFunc,
		},
	}
}

func environment() cty.Value {
	vars := make(map[string]cty.Value)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 && utf8.ValidString(pair[1]) {
			vars[pair[0]] = cty.StringVal(pair[1])
		}
	}
	if len(vars) == 0 {
		return cty.MapValEmpty(cty.String)
	}
	return cty.MapVal(vars)
}

// FromRows builds a Board from plain rows.
func FromRows(name string, rows []string) Board {
	return Board{Name: name, Source: "rows", Grid: board.New(rows)}
}

// LoadFiles parses every .hcl file under path and merges their contents.
func LoadFiles(ctx context.Context, path string) (*Puzzle, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Puzzle loader started.", "path", path)

	files, err := fsutil.FindFiles(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find puzzle files in %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl puzzle files found in %s", path)
	}

	parser := hclparse.NewParser()
	p := &Puzzle{}
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		part, err := decode(hclFile.Body, filepath.Dir(file))
		if err != nil {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, err)
		}
		if err := p.merge(part); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		logger.Debug("Puzzle file loaded.", "file", file, "boards", len(part.Boards))
	}

	logger.Debug("Puzzle loading complete.", "files", len(files), "boards", len(p.Boards))
	return p, nil
}

// Parse decodes a puzzle held in memory. Relative dictionary paths are left
// as written.
func Parse(src []byte, filename string) (*Puzzle, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL %s: %w", filename, diags)
	}
	p, err := decode(file.Body, "")
	if err != nil {
		return nil, fmt.Errorf("failed to decode HCL %s: %w", filename, err)
	}
	return p, nil
}

func decode(body hcl.Body, baseDir string) (*Puzzle, error) {
	ectx := evalContext()
	var root fileRoot
	if diags := gohcl.DecodeBody(body, ectx, &root); diags.HasErrors() {
		return nil, diags
	}

	p := &Puzzle{}
	if root.Dictionary != nil {
		p.Dictionary = *root.Dictionary
		if baseDir != "" && !filepath.IsAbs(p.Dictionary) && !strings.Contains(p.Dictionary, "://") {
			p.Dictionary = filepath.Join(baseDir, p.Dictionary)
		}
	}
	if root.Size != nil {
		if *root.Size <= 0 {
			return nil, fmt.Errorf("size must be positive, got %d", *root.Size)
		}
		p.Size = *root.Size
	}

	seen := make(map[string]bool)
	for _, b := range root.Boards {
		source := b.Rows.Range().String()
		if seen[b.Name] {
			return nil, fmt.Errorf("%s: duplicate board %q", source, b.Name)
		}
		seen[b.Name] = true

		rows, err := evalRows(b.Rows, ectx)
		if err != nil {
			return nil, fmt.Errorf("%s: board %q: %w", source, b.Name, err)
		}
		if b.FoldCase != nil && *b.FoldCase {
			rows = dictionary.NormalizeGrid(rows)
		}
		p.Boards = append(p.Boards, Board{
			Name:     b.Name,
			Source:   source,
			Grid:     board.New(rows),
			Expected: b.Words,
		})
	}
	return p, nil
}

// evalRows turns the rows expression into plain strings.
func evalRows(expr hcl.Expression, ectx *hcl.EvalContext) ([]string, error) {
	val, diags := expr.Value(ectx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() || !val.IsWhollyKnown() {
		return nil, fmt.Errorf("rows must be set")
	}

	if val.Type() == cty.String {
		return strings.Fields(val.AsString()), nil
	}

	listVal, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("rows must be a list of strings: %w", err)
	}
	var rows []string
	if err := gocty.FromCtyValue(listVal, &rows); err != nil {
		return nil, fmt.Errorf("rows must be a list of strings: %w", err)
	}
	return rows, nil
}

func (p *Puzzle) merge(other *Puzzle) error {
	if other.Dictionary != "" {
		if p.Dictionary != "" && p.Dictionary != other.Dictionary {
			return fmt.Errorf("conflicting dictionary %q, already set to %q", other.Dictionary, p.Dictionary)
		}
		p.Dictionary = other.Dictionary
	}
	if other.Size != 0 {
		if p.Size != 0 && p.Size != other.Size {
			return fmt.Errorf("conflicting size %d, already set to %d", other.Size, p.Size)
		}
		p.Size = other.Size
	}
	for _, b := range other.Boards {
		for _, existing := range p.Boards {
			if existing.Name == b.Name {
				return fmt.Errorf("duplicate board %q, first declared at %s", b.Name, existing.Source)
			}
		}
		p.Boards = append(p.Boards, b)
	}
	return nil
}

// Validate checks every board against an n×n shape, naming the first board
// that does not fit.
func (p *Puzzle) Validate(n int) error {
	for _, b := range p.Boards {
		if err := b.Grid.Validate(n); err != nil {
			return fmt.Errorf("board %q (%s): %w", b.Name, b.Source, err)
		}
	}
	return nil
}
