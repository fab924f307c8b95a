package img2ascii

import (
	"io"
	"runtime"
	"strings"

	"github.com/wbrown/img2ascii/imageutil"
	"golang.org/x/sync/errgroup"
)

// Canvas is a grid of matched characters, stored row-major.
type Canvas struct {
	Rows  int
	Cols  int
	cells []rune
}

// NewCanvas allocates an empty rows x cols canvas.
func NewCanvas(rows, cols int) *Canvas {
	return &Canvas{Rows: rows, Cols: cols, cells: make([]rune, rows*cols)}
}

// At returns the character at (row, col).
func (c *Canvas) At(row, col int) rune {
	return c.cells[row*c.Cols+col]
}

// Set stores the character at (row, col).
func (c *Canvas) Set(row, col int, r rune) {
	c.cells[row*c.Cols+col] = r
}

// Line returns row as a string.
func (c *Canvas) Line(row int) string {
	return string(c.cells[row*c.Cols : (row+1)*c.Cols])
}

// Lines returns every row as a string.
func (c *Canvas) Lines() []string {
	lines := make([]string, c.Rows)
	for i := range lines {
		lines[i] = c.Line(i)
	}
	return lines
}

// String renders the canvas as text, each row terminated by a newline.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.Rows * (c.Cols + 1))
	for row := 0; row < c.Rows; row++ {
		sb.WriteString(c.Line(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteTo writes the canvas to w as newline-terminated rows.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for row := 0; row < c.Rows; row++ {
		n, err := io.WriteString(w, c.Line(row)+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// CanvasSize returns the character grid size for a height x width source
// and a glyphWidth x glyphHeight cell. Partial cells at the right and
// bottom edges are dropped.
func CanvasSize(height, width, glyphHeight, glyphWidth int) (rows, cols int) {
	return height / glyphHeight, width / glyphWidth
}

// ImageToCharacters tiles src into non-overlapping glyph-sized blocks and
// matches each block with m. Rows are matched on up to workers goroutines
// (runtime.NumCPU() when workers <= 0); each goroutine writes only its own
// row of the canvas.
func ImageToCharacters(
	src *imageutil.GrayImage,
	m GlyphMatchingStrategy,
	invert bool,
	workers int,
) *Canvas {
	glyphWidth, glyphHeight := m.CellSize()
	rows, cols := CanvasSize(src.Height(), src.Width(), glyphHeight, glyphWidth)
	canvas := NewCanvas(rows, cols)
	if rows == 0 || cols == 0 {
		return canvas
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for row := 0; row < rows; row++ {
		g.Go(func() error {
			for col := 0; col < cols; col++ {
				block := src.Block(col*glyphWidth, row*glyphHeight, glyphWidth, glyphHeight)
				canvas.Set(row, col, m.Match(block, invert))
			}
			return nil
		})
	}
	_ = g.Wait()
	return canvas
}
