package ui

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

const (
	halfBlock       = "▀"
	minPreviewCols  = 8
	maxPreviewCols  = 96
	previewRowsFrac = 2 // preview may use at most 1/previewRowsFrac of the height
)

// preview holds the decoded image for the current record and its cached
// half-block rendering.
type preview struct {
	path    string
	loading bool
	err     string
	img     image.Image

	rows     []string
	rowsCols int
	rowsMax  int
}

func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// render returns the cached rows for the given bounds, re-rendering when the
// terminal size changed.
func (p *preview) render(cols, maxRows int) []string {
	if p.img == nil {
		return nil
	}
	if p.rows != nil && p.rowsCols == cols && p.rowsMax == maxRows {
		return p.rows
	}
	p.rows = halfBlockRows(p.img, cols, maxRows)
	p.rowsCols = cols
	p.rowsMax = maxRows
	return p.rows
}

// previewBounds picks a preview size that fits the terminal.
func previewBounds(width, height int) (cols, rows int) {
	cols = width - 4
	if cols > maxPreviewCols {
		cols = maxPreviewCols
	}
	if cols < minPreviewCols {
		cols = minPreviewCols
	}
	rows = height / previewRowsFrac
	if rows < 4 {
		rows = 4
	}
	return cols, rows
}

// halfBlockRows scales img to fit cols x maxRows terminal cells and renders
// two pixels per cell: the upper half as foreground, the lower as background.
func halfBlockRows(img image.Image, cols, maxRows int) []string {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || cols <= 0 || maxRows <= 0 {
		return nil
	}

	w := cols
	h := w * b.Dy() / b.Dx()
	if h > maxRows*2 {
		h = maxRows * 2
		w = h * b.Dx() / b.Dy()
	}
	if w < 1 {
		w = 1
	}
	if h < 2 {
		h = 2
	}
	if h%2 == 1 {
		h++
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	rows := make([]string, 0, h/2)
	var line strings.Builder
	for y := 0; y < h; y += 2 {
		line.Reset()
		for x := 0; x < w; x++ {
			top := hexColor(dst.At(x, y))
			bottom := hexColor(dst.At(x, y+1))
			line.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render(halfBlock))
		}
		rows = append(rows, line.String())
	}
	return rows
}

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
