package ui

import (
	"image"
	"strings"
	"testing"
)

func TestHalfBlockRows_FitsBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))

	rows := halfBlockRows(img, 40, 50)
	if len(rows) != 10 {
		t.Fatalf("rows = %d, want 10 (40x20 pixels, two per cell)", len(rows))
	}
	if got := strings.Count(rows[0], halfBlock); got != 40 {
		t.Fatalf("cells in row = %d, want 40", got)
	}

	// Height-bound: a tall image is narrowed to keep the row limit.
	tall := image.NewRGBA(image.Rect(0, 0, 100, 400))
	rows = halfBlockRows(tall, 40, 8)
	if len(rows) != 8 {
		t.Fatalf("rows = %d, want 8", len(rows))
	}
	if got := strings.Count(rows[0], halfBlock); got != 4 {
		t.Fatalf("cells in row = %d, want 4", got)
	}
}

func TestHalfBlockRows_Empty(t *testing.T) {
	if rows := halfBlockRows(image.NewRGBA(image.Rect(0, 0, 0, 0)), 10, 10); rows != nil {
		t.Fatalf("expected nil rows for empty image, got %d", len(rows))
	}
	if rows := halfBlockRows(image.NewRGBA(image.Rect(0, 0, 4, 4)), 0, 10); rows != nil {
		t.Fatalf("expected nil rows for zero width, got %d", len(rows))
	}
}

func TestPreviewRenderCaches(t *testing.T) {
	p := preview{img: image.NewRGBA(image.Rect(0, 0, 8, 8))}
	first := p.render(8, 8)
	second := p.render(8, 8)
	if len(first) == 0 || &first[0] != &second[0] {
		t.Fatalf("expected cached rows on same bounds")
	}
	third := p.render(4, 8)
	if len(third) == len(first) {
		t.Fatalf("expected re-render on new bounds")
	}
}

func TestPreviewBounds(t *testing.T) {
	cols, rows := previewBounds(0, 0)
	if cols != minPreviewCols || rows != 4 {
		t.Fatalf("previewBounds(0,0) = %d,%d", cols, rows)
	}
	cols, rows = previewBounds(300, 60)
	if cols != maxPreviewCols || rows != 30 {
		t.Fatalf("previewBounds(300,60) = %d,%d", cols, rows)
	}
}

func TestDecodeImage_Invalid(t *testing.T) {
	if _, err := decodeImage([]byte("not an image")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 6, "abc..."},
		{"abcdef", 2, "ab"},
		{"  padded  ", 0, "padded"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	got := truncateMiddle("http://127.0.0.1:5000/images/epic_1b_2024.png", 20)
	if len([]rune(got)) != 20 {
		t.Fatalf("len = %d, want 20 (%q)", len([]rune(got)), got)
	}
	if !strings.HasPrefix(got, "http://12") || !strings.HasSuffix(got, "2024.png") {
		t.Fatalf("truncateMiddle lost ends: %q", got)
	}
}

func TestHyperlink(t *testing.T) {
	if got := hyperlink("", "text"); got != "text" {
		t.Fatalf("hyperlink without url = %q", got)
	}
	got := hyperlink("https://x", "text")
	if !strings.HasPrefix(got, "\x1b]8;;https://x\x1b\\text") {
		t.Fatalf("hyperlink = %q", got)
	}
}

func TestNextThemeCycles(t *testing.T) {
	names := ThemeNames()
	current := names[0]
	for i := 0; i < len(names); i++ {
		current = NextTheme(current)
	}
	if current != names[0] {
		t.Fatalf("cycle ended at %q, want %q", current, names[0])
	}
	if got := NextTheme("missing"); got != names[0] {
		t.Fatalf("NextTheme(missing) = %q", got)
	}
	if got := GetTheme("missing").Name; got != "Epic" {
		t.Fatalf("GetTheme fallback = %q", got)
	}
}
