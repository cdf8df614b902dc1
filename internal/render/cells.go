package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Half-block glyph: foreground paints the top pixel, background the bottom.
const glyphHalfBlock = '▀'

// asciiRamp maps luminance to glyphs for plain-text output, dark to bright.
const asciiRamp = " .:-=+*#%@"

type textCell struct {
	r   rune
	fg  colorful.Color
	set bool
}

// CellSurface is a terminal drawing surface. Each character cell holds two
// vertically stacked pixels, so a cols x rows surface is cols x 2*rows pixels
// and pixels come out roughly square in common terminal fonts.
type CellSurface struct {
	cols, rows int
	pix        []colorful.Color // row-major, cols x 2*rows
	text       []textCell       // row-major, cols x rows
}

// NewCellSurface creates a surface covering cols x rows terminal cells.
func NewCellSurface(cols, rows int) *CellSurface {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &CellSurface{
		cols: cols,
		rows: rows,
		pix:  make([]colorful.Color, cols*rows*2),
		text: make([]textCell, cols*rows),
	}
}

// Size returns the surface size in pixels. A nil surface has no pixels.
func (s *CellSurface) Size() (int, int) {
	if s == nil {
		return 0, 0
	}
	return s.cols, s.rows * 2
}

// Cells returns the surface size in terminal cells.
func (s *CellSurface) Cells() (int, int) {
	return s.cols, s.rows
}

// CellToPixel maps a terminal cell to the pixel at its visual center.
func CellToPixel(col, row int) (float64, float64) {
	return float64(col) + 0.5, float64(row)*2 + 1
}

// Clear paints every pixel and drops all text.
func (s *CellSurface) Clear(c Color) {
	for i := range s.pix {
		s.pix[i] = c.Color
	}
	for i := range s.text {
		s.text[i] = textCell{}
	}
}

// Pixel returns the colour at pixel (x, y). Out of range returns black.
func (s *CellSurface) Pixel(x, y int) colorful.Color {
	w, h := s.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return colorful.Color{}
	}
	return s.pix[y*w+x]
}

func (s *CellSurface) blend(x, y int, c Color) {
	w, h := s.Size()
	if x < 0 || y < 0 || x >= w || y >= h || c.A <= 0 {
		return
	}
	i := y*w + x
	if c.A >= 1 {
		s.pix[i] = c.Color
		return
	}
	s.pix[i] = s.pix[i].BlendRgb(c.Color, c.A)
}

// paintBox visits pixels whose centers fall inside the bounding box and
// blends fill wherever inside reports true.
func (s *CellSurface) paintBox(x0, y0, x1, y1 float64, fill Fill, inside func(px, py float64) bool) {
	w, h := s.Size()
	minX := maxInt(0, int(math.Floor(x0)))
	minY := maxInt(0, int(math.Floor(y0)))
	maxX := minInt(w-1, int(math.Ceil(x1)))
	maxY := minInt(h-1, int(math.Ceil(y1)))

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			if inside(px, py) {
				s.blend(x, y, fill.ColorAt(px, py))
			}
		}
	}
}

// FillRect fills the axis-aligned rectangle [x, x+w) x [y, y+h).
func (s *CellSurface) FillRect(x, y, w, h float64, fill Fill) {
	if w <= 0 || h <= 0 {
		return
	}
	s.paintBox(x, y, x+w, y+h, fill, func(px, py float64) bool {
		return px >= x && px < x+w && py >= y && py < y+h
	})
}

// FillCircle fills a disc. Discs smaller than a pixel still light the pixel
// under their center so small markers never vanish.
func (s *CellSurface) FillCircle(cx, cy, r float64, fill Fill) {
	if r <= 0 {
		return
	}
	if r < 0.75 {
		s.blend(int(math.Floor(cx)), int(math.Floor(cy)), fill.ColorAt(cx, cy))
		return
	}
	s.paintBox(cx-r, cy-r, cx+r, cy+r, fill, func(px, py float64) bool {
		return math.Hypot(px-cx, py-cy) <= r
	})
}

// StrokeCircle draws a ring of the given width centred on radius r.
func (s *CellSurface) StrokeCircle(cx, cy, r, width float64, c Color) {
	if r <= 0 || width <= 0 {
		return
	}
	half := width / 2
	outer := r + half
	s.paintBox(cx-outer, cy-outer, cx+outer, cy+outer, c, func(px, py float64) bool {
		return math.Abs(math.Hypot(px-cx, py-cy)-r) <= half
	})
}

// FillText writes text starting at the cell containing pixel (x, y).
// Text sits above pixels and is clipped at the surface edge.
func (s *CellSurface) FillText(x, y float64, text string, c Color) {
	col := int(math.Floor(x))
	row := int(math.Floor(y / 2))
	if row < 0 || row >= s.rows {
		return
	}
	for i, r := range []rune(text) {
		cc := col + i
		if cc < 0 || cc >= s.cols {
			continue
		}
		s.text[row*s.cols+cc] = textCell{r: r, fg: c.Color, set: true}
	}
}

// TextAt returns the text rune at a cell, or 0 when the cell has none.
func (s *CellSurface) TextAt(col, row int) rune {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return 0
	}
	tc := s.text[row*s.cols+col]
	if !tc.set {
		return 0
	}
	return tc.r
}

// Render returns the surface as styled terminal lines.
func (s *CellSurface) Render() string {
	var b strings.Builder
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			top := s.pix[(row*2)*s.cols+col]
			bottom := s.pix[(row*2+1)*s.cols+col]
			tc := s.text[row*s.cols+col]

			if tc.set {
				bg := top.BlendRgb(bottom, 0.5)
				style := lipgloss.NewStyle().
					Foreground(lipgloss.Color(tc.fg.Clamped().Hex())).
					Background(lipgloss.Color(bg.Clamped().Hex()))
				b.WriteString(style.Render(string(tc.r)))
				continue
			}

			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top.Clamped().Hex())).
				Background(lipgloss.Color(bottom.Clamped().Hex()))
			b.WriteString(style.Render(string(glyphHalfBlock)))
		}
		if row < s.rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Plain returns the surface as uncoloured text, shading each cell by the
// luminance of its two pixels. Used for logs, files and non-TTY output.
func (s *CellSurface) Plain() string {
	var b strings.Builder
	ramp := []rune(asciiRamp)
	for row := 0; row < s.rows; row++ {
		line := make([]rune, s.cols)
		for col := 0; col < s.cols; col++ {
			if tc := s.text[row*s.cols+col]; tc.set {
				line[col] = tc.r
				continue
			}
			top := s.pix[(row*2)*s.cols+col]
			bottom := s.pix[(row*2+1)*s.cols+col]
			l := (luminance(top) + luminance(bottom)) / 2
			idx := int(l * float64(len(ramp)-1) * 1.6) // lift mid tones; the globe palette is dark
			if idx >= len(ramp) {
				idx = len(ramp) - 1
			}
			line[col] = ramp[idx]
		}
		b.WriteString(strings.TrimRight(string(line), " "))
		if row < s.rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func luminance(c colorful.Color) float64 {
	c = c.Clamped()
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
