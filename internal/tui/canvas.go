package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille grid with one color per cell. In sub-pixels it is
// (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]colorful.Color
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]colorful.Color, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]colorful.Color, w)
	}
	c.Clear()
	return c
}

// SubWidth and SubHeight are the canvas size in sub-pixels.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// Set lights the sub-pixel (x, y). The cell takes the color of the last dot
// written to it.
func (c *Canvas) Set(x, y int, col colorful.Color) {
	if x < 0 || y < 0 {
		return
	}

	cx := x / 2
	row := y / 4
	if cx >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][cx] |= rune(pixelMap[y%4][x%2])
	c.Colors[row][cx] = col
}

// Lit reports whether sub-pixel (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = colorful.Color{}
		}
	}
}

// FillCircle lights every sub-pixel whose center lies inside the circle. A
// circle smaller than a sub-pixel still lights the one under its center.
func (c *Canvas) FillCircle(cx, cy, r float32, col colorful.Color) {
	if r < 0.5 {
		c.Set(int(cx), int(cy), col)
		return
	}
	x0, x1 := c.clampX(cx-r), c.clampX(cx+r)
	y0, y1 := c.clampY(cy-r), c.clampY(cy+r)
	r2 := r * r
	for y := y0; y <= y1; y++ {
		dy := float32(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			dx := float32(x) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				c.Set(x, y, col)
			}
		}
	}
}

// FillRect lights every sub-pixel whose center lies in [minX,maxX]x[minY,maxY].
func (c *Canvas) FillRect(minX, minY, maxX, maxY float32, col colorful.Color) {
	if maxX-minX < 1 && maxY-minY < 1 {
		c.Set(int((minX+maxX)/2), int((minY+maxY)/2), col)
		return
	}
	x0, x1 := c.clampX(minX), c.clampX(maxX)
	y0, y1 := c.clampY(minY), c.clampY(maxY)
	for y := y0; y <= y1; y++ {
		py := float32(y) + 0.5
		if py < minY || py > maxY {
			continue
		}
		for x := x0; x <= x1; x++ {
			px := float32(x) + 0.5
			if px >= minX && px <= maxX {
				c.Set(x, y, col)
			}
		}
	}
}

func (c *Canvas) clampX(v float32) int { return clampInt(int(v), 0, c.SubWidth()-1) }
func (c *Canvas) clampY(v float32) int { return clampInt(int(v), 0, c.SubHeight()-1) }

// String renders the canvas without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

// Styled renders the canvas with cell colors over bg. Runs of same-colored
// cells share one style.
func (c *Canvas) Styled(bg colorful.Color) string {
	base := lipgloss.NewStyle().Background(lipgloss.Color(bg.Hex()))
	var b strings.Builder
	for i, row := range c.Grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && sameCell(row, c.Colors[i], start, j) {
				continue
			}
			style := base
			if row[start] != blank {
				style = base.Foreground(lipgloss.Color(c.Colors[i][start].Hex()))
			}
			b.WriteString(style.Render(string(row[start:j])))
			start = j
		}
	}
	return b.String()
}

func sameCell(row []rune, colors []colorful.Color, a, b int) bool {
	if (row[a] == blank) != (row[b] == blank) {
		return false
	}
	return row[a] == blank || colors[a] == colors[b]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
