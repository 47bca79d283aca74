package shell

import colorful "github.com/lucasb-eyer/go-colorful"

// Swatch is a named background color.
type Swatch struct {
	Name  string
	Color colorful.Color
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Backgrounds is the palette the background picker cycles through.
var Backgrounds = []Swatch{
	{"black", mustHex("#000000")},
	{"minimal", mustHex("#0a0a0a")},
	{"retro", mustHex("#001100")},
	{"ocean", mustHex("#001a33")},
	{"sunset", mustHex("#2d1b2e")},
	{"slate", mustHex("#101018")},
}

// NextBackground returns the swatch after the one closest to c.
func NextBackground(c colorful.Color) Swatch {
	best, bestDist := 0, 1e9
	for i, s := range Backgrounds {
		if d := s.Color.DistanceRgb(c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return Backgrounds[(best+1)%len(Backgrounds)]
}

// CycleBackground switches to the next palette swatch and returns it.
func (a *App) CycleBackground() Swatch {
	s := NextBackground(a.background)
	a.SetBackground(s.Color)
	return s
}
