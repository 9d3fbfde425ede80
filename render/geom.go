package render

import (
	"image/color"
	"strings"
	"unicode"
	"unicode/utf8"
)

// dashes splits [from, to] into dash spans separated by gaps. The last dash
// is cut short at to.
func dashes(from, to, dash, gap float64) [][2]float64 {
	if to <= from || dash <= 0 {
		return nil
	}
	if gap < 0 {
		gap = 0
	}
	var out [][2]float64
	for x := from; x < to; x += dash + gap {
		end := x + dash
		if end > to {
			end = to
		}
		out = append(out, [2]float64{x, end})
	}
	return out
}

// displayName strips the ordering prefix from a tier label: "03_gyool"
// becomes "gyool".
func displayName(label string) string {
	if i := strings.IndexByte(label, '_'); i >= 0 && i < len(label)-1 {
		prefix := label[:i]
		if strings.IndexFunc(prefix, func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
			return label[i+1:]
		}
	}
	return label
}

// initial is the upper-cased first letter of a tier's display name.
func initial(label string) string {
	name := displayName(label)
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}

// shade scales the RGB channels of c by f, keeping alpha.
func shade(c color.Color, f float64) color.RGBA {
	if c == nil {
		return color.RGBA{A: 0xff}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	scale := func(v uint8) uint8 {
		s := float64(v) * f
		if s > 255 {
			s = 255
		}
		if s < 0 {
			s = 0
		}
		return uint8(s)
	}
	return color.RGBA{R: scale(n.R), G: scale(n.G), B: scale(n.B), A: 0xff}
}

// chipRadius maps a tier radius to the size drawn in the merge chain panel.
func chipRadius(r float64) float64 {
	return 8 + r*0.15
}
