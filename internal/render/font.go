package render

import (
	"fmt"
	"os"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Face is a font face plus the text preparation it needs.
type Face struct {
	face   font.Face
	ascent int
	height int
	// fold strips diacritics for faces that only cover ASCII.
	fold bool
}

// Faces are the body and heading faces of a rendering.
type Faces struct {
	Body    *Face
	Heading *Face
}

const lineGap = 6

func newFace(f font.Face, fold bool) *Face {
	m := f.Metrics()
	return &Face{
		face:   f,
		ascent: m.Ascent.Ceil(),
		height: (m.Ascent + m.Descent).Ceil() + lineGap,
		fold:   fold,
	}
}

// BasicFaces uses the built-in 7x13 bitmap face. It has no Vietnamese
// glyphs, so text is folded to ASCII.
func BasicFaces() Faces {
	f := newFace(basicfont.Face7x13, true)
	return Faces{Body: f, Heading: f}
}

// LoadFaces parses the TrueType or OpenType font at path. An empty path
// falls back to BasicFaces.
func LoadFaces(path string, size float64) (Faces, error) {
	if path == "" {
		return BasicFaces(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Faces{}, fmt.Errorf("failed to read font %s: %w", path, err)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return Faces{}, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	if size <= 0 {
		size = 13
	}
	body, err := opentype.NewFace(parsed, &opentype.FaceOptions{Size: size, DPI: 96, Hinting: font.HintingFull})
	if err != nil {
		return Faces{}, fmt.Errorf("failed to create font face: %w", err)
	}
	heading, err := opentype.NewFace(parsed, &opentype.FaceOptions{Size: size * 1.5, DPI: 96, Hinting: font.HintingFull})
	if err != nil {
		return Faces{}, fmt.Errorf("failed to create heading face: %w", err)
	}
	return Faces{Body: newFace(body, false), Heading: newFace(heading, false)}, nil
}

// Prepare returns s as the face can draw it.
func (f *Face) Prepare(s string) string {
	if !f.fold {
		return s
	}
	return FoldASCII(s)
}

func (f *Face) Width(s string) int {
	return font.MeasureString(f.face, s).Ceil()
}

var asciiSubstitutes = map[rune]rune{
	'đ': 'd',
	'Đ': 'D',
	'₫': 'd',
	'—': '-',
	'–': '-',
	'✓': 'v',
	'·': '-',
}

// FoldASCII removes Vietnamese diacritics and swaps the few symbols the
// documents use for ASCII look-alikes.
func FoldASCII(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			if sub, ok := asciiSubstitutes[r]; ok {
				return sub
			}
			return r
		}),
		norm.NFC,
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
