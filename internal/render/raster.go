package render

import (
	"image"
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var (
	ink        = color.Black
	paper      = color.White
	rule       = color.Gray{Y: 0x80}
	headerFill = color.RGBA{R: 0xE8, G: 0xEE, B: 0xF7, A: 0xFF}
	missFill   = color.Gray{Y: 0xF2}
)

const (
	blockGap       = 10
	cellPad        = 6
	maxImageHeight = 640
)

// painter walks a layout top to bottom. With a nil dst it only advances the
// cursor, which is how the canvas height is measured.
type painter struct {
	dst    *image.RGBA
	faces  Faces
	images map[string]*image.NRGBA
	width  int
	margin int
	y      int
	// breaks are y offsets where a page may end without cutting a line.
	breaks []int
}

// Rasterize draws l onto a single canvas width pixels wide and as tall as
// the content. It also returns the offsets where pages may be cut.
func Rasterize(l Layout, faces Faces, images map[string]image.Image, width int) (*image.RGBA, []int) {
	margin := width / 20
	scaled := make(map[string]*image.NRGBA, len(images))
	for src, img := range images {
		if img != nil {
			scaled[src] = imaging.Fit(img, width-2*margin, maxImageHeight, imaging.Lanczos)
		}
	}

	measure := &painter{faces: faces, images: scaled, width: width, margin: margin}
	measure.paint(l)

	dst := image.NewRGBA(image.Rect(0, 0, width, max(measure.y, 1)))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(paper), image.Point{}, draw.Src)
	p := &painter{dst: dst, faces: faces, images: scaled, width: width, margin: margin}
	p.paint(l)
	return dst, p.breaks
}

func (p *painter) contentWidth() int {
	return p.width - 2*p.margin
}

func (p *painter) paint(l Layout) {
	p.y = p.margin
	for _, b := range l.Blocks {
		switch b := b.(type) {
		case Heading:
			p.lines(p.faces.Heading, b.Text, AlignCenter, true)
		case Paragraph:
			p.lines(p.faces.Body, b.Text, b.Align, b.Bold)
		case Fields:
			for _, it := range b.Items {
				p.lines(p.faces.Body, it.Label+": "+it.Value, AlignLeft, false)
			}
		case Table:
			p.table(b)
		case Image:
			p.image(b)
		case Columns:
			p.columns(b)
		case Spacer:
			p.y += b.Height
		}
		p.y += blockGap
		p.breaks = append(p.breaks, p.y)
	}
	p.y += p.margin
}

func (p *painter) lines(f *Face, s string, align Align, bold bool) {
	for _, line := range wrap(f, s, p.contentWidth()) {
		x := p.margin
		if align == AlignCenter {
			x += (p.contentWidth() - f.Width(line)) / 2
		}
		p.text(f, line, x, p.y, bold)
		p.y += f.height
		p.breaks = append(p.breaks, p.y)
	}
}

func (p *painter) table(t Table) {
	if t.Title != "" {
		p.lines(p.faces.Body, t.Title, AlignLeft, true)
	}
	widths := columnWidths(t.Widths, columnCount(t), p.contentWidth())
	p.hline(p.y)
	if len(t.Header) > 0 {
		p.row(t.Header, widths, true)
	}
	for _, r := range t.Rows {
		p.row(r, widths, false)
	}
}

func (p *painter) row(cells []string, widths []int, header bool) {
	f := p.faces.Body
	wrapped := make([][]string, len(widths))
	lines := 1
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		wrapped[i] = wrap(f, cell, w-2*cellPad)
		lines = max(lines, len(wrapped[i]))
	}
	h := lines*f.height + 2*cellPad
	top := p.y
	if header {
		p.fill(image.Rect(p.margin, top, p.margin+p.contentWidth(), top+h), headerFill)
	}
	x := p.margin
	for i, w := range widths {
		for j, line := range wrapped[i] {
			p.text(f, line, x+cellPad, top+cellPad+j*f.height, header)
		}
		p.vline(x, top, top+h)
		x += w
	}
	p.vline(p.margin+p.contentWidth()-1, top, top+h)
	p.y = top + h
	p.hline(p.y)
	p.breaks = append(p.breaks, p.y+1)
}

func (p *painter) image(b Image) {
	if img, ok := p.images[b.Source]; ok {
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		x := p.margin + (p.contentWidth()-w)/2
		if p.dst != nil {
			draw.Draw(p.dst, image.Rect(x, p.y, x+w, p.y+h), img, img.Bounds().Min, draw.Over)
		}
		p.y += h + cellPad
	} else {
		f := p.faces.Body
		text := b.Fallback
		if b.Link != "" {
			text += "\n" + b.Link
		}
		lines := wrap(f, text, p.contentWidth()-2*cellPad)
		h := len(lines)*f.height + 2*cellPad
		box := image.Rect(p.margin, p.y, p.margin+p.contentWidth(), p.y+h)
		p.fill(box, missFill)
		p.frame(box)
		for i, line := range lines {
			p.text(f, line, p.margin+cellPad, p.y+cellPad+i*f.height, i == 0)
		}
		p.y += h + cellPad
	}
	if b.Caption != "" {
		p.lines(p.faces.Body, b.Caption, AlignCenter, false)
	}
}

func (p *painter) columns(c Columns) {
	if len(c.Columns) == 0 {
		return
	}
	f := p.faces.Body
	w := p.contentWidth() / len(c.Columns)
	top, bottom := p.y, p.y
	for i, col := range c.Columns {
		y := top
		for _, line := range col {
			for _, l := range wrap(f, line, w-2*cellPad) {
				x := p.margin + i*w + (w-f.Width(l))/2
				p.text(f, l, x, y, y == top)
				y += f.height
			}
		}
		bottom = max(bottom, y)
	}
	p.y = bottom
}

func (p *painter) text(f *Face, s string, x, y int, bold bool) {
	if p.dst == nil || s == "" {
		return
	}
	d := font.Drawer{Dst: p.dst, Src: image.NewUniform(ink), Face: f.face, Dot: fixed.P(x, y+f.ascent)}
	d.DrawString(s)
	if bold {
		d.Dot = fixed.P(x+1, y+f.ascent)
		d.DrawString(s)
	}
}

func (p *painter) fill(r image.Rectangle, c color.Color) {
	if p.dst != nil {
		draw.Draw(p.dst, r, image.NewUniform(c), image.Point{}, draw.Src)
	}
}

func (p *painter) hline(y int) {
	p.fill(image.Rect(p.margin, y, p.margin+p.contentWidth(), y+1), rule)
}

func (p *painter) vline(x, y0, y1 int) {
	p.fill(image.Rect(x, y0, x+1, y1), rule)
}

func (p *painter) frame(r image.Rectangle) {
	p.fill(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), rule)
	p.fill(image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), rule)
	p.fill(image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), rule)
	p.fill(image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), rule)
}

func columnCount(t Table) int {
	n := max(len(t.Header), len(t.Widths))
	for _, r := range t.Rows {
		n = max(n, len(r))
	}
	return max(n, 1)
}

func columnWidths(weights []float64, n, total int) []int {
	sum := 0.0
	ws := make([]float64, n)
	for i := range ws {
		ws[i] = 1
		if i < len(weights) && weights[i] > 0 {
			ws[i] = weights[i]
		}
		sum += ws[i]
	}
	out := make([]int, n)
	used := 0
	for i, w := range ws {
		out[i] = int(w / sum * float64(total))
		used += out[i]
	}
	out[n-1] += total - used
	return out
}

// wrap breaks s into lines no wider than width, splitting words that do not
// fit on their own.
func wrap(f *Face, s string, width int) []string {
	width = max(width, 1)
	s = f.Prepare(s)
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			for f.Width(word) > width {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				cut := fitPrefix(f, word, width)
				lines = append(lines, word[:cut])
				word = word[cut:]
			}
			if word == "" {
				continue
			}
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if f.Width(candidate) <= width {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}

// fitPrefix returns the byte length of the longest prefix of word that fits
// width, never less than one rune.
func fitPrefix(f *Face, word string, width int) int {
	_, first := utf8.DecodeRuneInString(word)
	cut := first
	for i := range word {
		if i == 0 {
			continue
		}
		if f.Width(word[:i]) > width {
			break
		}
		cut = i
	}
	if f.Width(word) <= width {
		return len(word)
	}
	return cut
}
