// Package render turns a block layout into A4 page images and packs them
// into a PDF. It knows nothing about the documents it prints.
package render

// Layout is a document as a vertical run of blocks.
type Layout struct {
	Blocks []Block
}

// Block is one of Heading, Paragraph, Fields, Table, Image, Columns or
// Spacer.
type Block interface {
	block()
}

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

type Heading struct {
	Text string
}

type Paragraph struct {
	Text  string
	Bold  bool
	Align Align
}

type Field struct {
	Label string
	Value string
}

// Fields prints "label: value" lines.
type Fields struct {
	Items []Field
}

// Table is a bordered grid. Widths are relative column weights; missing
// weights count as 1.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
	Widths []float64
}

// Image embeds the image loaded from Source. When it cannot be loaded a
// bordered block with Fallback and Link is printed instead.
type Image struct {
	Source   string
	Caption  string
	Link     string
	Fallback string
}

// Columns prints equally wide columns side by side, lines centered.
type Columns struct {
	Columns [][]string
}

type Spacer struct {
	Height int
}

func (Heading) block()   {}
func (Paragraph) block() {}
func (Fields) block()    {}
func (Table) block()     {}
func (Image) block()     {}
func (Columns) block()   {}
func (Spacer) block()    {}

// ImageSources lists the distinct image sources of l in order.
func (l Layout) ImageSources() []string {
	seen := map[string]bool{}
	var out []string
	for _, b := range l.Blocks {
		img, ok := b.(Image)
		if !ok || img.Source == "" || seen[img.Source] {
			continue
		}
		seen[img.Source] = true
		out = append(out, img.Source)
	}
	return out
}
