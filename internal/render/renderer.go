package render

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"time"
)

type Options struct {
	PageWidth        int
	FontPath         string
	FontSize         float64
	ImageConcurrency int
	ImageTimeout     time.Duration
	HTTPClient       *http.Client
}

// Renderer runs the page pipeline: load images, rasterize, slice into
// pages, pack.
type Renderer struct {
	faces      Faces
	loader     *ImageLoader
	pageWidth  int
	pageHeight int
}

// New prepares the fonts up front so that every render starts with the
// faces ready.
func New(opts Options) (*Renderer, error) {
	faces, err := LoadFaces(opts.FontPath, opts.FontSize)
	if err != nil {
		return nil, err
	}
	width := opts.PageWidth
	if width <= 0 {
		width = 1240
	}
	return &Renderer{
		faces:      faces,
		loader:     NewImageLoader(opts.HTTPClient, opts.ImageConcurrency, opts.ImageTimeout),
		pageWidth:  width,
		pageHeight: PageHeight(width),
	}, nil
}

// Render produces the page images of l. A cancelled ctx yields no pages.
func (r *Renderer) Render(ctx context.Context, l Layout) ([]image.Image, error) {
	images := r.loader.LoadAll(ctx, l.ImageSources())
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	canvas, breaks := Rasterize(l, r.faces, images, r.pageWidth)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Paginate(ctx, canvas, breaks, r.pageHeight)
}

// RenderPDF renders l and packs the pages.
func (r *Renderer) RenderPDF(ctx context.Context, l Layout, opts PackOptions) ([]byte, error) {
	start := time.Now()
	pages, err := r.Render(ctx, l)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("layout produced no pages")
	}
	pdf, err := Pack(pages, opts)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "rendered pdf", "pages", len(pages), "bytes", len(pdf), "elapsed", time.Since(start))
	return pdf, nil
}
