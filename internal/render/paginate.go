package render

import (
	"context"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// A4 portrait, in millimetres.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
)

// PageHeight is the pixel height of an A4 page width pixels wide.
func PageHeight(width int) int {
	return int(float64(width)*PageHeightMM/PageWidthMM + 0.5)
}

// Paginate slices canvas into pages of pageHeight pixels. A page ends at the
// last break that leaves it at least half full, else at the page edge. The
// last page is padded with white so all pages share one size. It stops with
// ctx's error between pages and then returns no pages at all.
func Paginate(ctx context.Context, canvas image.Image, breaks []int, pageHeight int) ([]image.Image, error) {
	b := canvas.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 || pageHeight <= 0 {
		return nil, nil
	}
	var pages []image.Image
	for top := 0; top < height; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bottom := cutAt(top, pageHeight, height, breaks)
		slice := imaging.Crop(canvas, image.Rect(b.Min.X, b.Min.Y+top, b.Max.X, b.Min.Y+bottom))
		page := imaging.New(width, pageHeight, color.White)
		page = imaging.Paste(page, slice, image.Pt(0, 0))
		pages = append(pages, page)
		top = bottom
	}
	return pages, nil
}

func cutAt(top, pageHeight, height int, breaks []int) int {
	limit := top + pageHeight
	if limit >= height {
		return height
	}
	best := limit
	for _, br := range breaks {
		if br > top+pageHeight/2 && br <= limit {
			best = br
		}
	}
	return best
}
