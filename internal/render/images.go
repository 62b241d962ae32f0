package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sourcegraph/conc/pool"
	_ "golang.org/x/image/webp"

	"github.com/kazz187/techconsole/pkg/panicerr"
)

const maxImageBytes = 20 << 20

// ImageLoader fetches and decodes the images a layout refers to.
type ImageLoader struct {
	client      *http.Client
	concurrency int
}

func NewImageLoader(client *http.Client, concurrency int, timeout time.Duration) *ImageLoader {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &ImageLoader{client: client, concurrency: concurrency}
}

type loaded struct {
	source string
	img    image.Image
	err    error
}

// LoadAll loads sources with bounded concurrency. Sources that fail to load
// are missing from the result; the renderer prints their fallback block.
func (l *ImageLoader) LoadAll(ctx context.Context, sources []string) map[string]image.Image {
	p := pool.NewWithResults[loaded]().WithMaxGoroutines(l.concurrency)
	for _, src := range sources {
		p.Go(func() loaded {
			img, err := panicerr.Value(func() (image.Image, error) {
				return l.Load(ctx, src)
			})
			return loaded{source: src, img: img, err: err}
		})
	}
	out := make(map[string]image.Image, len(sources))
	for _, r := range p.Wait() {
		if r.err != nil {
			slog.WarnContext(ctx, "evidence image unavailable", "source", shorten(r.source), "error", r.err)
			continue
		}
		out[r.source] = r.img
	}
	return out
}

// Load decodes a base64 data URL or fetches an http(s) URL.
func (l *ImageLoader) Load(ctx context.Context, source string) (image.Image, error) {
	if strings.HasPrefix(source, "data:") {
		data, err := DecodeDataURL(source)
		if err != nil {
			return nil, err
		}
		return decode(bytes.NewReader(data))
	}
	u, err := url.Parse(source)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("unsupported image source %q", shorten(source))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image: status %d", resp.StatusCode)
	}
	return decode(io.LimitReader(resp.Body, maxImageBytes))
}

func decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// DecodeDataURL returns the payload of a base64 data URL.
func DecodeDataURL(s string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data url")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("data url is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to decode data url: %w", err)
	}
	return data, nil
}

func shorten(s string) string {
	if len(s) > 80 {
		return s[:80] + "..."
	}
	return s
}
