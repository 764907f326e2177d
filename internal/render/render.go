// Package render draws a verse payload onto a grayscale bitmap sized for
// an e-ink panel.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/at-ishikawa/bibleclock/internal/selector"
)

type Options struct {
	Width       int
	Height      int
	MaxFontSize int
	MinFontSize int
}

type faceKey struct {
	font *opentype.Font
	size int
}

// Renderer is safe for concurrent use; calls are serialized.
type Renderer struct {
	opts    Options
	regular *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

func New(opts Options) (*Renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid display size %dx%d", opts.Width, opts.Height)
	}
	if opts.MinFontSize <= 0 || opts.MinFontSize > opts.MaxFontSize {
		return nil, fmt.Errorf("invalid font sizes %d..%d", opts.MinFontSize, opts.MaxFontSize)
	}

	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("opentype.Parse(goregular) > %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("opentype.Parse(gobold) > %w", err)
	}
	return &Renderer{
		opts:    opts,
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

func (r *Renderer) face(f *opentype.Font, size int) font.Face {
	key := faceKey{font: f, size: size}
	if face, ok := r.faces[key]; ok {
		return face
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// NewFace only fails on invalid options
		panic(fmt.Sprintf("opentype.NewFace(%d) > %v", size, err))
	}
	r.faces[key] = face
	return face
}

// Render draws the payload. Placeholder payloads get the error layout.
func (r *Renderer) Render(p selector.Payload) (*image.Gray, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := r.layout(p)
	img := image.NewGray(image.Rect(0, 0, r.opts.Width, r.opts.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	mx, my := r.margins()
	chrome := r.face(r.regular, l.ChromeSize)
	chromeBold := r.face(r.bold, l.ChromeSize)
	top := my + l.ChromeSize
	bottom := r.opts.Height - my

	r.text(img, chromeBold, mx, top, l.TopLeft)
	r.text(img, chrome, r.opts.Width-mx-measure(chrome, l.TopRight), top, l.TopRight)
	r.text(img, chrome, mx, bottom, l.BottomLeft)
	r.text(img, chromeBold, r.opts.Width-mx-measure(chromeBold, l.BottomRight), bottom, l.BottomRight)
	if l.Subtitle != "" {
		r.text(img, chrome, (r.opts.Width-measure(chrome, l.Subtitle))/2, top+lineHeight(l.ChromeSize)*2, l.Subtitle)
	}
	r.rule(img, mx, r.opts.Width-mx, my+l.ChromeSize*2)
	r.rule(img, mx, r.opts.Width-mx, bottom-l.ChromeSize*2)

	if l.Placeholder {
		r.drawPlaceholder(img, l)
		return img, nil
	}

	body := r.face(r.regular, l.FontSize)
	for _, block := range l.Blocks {
		y := block.Rect.Min.Y
		if block.Title != "" {
			r.text(img, chromeBold, block.Rect.Min.X, y-l.ChromeSize, block.Title)
		}
		height := len(block.Lines) * lineHeight(l.FontSize)
		y += (block.Rect.Dy()-height)/2 + l.FontSize
		for _, line := range block.Lines {
			x := block.Rect.Min.X + (block.Rect.Dx()-measure(body, line))/2
			r.text(img, body, x, y, line)
			y += lineHeight(l.FontSize)
		}
	}
	return img, nil
}

func (r *Renderer) drawPlaceholder(img *image.Gray, l Layout) {
	headline := r.face(r.bold, l.FontSize)
	detail := r.face(r.regular, l.ChromeSize)

	rect := l.Blocks[0].Rect
	y := rect.Min.Y + rect.Dy()/2
	r.text(img, headline, rect.Min.X+(rect.Dx()-measure(headline, selector.PlaceholderText))/2, y, selector.PlaceholderText)
	if len(l.Blocks) < 2 {
		return
	}
	y += lineHeight(l.FontSize)
	for _, line := range l.Blocks[1].Lines {
		r.text(img, detail, rect.Min.X+(rect.Dx()-measure(detail, line))/2, y, line)
		y += lineHeight(l.ChromeSize)
	}
}

func (r *Renderer) text(img *image.Gray, face font.Face, x, y int, s string) {
	if s == "" {
		return
	}
	d := font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// rule draws a horizontal line two pixels thick.
func (r *Renderer) rule(img *image.Gray, x0, x1, y int) {
	black := color.Gray{Y: 0}
	for x := x0; x < x1; x++ {
		img.SetGray(x, y, black)
		img.SetGray(x, y+1, black)
	}
}

func measure(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}
