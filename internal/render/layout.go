package render

import (
	"image"
	"strings"

	"golang.org/x/image/font"

	"github.com/at-ishikawa/bibleclock/internal/selector"
)

const ellipsis = "..."

// Block is wrapped text placed in a rectangle.
type Block struct {
	Title string
	Lines []string
	Rect  image.Rectangle
}

// Layout is the position of every text element of one screen.
type Layout struct {
	FontSize   int
	ChromeSize int
	// TopLeft and TopRight are the mode indicator and the time.
	TopLeft  string
	TopRight string
	// BottomLeft and BottomRight are the version and the reference.
	BottomLeft  string
	BottomRight string
	Subtitle    string
	Blocks      []Block
	Placeholder bool
}

// ModeIndicator is the top left label, e.g. "Mode: Day - Christmas Day".
func ModeIndicator(p selector.Payload) string {
	if p.Mode == selector.ModeDay {
		if p.Description != "" {
			return "Mode: Day - " + p.Description
		}
		return "Mode: Day"
	}
	return "Mode: " + selector.ModeClock.DisplayName()
}

// Layout computes where the payload goes without drawing it.
func (r *Renderer) Layout(p selector.Payload) Layout {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.layout(p)
}

func (r *Renderer) layout(p selector.Payload) Layout {
	chrome := r.chromeSize()
	l := Layout{
		ChromeSize:  chrome,
		TopLeft:     ModeIndicator(p),
		TopRight:    p.DisplayTime(),
		BottomLeft:  p.Version.DisplayName(),
		BottomRight: p.Label,
		Placeholder: p.Placeholder,
	}
	if p.Mode != selector.ModeDay {
		l.Subtitle = p.Description
	}

	content := r.contentRect(chrome)
	if p.Placeholder {
		l.FontSize = r.opts.MaxFontSize
		l.Blocks = []Block{
			{
				Lines: []string{selector.PlaceholderText},
				Rect:  content,
			},
		}
		if p.Error != "" {
			face := r.face(r.regular, chrome)
			l.Blocks = append(l.Blocks, Block{
				Lines: wrap(face, p.Error, content.Dx()),
				Rect:  content,
			})
		}
		return l
	}

	if !p.HasAltText() {
		size, lines := r.fit([]string{p.Text}, content.Dx(), content.Dy())
		l.FontSize = size
		l.Blocks = []Block{{Lines: lines[0], Rect: content}}
		return l
	}

	gutter := r.opts.Width / 24
	half := (content.Dx() - gutter) / 2
	left := image.Rect(content.Min.X, content.Min.Y+chrome*2, content.Min.X+half, content.Max.Y)
	right := image.Rect(content.Max.X-half, content.Min.Y+chrome*2, content.Max.X, content.Max.Y)
	size, lines := r.fit([]string{p.Text, p.AltText}, half, left.Dy())
	l.FontSize = size
	l.Blocks = []Block{
		{Title: "KJV", Lines: lines[0], Rect: left},
		{Title: "Amplified", Lines: lines[1], Rect: right},
	}
	return l
}

func (r *Renderer) chromeSize() int {
	return max(r.opts.MinFontSize, r.opts.Height/30)
}

func (r *Renderer) margins() (int, int) {
	return r.opts.Width / 18, r.opts.Height / 16
}

// contentRect is the area between the header and the footer.
func (r *Renderer) contentRect(chrome int) image.Rectangle {
	mx, my := r.margins()
	return image.Rect(
		mx,
		my+chrome*3,
		r.opts.Width-mx,
		r.opts.Height-my-chrome*3,
	)
}

func lineHeight(size int) int {
	return size + size/4
}

// fit finds the largest size at which every text fits its box. At the
// minimum size overflowing text is truncated with an ellipsis.
func (r *Renderer) fit(texts []string, width, height int) (int, [][]string) {
	for size := r.opts.MaxFontSize; size >= r.opts.MinFontSize; size -= 2 {
		face := r.face(r.regular, size)
		wrapped := make([][]string, len(texts))
		fits := true
		for i, text := range texts {
			wrapped[i] = wrap(face, text, width)
			if len(wrapped[i])*lineHeight(size) > height {
				fits = false
				break
			}
		}
		if fits {
			return size, wrapped
		}
	}

	size := r.opts.MinFontSize
	face := r.face(r.regular, size)
	limit := max(1, height/lineHeight(size))
	wrapped := make([][]string, len(texts))
	for i, text := range texts {
		wrapped[i] = truncate(face, wrap(face, text, width), limit, width)
	}
	return size, wrapped
}

// wrap breaks text into lines no wider than width. A single word wider
// than width gets a line of its own.
func wrap(face font.Face, text string, width int) []string {
	var (
		lines   []string
		current []string
	)
	for _, word := range strings.Fields(text) {
		candidate := strings.Join(append(current, word), " ")
		if font.MeasureString(face, candidate).Ceil() <= width || len(current) == 0 {
			current = append(current, word)
			continue
		}
		lines = append(lines, strings.Join(current, " "))
		current = []string{word}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}

func truncate(face font.Face, lines []string, limit, width int) []string {
	if len(lines) <= limit {
		return lines
	}
	lines = append([]string(nil), lines[:limit]...)
	last := lines[limit-1]
	for last != "" && font.MeasureString(face, last+ellipsis).Ceil() > width {
		cut := strings.LastIndexByte(last, ' ')
		if cut < 0 {
			last = ""
			break
		}
		last = last[:cut]
	}
	lines[limit-1] = last + ellipsis
	return lines
}
