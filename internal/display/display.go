// Package display pushes rendered frames to a sink. The PNG sink stands in
// for the e-ink panel.
package display

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

//go:generate mockgen -source=display.go -destination=../mocks/display/mock_display.go -package=mock_display

type Display interface {
	Show(ctx context.Context, img image.Image) error
	Close() error
}

const (
	filePrefix = "bibleclock_display_"
	fileSuffix = ".png"
	timeLayout = "20060102_150405.000000"
)

// PNGDisplay writes each frame to a timestamped PNG file and keeps only
// the newest ones.
type PNGDisplay struct {
	dir  string
	keep int
	now  func() time.Time

	mu     sync.Mutex
	latest string
}

func NewPNGDisplay(dir string, keep int) (*PNGDisplay, error) {
	if keep < 1 {
		return nil, fmt.Errorf("keep must be at least 1, got %d", keep)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}
	return &PNGDisplay{
		dir:  dir,
		keep: keep,
		now:  time.Now,
	}, nil
}

func (d *PNGDisplay) Show(ctx context.Context, img image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	path := filepath.Join(d.dir, filePrefix+d.now().Format(timeLayout)+fileSuffix)
	if err := writePNG(path, img); err != nil {
		return err
	}
	d.latest = path

	if err := d.prune(); err != nil {
		slog.Warn("failed to prune display outputs", "directory", d.dir, "error", err)
	}
	return nil
}

// writePNG writes through a temporary file so readers never see a partial
// image.
func writePNG(path string, img image.Image) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".frame-*")
	if err != nil {
		return fmt.Errorf("os.CreateTemp() > %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if err := png.Encode(tmp, img); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("png.Encode() > %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file.Close() > %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("os.Rename(%s) > %w", path, err)
	}
	return nil
}

// Frames lists the written frames, oldest first.
func (d *PNGDisplay) Frames() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(d.dir, filePrefix+"*"+fileSuffix))
	if err != nil {
		return nil, fmt.Errorf("filepath.Glob() > %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

func (d *PNGDisplay) prune() error {
	paths, err := d.Frames()
	if err != nil {
		return err
	}
	for len(paths) > d.keep {
		if err := os.Remove(paths[0]); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("os.Remove(%s) > %w", paths[0], err)
		}
		paths = paths[1:]
	}
	return nil
}

// Latest returns the most recent frame written by this display, falling
// back to the newest file in the directory.
func (d *PNGDisplay) Latest() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.latest != "" {
		return d.latest, true
	}
	paths, err := d.Frames()
	if err != nil || len(paths) == 0 {
		return "", false
	}
	return paths[len(paths)-1], true
}

func (d *PNGDisplay) Close() error {
	return nil
}
