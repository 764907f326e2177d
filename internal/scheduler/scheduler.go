// Package scheduler runs the appliance loop: read the clock, resolve and
// select a verse, and hand changed payloads to a render worker.
package scheduler

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/at-ishikawa/bibleclock/internal/bible"
	"github.com/at-ishikawa/bibleclock/internal/clock"
	"github.com/at-ishikawa/bibleclock/internal/display"
	"github.com/at-ishikawa/bibleclock/internal/selector"
	"github.com/at-ishikawa/bibleclock/internal/state"
)

//go:generate mockgen -source=scheduler.go -destination=../mocks/scheduler/mock_scheduler.go -package=mock_scheduler

type Selector interface {
	Tick(now time.Time) (selector.Payload, error)
	State() (selector.Mode, selector.Version)
	CycleMode() selector.Mode
	ToggleVersion() selector.Version
	SetMode(mode selector.Mode)
	SetVersion(version selector.Version)
}

type Renderer interface {
	Render(payload selector.Payload) (*image.Gray, error)
}

// Backfiller fetches text for a reference the datasets lack.
type Backfiller interface {
	Request(ref bible.Reference) bool
}

type Recorder interface {
	SaveModes(ctx context.Context, modes state.Modes) error
	RecordDisplay(ctx context.Context, entry *state.DisplayEntry) error
	PruneDisplays(ctx context.Context, keep int) (int64, error)
}

const (
	DefaultInterval  = time.Second
	DefaultQueueSize = 16
	pruneEvery       = 100
)

// Status is a snapshot of the scheduler for the control service.
type Status struct {
	Mode         selector.Mode
	Version      selector.Version
	Payload      selector.Payload
	HasPayload   bool
	Ticks        uint64
	Renders      uint64
	RenderErrors uint64
	Events       uint64
	StartedAt    time.Time
	LastRenderAt time.Time
	LastError    string
}

type Scheduler struct {
	selector Selector
	renderer Renderer
	display  display.Display
	clock    clock.Source

	interval     time.Duration
	logger       *slog.Logger
	backfiller   Backfiller
	recorder     Recorder
	historyLimit int

	events  chan Event
	pending chan selector.Payload

	// owned by the tick goroutine
	lastKey         string
	lastFingerprint string
	// slot whose placeholder already asked for a backfill
	failedKey string

	mu     sync.Mutex
	status Status
}

type Option func(*Scheduler)

func WithInterval(interval time.Duration) Option {
	return func(s *Scheduler) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

func WithBackfiller(b Backfiller) Option {
	return func(s *Scheduler) {
		s.backfiller = b
	}
}

// WithRecorder persists modes and display history, keeping at most
// historyLimit entries.
func WithRecorder(r Recorder, historyLimit int) Option {
	return func(s *Scheduler) {
		s.recorder = r
		s.historyLimit = historyLimit
	}
}

func WithQueueSize(size int) Option {
	return func(s *Scheduler) {
		if size > 0 {
			s.events = make(chan Event, size)
		}
	}
}

func New(sel Selector, renderer Renderer, disp display.Display, source clock.Source, opts ...Option) *Scheduler {
	s := &Scheduler{
		selector: sel,
		renderer: renderer,
		display:  disp,
		clock:    source,
		interval: DefaultInterval,
		logger:   slog.Default(),
		events:   make(chan Event, DefaultQueueSize),
		pending:  make(chan selector.Payload, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit queues an event for the tick goroutine without blocking.
func (s *Scheduler) Submit(ev Event) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	select {
	case s.events <- ev:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run blocks until ctx is done. A payload already handed to the render
// worker is still shown before Run returns.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	s.status.StartedAt = s.clock.Now()
	s.mu.Unlock()

	loopDone := make(chan struct{})
	var g errgroup.Group
	g.Go(func() error {
		defer close(loopDone)
		return s.tickLoop(ctx)
	})
	g.Go(func() error {
		s.renderLoop(ctx, loopDone)
		return nil
	})
	return g.Wait()
}

func (s *Scheduler) tickLoop(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("scheduler started", "interval", s.interval)
	s.step(ctx, true)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return nil
		case ev := <-s.events:
			s.apply(ctx, ev)
			s.drainEvents(ctx)
			s.step(ctx, true)
		case <-ticker.C:
			s.step(ctx, false)
		}
	}
}

func (s *Scheduler) drainEvents(ctx context.Context) {
	for {
		select {
		case ev := <-s.events:
			s.apply(ctx, ev)
		default:
			return
		}
	}
}

func (s *Scheduler) renderLoop(ctx context.Context, loopDone <-chan struct{}) {
	for {
		select {
		case p := <-s.pending:
			if err := s.present(ctx, p); err != nil {
				s.logger.Error("failed to present payload", "label", p.Label, "error", err)
			}
		case <-loopDone:
			select {
			case p := <-s.pending:
				if err := s.present(context.WithoutCancel(ctx), p); err != nil {
					s.logger.Error("failed to present payload", "label", p.Label, "error", err)
				}
			default:
			}
			return
		}
	}
}

func slotKey(now time.Time, mode selector.Mode, version selector.Version) string {
	layout := "2006-01-02 15:04"
	if mode == selector.ModeDay {
		layout = time.DateOnly
	}
	return fmt.Sprintf("%s|%s|%s", now.Format(layout), mode, version)
}

// step computes a payload when the slot changed or force is set, and hands
// it to the render worker when its fingerprint changed.
func (s *Scheduler) step(ctx context.Context, force bool) {
	now := s.clock.Now()
	mode, version := s.selector.State()

	s.mu.Lock()
	s.status.Ticks++
	s.mu.Unlock()

	key := slotKey(now, mode, version)
	if !force && key == s.lastKey {
		return
	}

	payload, err := s.selector.Tick(now)
	if err != nil {
		// leave lastKey alone so the next tick tries the slot again
		s.logger.Warn("showing placeholder", "label", payload.Label, "error", err)
		if key != s.failedKey {
			s.failedKey = key
			s.requestBackfill(err)
		}
	} else {
		s.lastKey = key
		s.failedKey = ""
	}

	fingerprint := payload.Fingerprint()
	if fingerprint == s.lastFingerprint {
		s.logger.Debug("payload unchanged", "label", payload.Label)
		return
	}
	s.lastFingerprint = fingerprint
	s.setPayload(payload, err)
	s.offer(payload)
}

// offer replaces any payload the worker has not picked up yet.
func (s *Scheduler) offer(p selector.Payload) {
	select {
	case s.pending <- p:
		return
	default:
	}
	select {
	case stale := <-s.pending:
		s.logger.Debug("dropping stale payload", "label", stale.Label)
	default:
	}
	select {
	case s.pending <- p:
	default:
		s.logger.Warn("render worker is busy, payload dropped", "label", p.Label)
	}
}

func (s *Scheduler) requestBackfill(err error) {
	if s.backfiller == nil {
		return
	}
	ref, ok := selector.MissingReference(err)
	if !ok {
		return
	}
	if s.backfiller.Request(ref) {
		s.logger.Info("requested verse backfill", "reference", ref.String())
	}
}

func (s *Scheduler) apply(ctx context.Context, ev Event) {
	logger := s.logger.With("event", ev.Kind, "eventID", ev.ID.String(), "source", ev.Source)

	switch ev.Kind {
	case EventCycleMode:
		logger.Info("mode changed", "mode", s.selector.CycleMode())
	case EventToggleVersion:
		logger.Info("version changed", "version", s.selector.ToggleVersion())
	case EventSetMode:
		mode, err := selector.ParseMode(string(ev.Mode))
		if err != nil {
			logger.Warn("ignoring event", "error", err)
			return
		}
		s.selector.SetMode(mode)
		logger.Info("mode set", "mode", mode)
	case EventSetVersion:
		version, err := selector.ParseVersion(string(ev.Version))
		if err != nil {
			logger.Warn("ignoring event", "error", err)
			return
		}
		s.selector.SetVersion(version)
		logger.Info("version set", "version", version)
	case EventRefresh:
		logger.Debug("refresh requested")
	default:
		logger.Warn("ignoring unknown event")
		return
	}

	s.mu.Lock()
	s.status.Events++
	s.mu.Unlock()

	if ev.Kind == EventRefresh || s.recorder == nil {
		return
	}
	mode, version := s.selector.State()
	if err := s.recorder.SaveModes(ctx, state.Modes{Mode: string(mode), Version: string(version)}); err != nil {
		logger.Error("failed to save modes", "error", err)
	}
}

// RunOnce computes one payload and presents it synchronously.
func (s *Scheduler) RunOnce(ctx context.Context) (selector.Payload, error) {
	payload, err := s.selector.Tick(s.clock.Now())
	if err != nil {
		s.logger.Warn("showing placeholder", "label", payload.Label, "error", err)
	}
	s.setPayload(payload, err)
	if err := s.present(ctx, payload); err != nil {
		return payload, err
	}
	return payload, nil
}

func (s *Scheduler) present(ctx context.Context, p selector.Payload) error {
	img, err := s.renderer.Render(p)
	if err != nil {
		s.renderFailed(err)
		return fmt.Errorf("renderer.Render() > %w", err)
	}
	if err := s.display.Show(ctx, img); err != nil {
		s.renderFailed(err)
		return fmt.Errorf("display.Show() > %w", err)
	}

	s.mu.Lock()
	s.status.Renders++
	s.status.LastRenderAt = s.clock.Now()
	renders := s.status.Renders
	s.mu.Unlock()

	if s.recorder == nil {
		return nil
	}
	if err := s.recorder.RecordDisplay(ctx, displayEntry(p)); err != nil {
		s.logger.Error("failed to record display", "label", p.Label, "error", err)
		return nil
	}
	if s.historyLimit > 0 && renders%pruneEvery == 0 {
		if _, err := s.recorder.PruneDisplays(ctx, s.historyLimit); err != nil {
			s.logger.Error("failed to prune display history", "error", err)
		}
	}
	return nil
}

func displayEntry(p selector.Payload) *state.DisplayEntry {
	ref := ""
	if p.Reference.Book != "" {
		ref = p.Reference.String()
	}
	return &state.DisplayEntry{
		Reference:   ref,
		Label:       p.Label,
		Mode:        string(p.Mode),
		Version:     string(p.Version),
		Placeholder: p.Placeholder,
		Fingerprint: p.Fingerprint(),
		DisplayedAt: p.Time,
	}
}

func (s *Scheduler) renderFailed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.RenderErrors++
	s.status.LastError = err.Error()
}

func (s *Scheduler) setPayload(p selector.Payload, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Payload = p
	s.status.HasPayload = true
	if err != nil {
		s.status.LastError = err.Error()
	}
}

// Status is safe to call from any goroutine.
func (s *Scheduler) Status() Status {
	mode, version := s.selector.State()
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.status
	st.Mode = mode
	st.Version = version
	return st
}
