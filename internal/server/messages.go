package server

import "time"

type GetStatusRequest struct{}

type GetStatusResponse struct {
	Mode         string    `json:"mode"`
	Version      string    `json:"version"`
	Reference    string    `json:"reference,omitempty"`
	Label        string    `json:"label,omitempty"`
	Text         string    `json:"text,omitempty"`
	AltText      string    `json:"altText,omitempty"`
	Description  string    `json:"description,omitempty"`
	DisplayTime  string    `json:"displayTime,omitempty"`
	Placeholder  bool      `json:"placeholder"`
	Ticks        uint64    `json:"ticks"`
	Renders      uint64    `json:"renders"`
	RenderErrors uint64    `json:"renderErrors"`
	Events       uint64    `json:"events"`
	StartedAt    time.Time `json:"startedAt"`
	LastRenderAt time.Time `json:"lastRenderAt"`
	LastError    string    `json:"lastError,omitempty"`
}

type CycleModeRequest struct{}

type ToggleVersionRequest struct{}

type SetModeRequest struct {
	Mode string `json:"mode"`
}

type SetVersionRequest struct {
	Version string `json:"version"`
}

type RefreshRequest struct{}

// EventResponse acknowledges a queued event. The change is applied on the
// next tick, so callers poll GetStatus to observe it.
type EventResponse struct {
	EventID string `json:"eventId"`
}

type GetPreviewRequest struct {
	IncludeImage bool `json:"includeImage"`
}

type GetPreviewResponse struct {
	Path string `json:"path"`
	// PNG is only set when IncludeImage was requested.
	PNG []byte `json:"png,omitempty"`
}
