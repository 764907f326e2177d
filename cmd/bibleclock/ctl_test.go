package main

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/bibleclock/internal/bible"
	"github.com/at-ishikawa/bibleclock/internal/config"
	mock_server "github.com/at-ishikawa/bibleclock/internal/mocks/server"
	"github.com/at-ishikawa/bibleclock/internal/scheduler"
	"github.com/at-ishikawa/bibleclock/internal/selector"
	"github.com/at-ishikawa/bibleclock/internal/server"
)

func newControlServer(t *testing.T, s server.Scheduler, preview server.Preview) string {
	t.Helper()
	srv := server.NewHTTPServer(config.ServerConfig{Port: 8080}, server.NewControlHandler(s, preview))
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts.URL + "/"
}

func TestCtlCommand_Events(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantKind scheduler.EventKind
	}{
		{name: "cycle", args: []string{"cycle"}, wantKind: scheduler.EventCycleMode},
		{name: "toggle", args: []string{"toggle"}, wantKind: scheduler.EventToggleVersion},
		{name: "mode", args: []string{"mode", "day"}, wantKind: scheduler.EventSetMode},
		{name: "version", args: []string{"version", "kjv_amplified"}, wantKind: scheduler.EventSetVersion},
		{name: "refresh", args: []string{"refresh"}, wantKind: scheduler.EventRefresh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			sched := mock_server.NewMockScheduler(ctrl)
			var submitted scheduler.Event
			sched.EXPECT().Submit(gomock.Any()).DoAndReturn(func(ev scheduler.Event) error {
				submitted = ev
				return nil
			})
			url := newControlServer(t, sched, nil)

			out, err := execute(t, newCtlCommand(), append([]string{"--url", url}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, submitted.Kind)
			assert.Equal(t, "queued event "+submitted.ID.String()+"\n", out)
		})
	}
}

func TestCtlCommand_Errors(t *testing.T) {
	t.Run("invalid mode is rejected before it reaches the scheduler", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		url := newControlServer(t, mock_server.NewMockScheduler(ctrl), nil)

		_, err := execute(t, newCtlCommand(), "--url", url, "mode", "night")
		require.Error(t, err)
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("full queue", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sched := mock_server.NewMockScheduler(ctrl)
		sched.EXPECT().Submit(gomock.Any()).Return(scheduler.ErrQueueFull)
		url := newControlServer(t, sched, nil)

		_, err := execute(t, newCtlCommand(), "--url", url, "refresh")
		require.Error(t, err)
		assert.Equal(t, connect.CodeResourceExhausted, connect.CodeOf(err))
	})

	t.Run("missing arguments", func(t *testing.T) {
		_, err := execute(t, newCtlCommand(), "mode")
		assert.Error(t, err)
	})
}

func TestCtlCommand_Status(t *testing.T) {
	started := time.Date(2025, 12, 25, 15, 0, 0, 0, time.Local)
	tests := []struct {
		name   string
		status scheduler.Status
		want   []string
	}{
		{
			name: "before the first payload",
			status: scheduler.Status{
				Mode:      selector.ModeClock,
				Version:   selector.KJVOnly,
				StartedAt: started,
			},
			want: []string{
				"Mode: clock  Version: kjv_only",
				"Nothing displayed yet",
				"Started: 2025-12-25 15:00:00",
			},
		},
		{
			name: "showing a verse",
			status: scheduler.Status{
				Mode:    selector.ModeClock,
				Version: selector.KJVOnly,
				Payload: selector.Payload{
					Reference: bible.NewReference("John", 3, 16),
					Label:     "John 3:16",
					Text:      "For God so loved the world",
					Mode:      selector.ModeClock,
					Version:   selector.KJVOnly,
					Time:      started.Add(16 * time.Minute),
				},
				HasPayload: true,
				Ticks:      3,
				Renders:    1,
			},
			want: []string{
				"John 3:16",
				"For God so loved the world",
				"Ticks: 3  Renders: 1  Render errors: 0  Events: 0",
			},
		},
		{
			name: "showing a placeholder",
			status: scheduler.Status{
				Mode:    selector.ModeClock,
				Version: selector.KJVOnly,
				Payload: selector.Payload{
					Label:       selector.PlaceholderText,
					Placeholder: true,
				},
				HasPayload: true,
				LastError:  "KJV text not found for Obadiah 1:1",
			},
			want: []string{"Showing a placeholder: KJV text not found for Obadiah 1:1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			sched := mock_server.NewMockScheduler(ctrl)
			sched.EXPECT().Status().Return(tt.status)
			url := newControlServer(t, sched, nil)

			out, err := execute(t, newCtlCommand(), "--url", url, "status")
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

type latestImage string

func (l latestImage) Latest() (string, bool) {
	return string(l), l != ""
}

func TestCtlCommand_Preview(t *testing.T) {
	tmpDir := t.TempDir()
	image := filepath.Join(tmpDir, "frame.png")
	require.NoError(t, os.WriteFile(image, []byte("\x89PNG fake"), 0644))

	t.Run("saves the latest image", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		url := newControlServer(t, mock_server.NewMockScheduler(ctrl), latestImage(image))
		out := filepath.Join(tmpDir, "preview.png")

		stdout, err := execute(t, newCtlCommand(), "--url", url, "preview", out)
		require.NoError(t, err)
		assert.Equal(t, "saved "+image+" to "+out+"\n", stdout)
		got, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, []byte("\x89PNG fake"), got)
	})

	t.Run("nothing displayed yet", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		url := newControlServer(t, mock_server.NewMockScheduler(ctrl), latestImage(""))

		_, err := execute(t, newCtlCommand(), "--url", url, "preview", filepath.Join(tmpDir, "none.png"))
		require.Error(t, err)
		assert.NoFileExists(t, filepath.Join(tmpDir, "none.png"))
	})
}
