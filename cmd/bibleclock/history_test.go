package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/bibleclock/internal/state"
	"github.com/at-ishikawa/bibleclock/internal/testutil"
)

func TestHistoryCommand(t *testing.T) {
	t.Run("empty database", func(t *testing.T) {
		setConfigFile(t, testutil.SetupTestConfig(t, t.TempDir()))

		out, err := execute(t, newHistoryCommand())
		require.NoError(t, err)
		assert.Equal(t, "Nothing has been displayed yet.\n", out)
	})

	t.Run("newest first and limited", func(t *testing.T) {
		setConfigFile(t, testutil.SetupTestConfig(t, t.TempDir()))
		cfg, err := loadConfig(nil)
		require.NoError(t, err)

		ctx := context.Background()
		repo, db, err := openRepository(ctx, cfg)
		require.NoError(t, err)
		start := time.Date(2025, 12, 25, 15, 16, 0, 0, time.Local)
		for i, entry := range []state.DisplayEntry{
			{Reference: "John 3:16", Label: "John 3:16", Mode: "clock", Version: "kjv_only"},
			{Reference: "Luke 2:10-11", Label: "Luke 2:10-11", Mode: "day", Version: "kjv_only"},
			{Reference: "Obadiah 1:1", Label: "Obadiah 1:1", Mode: "clock", Version: "kjv_amplified", Placeholder: true},
		} {
			entry.DisplayedAt = start.Add(time.Duration(i) * time.Minute)
			require.NoError(t, repo.RecordDisplay(ctx, &entry))
		}
		require.NoError(t, db.Close())

		out, err := execute(t, newHistoryCommand(), "--limit", "2")
		require.NoError(t, err)
		assert.Contains(t, out, "2025-12-25 15:18  clock kjv_amplified placeholder Obadiah 1:1")
		assert.Contains(t, out, "2025-12-25 15:17  day   kjv_only      Luke 2:10-11")
		assert.NotContains(t, out, "John 3:16")
		assert.Less(t, indexOf(out, "Obadiah"), indexOf(out, "Luke"))
	})

	t.Run("limit must be positive", func(t *testing.T) {
		setConfigFile(t, testutil.SetupTestConfig(t, t.TempDir()))

		_, err := execute(t, newHistoryCommand(), "--limit", "0")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--limit must be positive")
	})
}

func indexOf(s, substr string) int {
	return strings.Index(s, substr)
}
