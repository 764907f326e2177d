package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/bibleclock/internal/testutil"
)

func TestButtonsCommand(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		wantContains []string
		wantErr      string
	}{
		{
			name: "default presses",
			args: []string{"--time", "3:16 PM"},
			wantContains: []string{
				"start:",
				"button 1: mode clock -> day",
				"button 1: mode day -> clock",
				"button 2: version kjv_only -> kjv_amplified",
				"button 2: version kjv_amplified -> kjv_only",
				"John 3:16 (3:16 PM)",
			},
		},
		{
			name:         "single press",
			args:         []string{"--time", "3:16 PM", "2"},
			wantContains: []string{"button 2: version kjv_only -> kjv_amplified"},
		},
		{
			name:    "unknown button",
			args:    []string{"3"},
			wantErr: `unknown button "3"`,
		},
		{
			name:    "invalid time",
			args:    []string{"--time", "teatime", "1"},
			wantErr: "invalid time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setConfigFile(t, testutil.SetupTestConfig(t, t.TempDir()))

			out, err := execute(t, newButtonsCommand(), tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, out, want)
			}
		})
	}
}
