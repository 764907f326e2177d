package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeFlag_Set(t *testing.T) {
	tests := []struct {
		value   string
		want    modeFlag
		wantErr bool
	}{
		{value: "clock", want: "clock"},
		{value: " Day ", want: "day"},
		{value: "night", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			var got modeFlag
			err := got.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, got.String())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "mode", got.Type())
		})
	}
}

func TestVersionFlag_Set(t *testing.T) {
	tests := []struct {
		value   string
		want    versionFlag
		wantErr bool
	}{
		{value: "kjv_only", want: "kjv_only"},
		{value: "KJV_AMPLIFIED", want: "kjv_amplified"},
		{value: "niv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			var got versionFlag
			err := got.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunCommand_RejectsUnknownMode(t *testing.T) {
	_, err := execute(t, newRunCommand(), "--once", "--mode", "night")
	assert.ErrorContains(t, err, "unknown mode")
}
