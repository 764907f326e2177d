package main

import (
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/bibleclock/internal/selector"
)

type modeFlag string

// Set implements pflag.Value.
func (m *modeFlag) Set(v string) error {
	mode, err := selector.ParseMode(v)
	if err != nil {
		return err
	}
	*m = modeFlag(mode)
	return nil
}

// String implements pflag.Value.
func (m *modeFlag) String() string {
	if m == nil {
		return ""
	}
	return string(*m)
}

// Type implements pflag.Value.
func (m *modeFlag) Type() string {
	return "mode"
}

type versionFlag string

// Set implements pflag.Value.
func (v *versionFlag) Set(s string) error {
	version, err := selector.ParseVersion(s)
	if err != nil {
		return err
	}
	*v = versionFlag(version)
	return nil
}

// String implements pflag.Value.
func (v *versionFlag) String() string {
	if v == nil {
		return ""
	}
	return string(*v)
}

// Type implements pflag.Value.
func (v *versionFlag) Type() string {
	return "version"
}

var (
	_ pflag.Value = (*modeFlag)(nil)
	_ pflag.Value = (*versionFlag)(nil)
)
