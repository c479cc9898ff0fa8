package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaguerra2017/fdsu-prp-framework/pkg/config"
)

func TestParseFlags_HeadlessTracksPresence(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantSet  bool
		wantMode bool
	}{
		{name: "absent", args: nil, wantSet: false, wantMode: false},
		{name: "enabled", args: []string{"-headless"}, wantSet: true, wantMode: true},
		{name: "disabled explicitly", args: []string{"-headless=false"}, wantSet: true, wantMode: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts := parseFlags(tc.args)
			assert.Equal(t, tc.wantSet, opts.HeadlessSet)
			assert.Equal(t, tc.wantMode, opts.Headless)
		})
	}
}

func TestApplyOverrides_HeadlessWorksBothDirections(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Headless = true

	applyOverrides(cfg, &Options{Headless: false, HeadlessSet: true})
	assert.False(t, cfg.Headless, "-headless=false must override headless: true")

	applyOverrides(cfg, &Options{Headless: true, HeadlessSet: true})
	assert.True(t, cfg.Headless)

	applyOverrides(cfg, &Options{Headless: false, HeadlessSet: false})
	assert.True(t, cfg.Headless, "an absent flag leaves the file value alone")
}

func TestApplyOverrides_ReportPath(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ReportPath = "from-file.json"

	applyOverrides(cfg, &Options{})
	assert.Equal(t, "from-file.json", cfg.ReportPath)

	applyOverrides(cfg, &Options{ReportPath: "from-flag.json"})
	assert.Equal(t, "from-flag.json", cfg.ReportPath)
}
