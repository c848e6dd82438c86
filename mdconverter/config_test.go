package mdconverter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := (Config{}).applyDefaults()
	assert.Equal(t, ImageStyleFigure, cfg.ImageStyle)
	assert.Equal(t, UnknownNodesSkip, cfg.UnknownNodes)
	assert.Equal(t, DefaultInlineTags, cfg.InlineTags)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidateRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "image style",
			mutate:  func(c *Config) { c.ImageStyle = "inline" },
			wantErr: "imageStyle",
		},
		{
			name:    "unknown nodes",
			mutate:  func(c *Config) { c.UnknownNodes = "panic" },
			wantErr: "unknownNodes",
		},
		{
			name:    "blank inline tag",
			mutate:  func(c *Config) { c.InlineTags = []string{"mark", " "} },
			wantErr: "inlineTags",
		},
		{
			name:    "media base url",
			mutate:  func(c *Config) { c.MediaBaseURL = "http://[::1" },
			wantErr: "mediaBaseURL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := (Config{}).applyDefaults()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			_, err = New(cfg)
			require.Error(t, err)
		})
	}
}

func TestConfigCloneNormalizesTags(t *testing.T) {
	tags := []string{" MARK ", "span"}
	cfg := (Config{InlineTags: tags}).applyDefaults().clone()

	assert.Equal(t, []string{"mark", "span"}, cfg.InlineTags)
	assert.Equal(t, " MARK ", tags[0])
	assert.True(t, cfg.allowsInlineTag("mark"))
	assert.False(t, cfg.allowsInlineTag("kbd"))
}

func TestConfigSerialization(t *testing.T) {
	data, err := json.Marshal((Config{MediaBaseURL: "https://cdn.example.com/"}).applyDefaults())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"imageStyle":"figure"`)
	assert.Contains(t, string(data), `"unknownNodes":"skip"`)
	assert.Contains(t, string(data), `"mediaBaseURL":"https://cdn.example.com/"`)
}
