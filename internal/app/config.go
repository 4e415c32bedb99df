package app

import (
	"errors"
	"fmt"
	"net/url"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PatchPath string // .hcl, .yaml or a directory of either

	// Frames is the number of frames to render; 0 renders until the
	// context is cancelled.
	Frames int
	// SampleRate and BlockSize override the patch settings when non-zero.
	SampleRate int
	BlockSize  int
	// Realtime paces frames at block_size / sample_rate.
	Realtime bool

	// PublishURL, when set, streams every input of every output node to a
	// socket.io server.
	PublishURL       string
	PublishNamespace string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PatchPath == "" {
		return nil, errors.New("PatchPath is a required configuration field and cannot be empty")
	}
	if cfg.Frames < 0 {
		return nil, fmt.Errorf("frames must not be negative, got %d", cfg.Frames)
	}
	if cfg.SampleRate < 0 || cfg.BlockSize < 0 {
		return nil, errors.New("sample rate and block size must not be negative")
	}
	if cfg.Frames == 0 && !cfg.Realtime {
		return nil, errors.New("rendering without a frame limit requires realtime pacing")
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("healthcheck port %d is out of range", cfg.HealthcheckPort)
	}
	if cfg.PublishURL != "" {
		u, err := url.Parse(cfg.PublishURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("publish URL %q must be absolute", cfg.PublishURL)
		}
	}
	return &cfg, nil
}
