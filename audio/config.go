package audio

import (
	"encoding/json"
	"errors"
	"os"
	"strconv"

	"github.com/lixenwraith/vi-invaders/constants"
	"github.com/lixenwraith/vi-invaders/core"
)

// ErrNoAudio is reported when no output device could be opened
var ErrNoAudio = errors.New("no audio output available")

// Environment variables read by LoadAudioConfig
const (
	EnvAudioEnabled = "VI_INVADERS_AUDIO_ENABLED"
	EnvMasterVolume = "VI_INVADERS_MASTER_VOLUME"
	EnvSFXVolumes   = "VI_INVADERS_SFX_VOLUMES"
	EnvSampleRate   = "VI_INVADERS_SAMPLE_RATE"
)

// AudioConfig holds output and mixing settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64 // 0.0-1.0
	SampleRate    int
	EffectVolumes map[core.SoundType]float64
}

// DefaultAudioConfig returns unmuted defaults at half master volume
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   constants.SampleRate,
		EffectVolumes: map[core.SoundType]float64{
			core.SoundShot:      0.4,
			core.SoundExplosion: 0.8,
			core.SoundLose:      0.7,
			core.SoundSubmit:    0.6,
		},
	}
}

// Volume returns the effective gain for st
func (c *AudioConfig) Volume(st core.SoundType) float64 {
	v, ok := c.EffectVolumes[st]
	if !ok {
		v = 1
	}
	return v * c.MasterVolume
}

// LoadAudioConfig applies environment overrides on top of defaults
// Malformed values are ignored
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume is given as 0-100
	if volume := os.Getenv(EnvMasterVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clamp01(float64(val) / 100.0)
		}
	}

	// Per-effect volumes as a JSON object keyed by sound name
	if effectVols := os.Getenv(EnvSFXVolumes); effectVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(effectVols), &volumes); err == nil {
			for name, v := range volumes {
				if st, ok := core.ParseSoundType(name); ok {
					cfg.EffectVolumes[st] = clamp01(v)
				}
			}
		}
	}

	if sampleRate := os.Getenv(EnvSampleRate); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
