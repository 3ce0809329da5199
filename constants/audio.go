package constants

import "time"

// Audio Engine
const (
	// SampleRate is the output sample rate for synthesized effects
	SampleRate = 44100

	// SpeakerBuffer is the speaker buffer length
	SpeakerBuffer = 50 * time.Millisecond

	// SoundQueueSize bounds pending effect requests; requests beyond it are dropped
	SoundQueueSize = 32
)

// Shot Sound Timing
const (
	ShotSoundDuration = 90 * time.Millisecond
	ShotSoundAttack   = 2 * time.Millisecond
	ShotSoundRelease  = 60 * time.Millisecond
)

// Explosion Sound Timing
const (
	ExplosionSoundDuration = 250 * time.Millisecond
	ExplosionSoundAttack   = 5 * time.Millisecond
	ExplosionSoundRelease  = 200 * time.Millisecond
)

// Lose Sound Timing
const (
	LoseSoundNoteDuration = 220 * time.Millisecond
	LoseSoundAttack       = 5 * time.Millisecond
	LoseSoundRelease      = 120 * time.Millisecond
)

// Submit Sound Timing
const (
	SubmitSoundNote1Duration = 80 * time.Millisecond
	SubmitSoundNote2Duration = 280 * time.Millisecond
	SubmitSoundAttack        = 5 * time.Millisecond
	SubmitSoundNote1Release  = 40 * time.Millisecond
	SubmitSoundNote2Release  = 200 * time.Millisecond
)
