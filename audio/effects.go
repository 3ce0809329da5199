package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/vi-invaders/constants"
	"github.com/lixenwraith/vi-invaders/core"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave, optionally gliding from freq to freqEnd
type oscillator struct {
	freq     float64
	freqEnd  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *rand.Rand
}

// NewOscillator creates a fixed-pitch oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator whose pitch glides linearly from start to end
func NewSweep(start, end float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     start,
		freqEnd:  end,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    rand.New(rand.NewSource(int64(start*1000) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.freqEnd-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with an attack/sustain/release gain curve
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or negative volume is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateShotSound generates a short descending laser zap
func CreateShotSound(rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(1400, 500, constants.ShotSoundDuration, WaveSquare, rate)
	return NewEnvelope(osc, constants.ShotSoundDuration, constants.ShotSoundAttack, constants.ShotSoundRelease, rate)
}

// CreateExplosionSound generates a noise burst over a low thump
func CreateExplosionSound(rate beep.SampleRate) beep.Streamer {
	noise := NewOscillator(0, constants.ExplosionSoundDuration, WaveNoise, rate)
	noiseShaped := NewEnvelope(noise, constants.ExplosionSoundDuration, constants.ExplosionSoundAttack, constants.ExplosionSoundRelease, rate)

	thump := NewSweep(120, 40, constants.ExplosionSoundDuration, WaveSine, rate)
	thumpShaped := NewEnvelope(thump, constants.ExplosionSoundDuration, constants.ExplosionSoundAttack, constants.ExplosionSoundRelease, rate)

	return beep.Mix(
		newVolume(noiseShaped, 0.6),
		newVolume(thumpShaped, 0.4),
	)
}

// CreateLoseSound generates a falling three-note phrase
func CreateLoseSound(rate beep.SampleRate) beep.Streamer {
	notes := []float64{392.00, 311.13, 196.00} // G4, D#4, G3
	parts := make([]beep.Streamer, len(notes))
	for i, freq := range notes {
		osc := NewOscillator(freq, constants.LoseSoundNoteDuration, WaveSaw, rate)
		parts[i] = NewEnvelope(osc, constants.LoseSoundNoteDuration, constants.LoseSoundAttack, constants.LoseSoundRelease, rate)
	}
	return beep.Seq(parts...)
}

// CreateSubmitSound generates a two-note confirmation chime
func CreateSubmitSound(rate beep.SampleRate) beep.Streamer {
	// B5 then E6
	n1 := NewOscillator(987.77, constants.SubmitSoundNote1Duration, WaveSquare, rate)
	n1Shaped := NewEnvelope(n1, constants.SubmitSoundNote1Duration, constants.SubmitSoundAttack, constants.SubmitSoundNote1Release, rate)

	n2 := NewOscillator(1318.51, constants.SubmitSoundNote2Duration, WaveSquare, rate)
	n2Shaped := NewEnvelope(n2, constants.SubmitSoundNote2Duration, constants.SubmitSoundAttack, constants.SubmitSoundNote2Release, rate)

	return beep.Seq(n1Shaped, n2Shaped)
}

// CreateEffect returns a fresh unity-gain streamer for st, nil for unknown types
func CreateEffect(st core.SoundType, rate beep.SampleRate) beep.Streamer {
	switch st {
	case core.SoundShot:
		return CreateShotSound(rate)
	case core.SoundExplosion:
		return CreateExplosionSound(rate)
	case core.SoundLose:
		return CreateLoseSound(rate)
	case core.SoundSubmit:
		return CreateSubmitSound(rate)
	default:
		return nil
	}
}
