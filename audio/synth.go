// Package audio synthesizes and plays the bounce sound.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/pthm-cable/ring/config"
)

// sine is a fixed-length sine oscillator.
type sine struct {
	freq     float64
	phase    float64
	position int
	duration int
	rate     beep.SampleRate
}

func newSine(freq float64, duration time.Duration, rate beep.SampleRate) *sine {
	return &sine{freq: freq, duration: rate.N(duration), rate: rate}
}

func (o *sine) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		val := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *sine) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) *envelope {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)
	return &envelope{streamer: s, attack: att, release: rel, total: total}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.total {
		return 0, false
	}
	if rest := e.total - e.position; len(samples) > rest {
		samples = samples[:rest]
	}
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		samples[i][0] *= e.gain()
		samples[i][1] *= e.gain()
		e.position++
	}
	return n, ok
}

// gain is the envelope level at the current position, in [0, 1].
func (e *envelope) gain() float64 {
	if e.attack > 0 && e.position < e.attack {
		return float64(e.position) / float64(e.attack)
	}
	if releaseStart := e.total - e.release; e.release > 0 && e.position >= releaseStart {
		return float64(e.total-e.position) / float64(e.release)
	}
	return 1
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. Zero or negative volume is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Synth builds bounce blips from the audio config.
type Synth struct {
	rate     beep.SampleRate
	freq     float64
	duration time.Duration
	attack   time.Duration
	release  time.Duration
	volume   float64
}

// NewSynth creates a synth for the given config.
func NewSynth(cfg config.AudioConfig) *Synth {
	return &Synth{
		rate:     beep.SampleRate(cfg.SampleRate),
		freq:     cfg.Frequency,
		duration: time.Duration(cfg.DurationMS) * time.Millisecond,
		attack:   time.Duration(cfg.AttackMS) * time.Millisecond,
		release:  time.Duration(cfg.ReleaseMS) * time.Millisecond,
		volume:   cfg.Volume,
	}
}

// Bounce returns a fresh, single-use bounce streamer.
func (s *Synth) Bounce() beep.Streamer {
	osc := newSine(s.freq, s.duration, s.rate)
	return newVolume(newEnvelope(osc, s.duration, s.attack, s.release, s.rate), s.volume)
}

// SampleRate returns the synth output rate.
func (s *Synth) SampleRate() beep.SampleRate {
	return s.rate
}

// Samples returns the length of one bounce in samples.
func (s *Synth) Samples() int {
	return s.rate.N(s.duration)
}
