package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/ring/config"
)

// Player plays the bounce sound. PlayBounce must never block the caller.
type Player interface {
	PlayBounce()
	Close()
}

// Nop is a Player that does nothing.
type Nop struct{}

func (Nop) PlayBounce() {}
func (Nop) Close()      {}

// speakerLock guards the mixer against the speaker's playback goroutine.
type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// SoundManager mixes bounce blips onto the speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	synth       *Synth
	maxVoices   int
	lock        sync.Locker
	initialized bool
	dropped     int
}

// NewSoundManager creates a sound manager. Call Initialize before playing.
func NewSoundManager(cfg config.AudioConfig) *SoundManager {
	return &SoundManager{
		mixer:     &beep.Mixer{},
		synth:     NewSynth(cfg),
		maxVoices: max(1, cfg.MaxVoices),
		lock:      speakerLock{},
	}
}

// Initialize opens the audio device and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	rate := sm.synth.SampleRate()
	if err := speaker.Init(rate, rate.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// PlayBounce queues one blip. When MaxVoices blips are already sounding
// the request is dropped.
func (sm *SoundManager) PlayBounce() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	sm.lock.Lock()
	defer sm.lock.Unlock()

	if sm.mixer.Len() >= sm.maxVoices {
		sm.dropped++
		return
	}
	sm.mixer.Add(sm.synth.Bounce())
}

// Dropped returns how many bounce requests were skipped for lack of voices.
func (sm *SoundManager) Dropped() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.dropped
}

// Close silences all voices and stops the speaker.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	sm.lock.Lock()
	sm.mixer.Clear()
	sm.lock.Unlock()

	speaker.Close()
	sm.initialized = false
	if sm.dropped > 0 {
		slog.Info("audio closed", "dropped_bounces", sm.dropped)
	}
}

// New returns a working Player when sound is enabled and the device opens,
// otherwise Nop.
func New(cfg config.AudioConfig, enabled bool) Player {
	if !enabled {
		return Nop{}
	}
	sm := NewSoundManager(cfg)
	if err := sm.Initialize(); err != nil {
		slog.Warn("audio unavailable, continuing without sound", "error", err)
		return Nop{}
	}
	return sm
}
