package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	// Holding a move key against a wall would otherwise retrigger every tick
	bumpCooldown = 250 * time.Millisecond
)

// SoundManager plays the maze's feedback sounds through one mixer.
// Every Play method is a no-op until Initialize succeeds.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool

	lastBump time.Time
	now      func() time.Time
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	// Initialize speaker with sample rate and buffer size
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the audio system
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	sm.mixer.Clear()
	speaker.Close()
	sm.initialized = false
}

// PlayBump plays a short low buzz when the camera hits a wall
func (sm *SoundManager) PlayBump() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	now := sm.now()
	if now.Sub(sm.lastBump) < bumpCooldown {
		return
	}
	sm.lastBump = now
	sm.mixer.Add(BumpSound(sampleRate))
}

// PlayGoal plays a rising two-note chime when the end cell is reached
func (sm *SoundManager) PlayGoal() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	if s := GoalSound(sampleRate); s != nil {
		sm.mixer.Add(s)
	}
}

// BumpSound is a 150ms buzz at 120Hz
func BumpSound(sr beep.SampleRate) beep.Streamer {
	return beep.Take(sr.N(time.Millisecond*150), NewBuzzGenerator(sr, 120))
}

// GoalSound is two quiet sine notes, a fifth apart
func GoalSound(sr beep.SampleRate) beep.Streamer {
	low, err := generators.SineTone(sr, 660)
	if err != nil {
		return nil
	}
	high, err := generators.SineTone(sr, 990)
	if err != nil {
		return nil
	}
	note := sr.N(time.Millisecond * 180)
	return &effects.Volume{
		Streamer: beep.Seq(beep.Take(note, low), beep.Take(note*2, high)),
		Base:     2,
		Volume:   -3,
	}
}

// BuzzGenerator generates a low-pitch buzz sound
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz sound generator
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{
		sr:   sr,
		freq: freq,
	}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Fundamental plus two harmonics for a harsh edge
		sample := 0.0
		sample += 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.075 * math.Sin(2*math.Pi*g.freq*3*t)

		// 20ms fade-in avoids a click
		envelope := math.Min(float64(g.pos)/float64(g.sr)/0.02, 1.0)
		sample *= envelope * 0.2

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}
