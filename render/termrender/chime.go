package termrender

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/tetrino/board"
)

const sampleRate = beep.SampleRate(44100)

// Chime plays a short tone for every new piece, pitched by color. It is silent until Init
// succeeds, so a machine without audio still runs the game.
type Chime struct {
	mu          sync.Mutex
	initialized bool
}

// Init opens the audio device.
func (c *Chime) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	c.initialized = true
	return nil
}

// Play queues the tone for color.
func (c *Chime) Play(color board.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Play(ToneFor(color))
}

// Close stops playback and releases the device.
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		speaker.Clear()
		speaker.Close()
		c.initialized = false
	}
}

// ToneFor returns a 120ms tone, one semitone-step pair higher per color.
func ToneFor(color board.Color) beep.Streamer {
	freq := 440 * math.Pow(2, float64(2*int(color))/12)
	return beep.Take(sampleRate.N(120*time.Millisecond), &Tone{sr: sampleRate, freq: freq})
}

// Tone is a sine wave with a short fade-in and exponential decay.
type Tone struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func (t *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		secs := float64(t.pos) / float64(t.sr)
		envelope := math.Min(secs/0.005, 1) * math.Exp(-secs*18)
		s := 0.25 * envelope * math.Sin(2*math.Pi*t.freq*secs)
		samples[i][0] = s
		samples[i][1] = s
		t.pos++
	}
	return len(samples), true
}

func (t *Tone) Err() error {
	return nil
}
