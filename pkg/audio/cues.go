package audio

import (
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/opd-ai/go-slingshot/pkg/event"
)

// Cue is a short synthesized sound tied to a game event.
type Cue int

const (
	CueNone Cue = iota
	CueLaunch
	CueOrbit
	CueThreading
	CueCrash
	CueSunCrash
)

func (c Cue) String() string {
	switch c {
	case CueLaunch:
		return "launch"
	case CueOrbit:
		return "orbit"
	case CueThreading:
		return "threading"
	case CueCrash:
		return "crash"
	case CueSunCrash:
		return "sun_crash"
	default:
		return "none"
	}
}

// CueFor maps a simulation event to the cue it should trigger.
func CueFor(e event.Event) Cue {
	switch ev := e.(type) {
	case *event.PlanetEvent:
		switch {
		case ev.GetType() == event.PlanetLaunched:
			return CueLaunch
		case ev.Cause == event.CauseSun:
			return CueSunCrash
		default:
			return CueCrash
		}
	case *event.OrbitEvent:
		return CueOrbit
	case *event.ScoreDelta:
		if ev.Reason == event.ReasonThreading {
			return CueThreading
		}
	}
	return CueNone
}

const attack = 5 * time.Millisecond

// Streamer synthesizes the cue. CueNone yields nil.
func (c Cue) Streamer(sr beep.SampleRate) beep.Streamer {
	switch c {
	case CueLaunch:
		// rising three-step whoop
		return beep.Seq(
			tone(sr, 220, 40*time.Millisecond),
			tone(sr, 330, 40*time.Millisecond),
			tone(sr, 440, 60*time.Millisecond),
		)
	case CueOrbit:
		// C major arpeggio
		return beep.Seq(
			tone(sr, 523.25, 90*time.Millisecond),
			tone(sr, 659.25, 90*time.Millisecond),
			tone(sr, 783.99, 180*time.Millisecond),
		)
	case CueThreading:
		return beep.Seq(
			tone(sr, 880, 60*time.Millisecond),
			tone(sr, 1320, 90*time.Millisecond),
		)
	case CueCrash:
		return noise(sr, 300*time.Millisecond)
	case CueSunCrash:
		d := 500 * time.Millisecond
		return beep.Mix(
			noise(sr, d),
			&effects.Gain{Streamer: tone(sr, 55, d), Gain: -0.3},
		)
	}
	return nil
}

// tone is a sine at freq shaped by a short attack and a linear release.
func tone(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	n := sr.N(d)
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return beep.Silence(n)
	}
	return newEnvelope(beep.Take(n, sine), n, sr.N(attack))
}

// noise is a white noise burst that decays to silence.
func noise(sr beep.SampleRate, d time.Duration) beep.Streamer {
	n := sr.N(d)
	remaining := n
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if remaining <= 0 {
			return 0, false
		}
		count := min(len(samples), remaining)
		for i := 0; i < count; i++ {
			v := rand.Float64()*2 - 1
			samples[i][0] = v
			samples[i][1] = v
		}
		remaining -= count
		return count, true
	})
	return &effects.Gain{Streamer: newEnvelope(src, n, sr.N(attack)), Gain: -0.5}
}

// envelope ramps up over attackN samples then fades linearly to zero at
// totalN, where it ends the stream.
type envelope struct {
	streamer beep.Streamer
	pos      int
	attackN  int
	totalN   int
}

func newEnvelope(s beep.Streamer, totalN, attackN int) beep.Streamer {
	if attackN > totalN {
		attackN = totalN
	}
	return &envelope{streamer: s, attackN: attackN, totalN: totalN}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	if e.pos >= e.totalN {
		return 0, false
	}
	if left := e.totalN - e.pos; len(samples) > left {
		samples = samples[:left]
	}
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		var vol float64
		switch {
		case e.pos < e.attackN:
			vol = float64(e.pos) / float64(e.attackN)
		default:
			release := e.totalN - e.attackN
			vol = float64(e.totalN-e.pos) / float64(release)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume applies a master volume in log2 units; 0 leaves s unchanged.
func withVolume(s beep.Streamer, volume float64) beep.Streamer {
	if volume == 0 {
		return s
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: volume}
}
