// Package sound plays short tones for match events on the local audio device.
package sound

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/tomz197/smashtennis/internal/loop/config"
	"github.com/tomz197/smashtennis/internal/loop/match"
	"github.com/tomz197/smashtennis/internal/object"
)

// SampleRate is the output sample rate.
const SampleRate = beep.SampleRate(44100)

// Note is one tone of a cue.
type Note struct {
	Freq     float64
	Duration time.Duration
}

// Cues for match events.
var (
	HitCue       = []Note{{440, 40 * time.Millisecond}}
	WallCue      = []Note{{330, 25 * time.Millisecond}}
	SmashCue     = []Note{{880, 90 * time.Millisecond}}
	MegaSmashCue = []Note{{880, 60 * time.Millisecond}, {1320, 120 * time.Millisecond}}
	PointCue     = []Note{{220, 200 * time.Millisecond}}
	WinCue       = []Note{{523, 120 * time.Millisecond}, {659, 120 * time.Millisecond}, {784, 240 * time.Millisecond}}
	LoseCue      = []Note{{392, 120 * time.Millisecond}, {330, 120 * time.Millisecond}, {262, 240 * time.Millisecond}}
)

// volume is the gain applied to every cue; sine tones at full scale are harsh.
const volume = -0.7

// Tone returns a sine tone of freq Hz lasting d.
func Tone(sr beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("tone %.0f Hz: %w", freq, err)
	}
	return beep.Take(sr.N(d), sine), nil
}

// Cue returns the notes played back to back.
func Cue(sr beep.SampleRate, notes []Note) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		s, err := Tone(sr, n.Freq, n.Duration)
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	return &effects.Gain{Streamer: beep.Seq(parts...), Gain: volume}, nil
}

// Player turns match events into cues. It implements match.Listener.
type Player struct {
	sr   beep.SampleRate
	play func(beep.Streamer)
}

// Init opens the default audio device and returns a player using it.
// Callers treat an error as "no sound" rather than a fatal condition.
func Init() (*Player, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Player{sr: SampleRate, play: func(s beep.Streamer) { speaker.Play(s) }}, nil
}

// Close releases the audio device.
func (p *Player) Close() {
	speaker.Close()
}

// CueFor picks the cue for an event, nil for silent events.
func CueFor(e match.Event) []Note {
	switch e.Kind {
	case match.EventHit:
		if e.Power > 1 {
			return nil // The smash cue follows
		}
		return HitCue
	case match.EventSmash:
		if e.Power >= config.MegaSmashPower {
			return MegaSmashCue
		}
		return SmashCue
	case match.EventWallBounce:
		return WallCue
	case match.EventPoint:
		return PointCue
	case match.EventGameOver:
		if e.Side == object.SidePlayer {
			return WinCue
		}
		return LoseCue
	}
	return nil
}

// OnEvent implements match.Listener.
func (p *Player) OnEvent(e match.Event) {
	notes := CueFor(e)
	if notes == nil {
		return
	}
	s, err := Cue(p.sr, notes)
	if err != nil {
		return
	}
	p.play(s)
}
