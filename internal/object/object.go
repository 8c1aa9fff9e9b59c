// Package object holds the game entities and how each one draws itself.
package object

import (
	"github.com/tomz197/smashtennis/internal/draw"
)

// Side identifies a paddle owner.
type Side int

const (
	SidePlayer Side = iota
	SideCPU
)

func (s Side) String() string {
	if s == SideCPU {
		return "CPU"
	}
	return "Player"
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideCPU {
		return SidePlayer
	}
	return SideCPU
}

// Accent is the side's color for smash particles and banners.
func (s Side) Accent() draw.Color {
	if s == SideCPU {
		return 0xFF4444
	}
	return 0xFFD700
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Surface draw.Surface
}

// Object is a drawable game entity.
type Object interface {
	Draw(ctx DrawContext)
}

// Effect is a short-lived object advanced once per simulation tick.
type Effect interface {
	Object
	// Update advances the effect by one tick. Returns true if it should be removed.
	Update() (remove bool)
}
