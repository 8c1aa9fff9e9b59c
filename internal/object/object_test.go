package object

import (
	"math/rand"
	"testing"

	"github.com/tomz197/smashtennis/internal/draw"
	"github.com/tomz197/smashtennis/internal/loop/config"
)

func TestTrailKeepsNewestEight(t *testing.T) {
	var tr Trail
	for i := 0; i < 20; i++ {
		tr.Push(draw.Point{X: float64(i)})
		want := min(i+1, config.TrailLength)
		if tr.Len() != want {
			t.Fatalf("after %d pushes len = %d, want %d", i+1, tr.Len(), want)
		}
	}
	pts := tr.Points()
	for i, p := range pts {
		if want := float64(12 + i); p.X != want {
			t.Errorf("point %d = %v, want x=%v (oldest first)", i, p.X, want)
		}
	}
	tr.Clear()
	if tr.Len() != 0 || len(tr.Points()) != 0 {
		t.Fatal("Clear left points")
	}
}

func TestChargeStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := NewPaddle(SidePlayer)
	for i := 0; i < 5000; i++ {
		p.BeginTick()
		if rng.Intn(3) > 0 {
			p.Y += 8
		}
		p.UpdateCharge()
		if p.ChargeTime < 0 || p.ChargeTime > config.MaxCharge {
			t.Fatalf("tick %d: charge %d out of [0,%d]", i, p.ChargeTime, config.MaxCharge)
		}
	}
}

func TestChargeRisesAndDecays(t *testing.T) {
	p := NewPaddle(SidePlayer)
	for i := 0; i < 70; i++ {
		p.BeginTick()
		p.X += 8
		p.UpdateCharge()
	}
	if p.ChargeTime != config.MaxCharge {
		t.Fatalf("charge = %d after long move, want %d", p.ChargeTime, config.MaxCharge)
	}
	if p.ChargeRatio() != 1 {
		t.Fatalf("ratio = %v, want 1", p.ChargeRatio())
	}

	p.BeginTick()
	p.UpdateCharge()
	if p.ChargeTime != config.MaxCharge-config.ChargeDecay {
		t.Fatalf("charge = %d after one still tick, want %d", p.ChargeTime, config.MaxCharge-config.ChargeDecay)
	}
}

func TestPaddleVelocity(t *testing.T) {
	p := NewPaddle(SideCPU)
	p.BeginTick()
	p.Y -= 6
	vx, vy := p.Velocity()
	if vx != 0 || vy != -6 {
		t.Fatalf("got (%v,%v), want (0,-6)", vx, vy)
	}
	if p.X != config.CPUX {
		t.Fatalf("cpu x = %v, want %v", p.X, config.CPUX)
	}
}

func TestPaletteTiers(t *testing.T) {
	tests := []struct {
		charge int
		want   draw.Color
	}{
		{0, 0x2196F3}, {15, 0x2196F3}, {16, 0x9C27B0}, {30, 0x9C27B0}, {31, 0xFF4081}, {60, 0xFF4081},
	}
	for _, tt := range tests {
		if got := PlayerPalette.ForCharge(tt.charge); got != tt.want {
			t.Errorf("charge %d: got %s, want %s", tt.charge, got.Hex(), tt.want.Hex())
		}
	}
	if got := CPUPalette.ForCharge(31); got != 0xFF9800 {
		t.Errorf("cpu hot = %s", got.Hex())
	}
	if got := ChargeBarColor(0.3); got != 0x9C27B0 {
		t.Errorf("bar at 0.3 = %s", got.Hex())
	}
}

func TestSmashEffectExpiresWithMultiplier(t *testing.T) {
	b := NewBall()
	b.ApplySmash(1.8)
	if b.Multiplier != 1.8 || b.Color != BallStrongColor {
		t.Fatalf("after smash: mult=%v color=%s", b.Multiplier, b.Color.Hex())
	}
	for i := 0; i < config.SmashEffectTicks; i++ {
		if b.EffectTimer == 0 {
			t.Fatalf("timer hit 0 early at tick %d", i)
		}
		b.Move()
		if b.EffectTimer == 0 && (b.Multiplier != 1 || b.Color != BallIdleColor) {
			t.Fatalf("tick %d: timer 0 but mult=%v color=%s", i, b.Multiplier, b.Color.Hex())
		}
		if b.EffectTimer > 0 && b.Multiplier != 1.8 {
			t.Fatalf("tick %d: multiplier reset early", i)
		}
	}
	if b.EffectTimer != 0 {
		t.Fatalf("timer = %d, want 0", b.EffectTimer)
	}
}

func TestBallMovesByEffectiveVelocity(t *testing.T) {
	b := NewBall()
	b.DX, b.DY = -6, 2
	b.ApplySmash(1.5)
	b.Move()
	if b.X != 400-9 || b.Y != 250+3 {
		t.Fatalf("got (%v,%v), want (391,253)", b.X, b.Y)
	}
	if b.Trail.Len() != 1 || b.Trail.At(0) != (draw.Point{X: 400, Y: 250}) {
		t.Fatalf("trail = %v", b.Trail.Points())
	}
}

func TestSmashColorTiers(t *testing.T) {
	if SmashColor(2.0) != BallMegaColor || SmashColor(1.5) != BallStrongColor || SmashColor(1.49) != BallSmashColor {
		t.Fatal("wrong tier boundaries")
	}
}

func TestParticlesAdvance(t *testing.T) {
	var ps Particles
	ps.Spawn(Particle{Life: 1})
	ps.Spawn(Particle{Life: 3})
	ps.Spawn(Particle{Life: 2})

	ps.Advance()
	if ps.Len() != 2 {
		t.Fatalf("len = %d after 1 tick, want 2", ps.Len())
	}
	for _, p := range ps.All() {
		if p.Life <= 0 {
			t.Fatalf("spent particle kept: %+v", p)
		}
	}
	ps.Advance()
	ps.Advance()
	if ps.Len() != 0 {
		t.Fatalf("len = %d, want 0", ps.Len())
	}
}

func TestParticleLivesExactlyItsLife(t *testing.T) {
	var ps Particles
	ps.Spawn(Particle{Life: config.ParticleLife})
	for i := 0; i < config.ParticleLife-1; i++ {
		ps.Advance()
	}
	if ps.Len() != 1 {
		t.Fatal("particle removed early")
	}
	ps.Advance()
	if ps.Len() != 0 {
		t.Fatal("particle outlived its life")
	}
}

func TestBannerCountdown(t *testing.T) {
	b := &Banner{Text: "SMASH!", Ticks: 2}
	if b.Update() {
		t.Fatal("expired after 1 tick")
	}
	if !b.Update() {
		t.Fatal("not expired after 2 ticks")
	}
	sticky := &Banner{Text: "YOU WIN!"}
	for i := 0; i < 100; i++ {
		if sticky.Update() {
			t.Fatal("banner without ticks expired")
		}
	}
}

func TestSide(t *testing.T) {
	if SidePlayer.Opponent() != SideCPU || SideCPU.Opponent() != SidePlayer {
		t.Fatal("Opponent wrong")
	}
	if SidePlayer.String() != "Player" || SideCPU.String() != "CPU" {
		t.Fatal("String wrong")
	}
	if SidePlayer.Accent() != 0xFFD700 || SideCPU.Accent() != 0xFF4444 {
		t.Fatal("Accent wrong")
	}
}
