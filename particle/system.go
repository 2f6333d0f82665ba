// Package particle spawns and integrates short-lived feedback particles.
package particle

import (
	"math"
	"time"

	"github.com/lixenwraith/drag-match/core"
	"github.com/lixenwraith/drag-match/parameter"
	"github.com/lixenwraith/drag-match/vmath"
)

// Particle is one visual feedback point
// Life runs from 1 down to 0; the particle is dropped once Life <= 0
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64
	Size   float64
	Color  core.RGB
}

// Config tunes a System, zero fields fall back to parameter defaults
type Config struct {
	MinSpeed float64
	MaxSpeed float64
	Gravity  float64
	Jitter   float64
	Lifetime time.Duration
}

// DefaultConfig returns the parameter-derived tuning
func DefaultConfig() Config {
	return Config{
		MinSpeed: parameter.ParticleMinSpeed,
		MaxSpeed: parameter.ParticleMaxSpeed,
		Gravity:  parameter.ParticleGravity,
		Jitter:   parameter.ParticleJitter,
		Lifetime: parameter.ParticleLifetime,
	}
}

// System owns the active particle set
// Particles are never reused; Tick compacts the slice in place
type System struct {
	cfg       Config
	rng       *vmath.FastRand
	particles []Particle

	spawned uint64
	retired uint64
}

// NewSystem creates an empty particle system
func NewSystem(cfg Config, rng *vmath.FastRand) *System {
	def := DefaultConfig()
	if cfg.MaxSpeed <= 0 {
		cfg.MinSpeed, cfg.MaxSpeed = def.MinSpeed, def.MaxSpeed
	}
	if cfg.Gravity == 0 {
		cfg.Gravity = def.Gravity
	}
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = def.Lifetime
	}
	return &System{cfg: cfg, rng: rng}
}

// Burst appends count particles at (x, y) with jittered position and random upward-biased velocity
func (s *System) Burst(x, y float64, count int, color core.RGB) {
	for i := 0; i < count; i++ {
		// Angle in (-pi, 0) points upward in screen space, widened slightly past horizontal
		angle := s.rng.Range(-math.Pi-0.3, 0.3)
		speed := s.rng.Range(s.cfg.MinSpeed, s.cfg.MaxSpeed)
		s.particles = append(s.particles, Particle{
			X:     x + s.rng.Range(-s.cfg.Jitter, s.cfg.Jitter),
			Y:     y + s.rng.Range(-s.cfg.Jitter, s.cfg.Jitter),
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle) * speed,
			Life:  1,
			Size:  s.rng.Range(parameter.ParticleMinSize, parameter.ParticleMaxSize),
			Color: color,
		})
	}
	s.spawned += uint64(max(count, 0))
}

// BurstPalette is Burst cycling through colors
func (s *System) BurstPalette(x, y float64, count int, colors []core.RGB) {
	if len(colors) == 0 {
		s.Burst(x, y, count, core.RGBWhite)
		return
	}
	for i := 0; i < count; i++ {
		s.Burst(x, y, 1, colors[i%len(colors)])
	}
}

// Tick integrates every particle by dt and removes those whose life ran out
func (s *System) Tick(dt time.Duration) {
	if dt <= 0 || len(s.particles) == 0 {
		return
	}
	sec := dt.Seconds()
	decay := sec / s.cfg.Lifetime.Seconds()

	alive := s.particles[:0]
	for _, p := range s.particles {
		p.X += p.VX * sec
		p.Y += p.VY * sec
		p.VY += s.cfg.Gravity * sec
		p.Life -= decay
		if p.Life <= 0 {
			s.retired++
			continue
		}
		alive = append(alive, p)
	}
	// Clear the tail so dropped particles do not linger in the backing array
	clear(s.particles[len(alive):])
	s.particles = alive
}

// Active returns the live particles; callers must not retain or mutate it
func (s *System) Active() []Particle {
	return s.particles
}

// Len returns the live particle count
func (s *System) Len() int {
	return len(s.particles)
}

// Clear drops every particle
func (s *System) Clear() {
	s.retired += uint64(len(s.particles))
	s.particles = nil
}

// Stats returns lifetime spawn and retire counters
func (s *System) Stats() (spawned, retired uint64) {
	return s.spawned, s.retired
}
