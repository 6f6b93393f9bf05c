package main

import "math"

const (
	PlayerRadius       = 0.8
	PlayerMaxHealth    = 100
	PlayerSpeed        = 3.0 // units/second
	PlayerFireCooldown = 0.3 // seconds between shots
)

// Player is the human-controlled tank. Input arrives between frames via
// Scene.HandleInput; the update step applies it.
type Player struct {
	scene *Scene
	id    string

	X, Y, Z float64
	Facing  float64 // radians, 0 is up
	Col     Sphere
	Health  int
	FireCD  float64

	TargetAngle float64
	Moving      bool
	Firing      bool

	disposed bool
	visual   string
}

// NewPlayer creates the player tank at the given position.
func NewPlayer(s *Scene, x, y float64) *Player {
	return &Player{
		scene:  s,
		id:     GenerateID(3),
		X:      x,
		Y:      y,
		Col:    Sphere{X: x, Y: y, R: PlayerRadius},
		Health: PlayerMaxHealth,
		visual: s.visual("tank_player"),
	}
}

func (p *Player) Kind() EntityKind  { return KindPlayer }
func (p *Player) Collider() *Sphere { return &p.Col }
func (p *Player) Disposed() bool    { return p.disposed }
func (p *Player) MarkDisposed()     { p.disposed = true }

func (p *Player) Update(dt float64) {
	if p.disposed {
		return
	}
	if p.FireCD > 0 {
		p.FireCD -= dt
	}

	p.Facing = p.TargetAngle

	if p.Moving {
		dx := math.Sin(p.Facing) * PlayerSpeed * dt
		dy := -math.Cos(p.Facing) * PlayerSpeed * dt
		test := p.Col.Translated(dx, dy)
		blocked := p.scene.colliding(test, p, func(o Entity) bool {
			return o.Kind() != KindBullet
		})
		if len(blocked) == 0 {
			p.X += dx
			p.Y += dy
			p.Col = p.Col.Translated(dx, dy)
		}
	}

	if p.Firing && p.FireCD <= 0 {
		p.scene.enqueue(NewBullet(p.scene, KindPlayer, p.X, p.Y, p.Z, p.Facing))
		p.FireCD = PlayerFireCooldown
	}
}

// TakeDamage returns true when the hit was lethal. Damage after the
// dispose flag is set has no effect.
func (p *Player) TakeDamage(dmg int) bool {
	if p.disposed {
		return false
	}
	p.Health -= dmg
	if p.Health > 0 {
		return false
	}
	p.Health = 0
	p.MarkDisposed()
	p.scene.effects.Spawn("explosion", p.X, p.Y, p.Z, 2.5)
	return true
}

// Dispose releases the visual and ends the game with the final score.
func (p *Player) Dispose() {
	p.visual = ""
	p.scene.triggerGameOver()
}

func (p *Player) State() EntityState {
	return EntityState{
		ID:    p.id,
		Kind:  int(KindPlayer),
		X:     round2(p.X),
		Y:     round2(p.Y),
		Z:     round2(p.Z),
		Angle: round2(p.Facing),
		HP:    p.Health,
		Asset: p.visual,
	}
}
