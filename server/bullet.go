package main

import "math"

const (
	BulletSpeed        = 9.0 // units/second
	BulletRadius       = 0.25
	BulletSpawnOffset  = 1.2 // spawn distance from the firing tank's center
	PlayerBulletDamage = 20
	EnemyBulletDamage  = 10
)

// Bullet travels along a fixed angle at constant speed until it hits
// something that is neither another bullet nor its owner's side.
type Bullet struct {
	scene *Scene
	id    string

	Owner   EntityKind // KindPlayer or KindEnemy
	X, Y, Z float64
	Angle   float64 // radians, 0 is up
	Col     Sphere

	disposed bool
	hit      bool
	visual   string
}

// NewBullet spawns a bullet just ahead of the firing tank.
func NewBullet(s *Scene, owner EntityKind, x, y, z, angle float64) *Bullet {
	x += math.Sin(angle) * BulletSpawnOffset
	y += -math.Cos(angle) * BulletSpawnOffset
	return &Bullet{
		scene:  s,
		id:     GenerateID(3),
		Owner:  owner,
		X:      x,
		Y:      y,
		Z:      z,
		Angle:  angle,
		Col:    Sphere{X: x, Y: y, Z: z, R: BulletRadius},
		visual: s.visual("bullet"),
	}
}

func (b *Bullet) Kind() EntityKind   { return KindBullet }
func (b *Bullet) Collider() *Sphere  { return &b.Col }
func (b *Bullet) Disposed() bool     { return b.disposed }
func (b *Bullet) MarkDisposed()      { b.disposed = true }
func (b *Bullet) Dispose()           { b.visual = "" }

// Update translates the bullet and resolves at most one hit over its
// whole lifetime.
func (b *Bullet) Update(dt float64) {
	if b.disposed {
		return
	}

	dx := BulletSpeed * math.Sin(b.Angle) * dt
	dy := -BulletSpeed * math.Cos(b.Angle) * dt
	b.X += dx
	b.Y += dy
	b.Col = b.Col.Translated(dx, dy)

	// Off the map means nothing left to hit.
	if b.X < -MapHalf || b.X > MapHalf || b.Y < -MapHalf || b.Y > MapHalf {
		b.MarkDisposed()
		return
	}

	hits := b.scene.colliding(b.Col, b, func(o Entity) bool {
		return o.Kind() != KindBullet && o.Kind() != b.Owner
	})
	if len(hits) == 0 {
		return
	}

	b.resolveHit(hits)
}

// resolveHit marks the bullet spent, spawns an impact effect and
// damages exactly one target: the first matching entity in collection
// order, even when several candidates overlap.
func (b *Bullet) resolveHit(hits []Entity) {
	if b.hit {
		return
	}
	b.hit = true
	b.MarkDisposed()
	b.scene.effects.Spawn("spark", b.X, b.Y, b.Z, 1.0)

	var target EntityKind
	var damage int
	switch b.Owner {
	case KindPlayer:
		target, damage = KindEnemy, PlayerBulletDamage
	case KindEnemy:
		target, damage = KindPlayer, EnemyBulletDamage
	default:
		return
	}
	for _, h := range hits {
		if h.Kind() != target {
			continue
		}
		if d, ok := h.(Damageable); ok {
			d.TakeDamage(damage)
		}
		break
	}
}

func (b *Bullet) State() EntityState {
	return EntityState{
		ID:    b.id,
		Kind:  int(KindBullet),
		X:     round2(b.X),
		Y:     round2(b.Y),
		Z:     round2(b.Z),
		Angle: round2(b.Angle),
		Asset: b.visual,
	}
}
