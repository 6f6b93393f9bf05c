package main

import "math"

const (
	EnemyRadius    = 0.8
	EnemyMaxHealth = 100
	EnemyBaseSpeed = 1.5 // units/second, +1 per respawn

	EnemyAimCone       = 0.2 // radians off forward before a burst starts
	EnemyBurstSize     = 5   // shots per burst
	EnemyBurstGap      = 0.2 // seconds between burst shots
	EnemyBurstCooldown = 3.0 // seconds of rest between bursts
)

// Enemy is an autonomous tank. Its combat machine has three states:
// idle while the burst cooldown runs down, detecting (checking the aim
// cone every frame) once it hits zero, and bursting until five shots
// are out. Movement is forward drive with a test-collider check; a
// blocked move just picks a new random heading and retries next frame.
type Enemy struct {
	scene *Scene
	id    string

	X, Y, Z float64
	Facing  float64 // radians, 0 is up
	Col     Sphere
	Health  int
	Speed   float64

	FireCD    float64 // burst cooldown; may go negative while idle
	Bursting  bool
	Shots     int     // shots fired in the current burst, 0..EnemyBurstSize
	SinceShot float64 // seconds since the last burst shot

	disposed bool
	visual   string
}

// NewEnemy creates an enemy tank at the given position.
func NewEnemy(s *Scene, x, y, speed float64) *Enemy {
	return &Enemy{
		scene:  s,
		id:     GenerateID(3),
		X:      x,
		Y:      y,
		Facing: s.rng.Float64() * 2 * math.Pi,
		Col:    Sphere{X: x, Y: y, R: EnemyRadius},
		Health: EnemyMaxHealth,
		Speed:  speed,
		FireCD: EnemyBurstCooldown,
		visual: s.visual("tank_enemy"),
	}
}

func (e *Enemy) Kind() EntityKind  { return KindEnemy }
func (e *Enemy) Collider() *Sphere { return &e.Col }
func (e *Enemy) Disposed() bool    { return e.disposed }
func (e *Enemy) MarkDisposed()     { e.disposed = true }

func (e *Enemy) Update(dt float64) {
	if e.disposed {
		return
	}
	e.updateCombat(dt)
	e.updateMovement(dt)
}

func (e *Enemy) updateCombat(dt float64) {
	if e.Bursting {
		e.SinceShot += dt
		if e.SinceShot >= EnemyBurstGap {
			e.fire()
		}
		return
	}

	e.FireCD -= dt
	if e.FireCD > 0 {
		return
	}

	// Detecting: the burst starts only when the player sits inside the
	// aim cone. Failing the check is not a state change; it just keeps
	// failing until the player wanders into view.
	p := e.scene.player()
	if p == nil {
		return
	}
	toPlayer := math.Atan2(p.X-e.X, -(p.Y - e.Y)) // 0 is up
	if math.Abs(NormalizeAngle(toPlayer-e.Facing)) >= EnemyAimCone {
		return
	}

	e.Bursting = true
	e.Shots = 0
	e.fire()
}

// fire lets one shot go and closes the burst after the fifth.
func (e *Enemy) fire() {
	e.scene.enqueue(NewBullet(e.scene, KindEnemy, e.X, e.Y, e.Z, e.Facing))
	e.Shots++
	e.SinceShot = 0
	if e.Shots >= EnemyBurstSize {
		e.Bursting = false
		e.Shots = 0
		e.FireCD = EnemyBurstCooldown
	}
}

func (e *Enemy) updateMovement(dt float64) {
	dx := math.Sin(e.Facing) * e.Speed * dt
	dy := -math.Cos(e.Facing) * e.Speed * dt

	test := e.Col.Translated(dx, dy)
	blocked := e.scene.colliding(test, e, func(o Entity) bool {
		return o.Kind() != KindBullet
	})
	if len(blocked) > 0 {
		// No pushback: reject the move and try a fresh heading next frame.
		e.Facing = e.scene.rng.Float64() * 2 * math.Pi
		return
	}

	e.X += dx
	e.Y += dy
	e.Col = e.Col.Translated(dx, dy)
}

// TakeDamage returns true when the hit was lethal. Lethal damage sets
// the dispose flag exactly once; later calls are no-ops.
func (e *Enemy) TakeDamage(dmg int) bool {
	if e.disposed {
		return false
	}
	e.Health -= dmg
	if e.Health > 0 {
		return false
	}
	e.Health = 0
	e.MarkDisposed()
	e.scene.effects.Spawn("explosion", e.X, e.Y, e.Z, 2.0)
	return true
}

// Dispose releases the visual and performs the respawn policy: a
// replacement enemy one speed step faster at a safe position, and a
// bump of the defeated counter. The replacement enters the pending set,
// so it updates starting next frame.
func (e *Enemy) Dispose() {
	e.visual = ""
	x, y := e.scene.safeSpawn(EnemyRadius)
	e.scene.enqueue(NewEnemy(e.scene, x, y, e.Speed+1))
	e.scene.addDefeated()
}

func (e *Enemy) State() EntityState {
	return EntityState{
		ID:    e.id,
		Kind:  int(KindEnemy),
		X:     round2(e.X),
		Y:     round2(e.Y),
		Z:     round2(e.Z),
		Angle: round2(e.Facing),
		HP:    e.Health,
		Asset: e.visual,
	}
}
