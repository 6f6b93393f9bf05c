package main

// EntityKind tags each simulated entity variant.
type EntityKind int

const (
	KindMap EntityKind = iota
	KindWall
	KindPlayer
	KindEnemy
	KindBullet
)

func (k EntityKind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindWall:
		return "wall"
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindBullet:
		return "bullet"
	}
	return "unknown"
}

// Entity is the closed set of objects the scene simulates. Entities are
// mutated only by their own Update step or by damage capability calls;
// removal happens the frame after the dispose flag is set.
type Entity interface {
	Kind() EntityKind
	// Collider returns nil for entities that cannot collide.
	Collider() *Sphere
	Update(dt float64)
	Disposed() bool
	MarkDisposed()
	// Dispose releases the entity's visual resources. It runs during the
	// dispose pass and may register replacement entities.
	Dispose()
	State() EntityState
}

// Damageable is the capability held only by combatants.
type Damageable interface {
	Entity
	// TakeDamage returns true when the hit was lethal. Calls after the
	// dispose flag is set are no-ops.
	TakeDamage(dmg int) bool
}
