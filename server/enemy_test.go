package main

import (
	"math"
	"testing"
)

// burstScene builds a headless scene with a player parked straight
// ahead of an enemy so the aim cone check passes immediately.
func burstScene() (*Scene, *Enemy) {
	s := NewScene(nil, nil, nil)
	p := NewPlayer(s, 0, -5)
	s.Register(p)
	s.Frame(1.0 / 60.0) // admit the player so pending counts bullets only

	e := NewEnemy(s, 0, 5, EnemyBaseSpeed)
	e.Facing = 0 // player is straight up from the enemy
	return s, e
}

func TestEnemyIdleUntilCooldownExpires(t *testing.T) {
	_, e := burstScene()
	e.updateCombat(EnemyBurstCooldown / 2)
	if e.Bursting || e.Shots != 0 {
		t.Error("enemy should stay idle while the cooldown runs")
	}
}

func TestEnemyBurstTiming(t *testing.T) {
	s, e := burstScene()

	// Run the cooldown out; the first shot fires the moment the aim
	// check passes.
	e.updateCombat(EnemyBurstCooldown)
	if !e.Bursting {
		t.Fatal("enemy should enter the bursting state")
	}
	if got := len(s.pending); got != 1 {
		t.Fatalf("expected 1 bullet after burst start, got %d", got)
	}

	// A partial gap fires nothing
	e.updateCombat(EnemyBurstGap / 2)
	if got := len(s.pending); got != 1 {
		t.Errorf("no shot should fire before the gap elapses, got %d bullets", got)
	}

	// Each full gap releases one more shot until five are out
	for shot := 2; shot <= EnemyBurstSize; shot++ {
		e.updateCombat(EnemyBurstGap)
		if got := len(s.pending); got != shot {
			t.Fatalf("expected %d bullets, got %d", shot, got)
		}
	}

	if e.Bursting {
		t.Error("burst should close after the fifth shot")
	}
	if e.FireCD != EnemyBurstCooldown {
		t.Errorf("expected cooldown %f after the burst, got %f", EnemyBurstCooldown, e.FireCD)
	}

	// The rest period holds even with the player still in the cone
	e.updateCombat(EnemyBurstCooldown - 0.1)
	if got := len(s.pending); got != EnemyBurstSize {
		t.Errorf("no shots should fire during the rest period, got %d", got)
	}
}

func TestEnemyAimConeGatesBurst(t *testing.T) {
	s, e := burstScene()
	e.Facing = math.Pi / 2 // looking away from the player

	e.updateCombat(EnemyBurstCooldown)
	if e.Bursting {
		t.Error("burst should not start with the player outside the aim cone")
	}
	if len(s.pending) != 0 {
		t.Error("no bullets should fire outside the aim cone")
	}

	// The failed check does not reset anything: facing the player on a
	// later frame starts the burst at once.
	e.Facing = 0
	e.updateCombat(1.0 / 60.0)
	if !e.Bursting || len(s.pending) != 1 {
		t.Error("burst should start as soon as the player enters the cone")
	}
}

func TestEnemyNoPlayerNoBurst(t *testing.T) {
	s := NewScene(nil, nil, nil)
	e := NewEnemy(s, 0, 5, EnemyBaseSpeed)
	e.updateCombat(EnemyBurstCooldown * 2)
	if e.Bursting || len(s.pending) != 0 {
		t.Error("enemy should hold fire with no player in the scene")
	}
}

func TestEnemiesBurstIndependently(t *testing.T) {
	s, e1 := burstScene()
	e2 := NewEnemy(s, 3, 5, EnemyBaseSpeed)
	e2.Facing = 0

	// Angle from e2 at (3, 5) to the player at (0, -5) is outside the
	// cone, so only e1 opens fire.
	e1.updateCombat(EnemyBurstCooldown)
	e2.updateCombat(EnemyBurstCooldown)

	if !e1.Bursting {
		t.Error("first enemy should be bursting")
	}
	if e2.Bursting {
		t.Error("second enemy should not be bursting")
	}
	if len(s.pending) != 1 {
		t.Errorf("expected 1 bullet from the first enemy, got %d", len(s.pending))
	}
}

func TestEnemyMovesForward(t *testing.T) {
	s := NewScene(nil, nil, nil)
	e := NewEnemy(s, 0, 0, EnemyBaseSpeed)
	e.Facing = math.Pi / 2 // drive right

	e.updateMovement(1.0)
	if math.Abs(e.X-EnemyBaseSpeed) > 1e-6 {
		t.Errorf("expected X %f, got %f", EnemyBaseSpeed, e.X)
	}
	if e.Col.X != e.X || e.Col.Y != e.Y {
		t.Error("collider should track the enemy position")
	}
}

func TestEnemyBlockedMovePicksNewHeading(t *testing.T) {
	s := NewScene(nil, nil, nil)
	s.Register(NewWall(s, 0, -1.9))
	e := NewEnemy(s, 0, 0, EnemyBaseSpeed)
	e.Facing = 0 // straight at the wall

	e.updateMovement(0.1)
	if e.X != 0 || e.Y != 0 {
		t.Errorf("blocked enemy should not move, got (%f, %f)", e.X, e.Y)
	}
	if e.Facing == 0 {
		t.Error("blocked enemy should pick a new heading")
	}
}

func TestEnemyDriveIgnoresBullets(t *testing.T) {
	s := NewScene(nil, nil, nil)
	s.Register(NewBullet(s, KindPlayer, 0, 0.3, 0, 0)) // ends up at (0, -0.9), in the path
	e := NewEnemy(s, 0, 0, EnemyBaseSpeed)
	e.Facing = 0

	e.updateMovement(1.0 / 60.0)
	if e.Y == 0 {
		t.Error("a bullet in the path should not block driving")
	}
}

func TestEnemyTakeDamage(t *testing.T) {
	s := NewScene(nil, nil, nil)
	e := NewEnemy(s, 0, 0, EnemyBaseSpeed)

	for i := 0; i < 4; i++ {
		if e.TakeDamage(PlayerBulletDamage) {
			t.Fatalf("enemy should survive hit %d", i+1)
		}
	}
	if e.Health != EnemyMaxHealth-4*PlayerBulletDamage {
		t.Errorf("expected HP %d, got %d", EnemyMaxHealth-4*PlayerBulletDamage, e.Health)
	}

	if !e.TakeDamage(PlayerBulletDamage) {
		t.Error("fifth hit should be lethal")
	}
	if !e.Disposed() {
		t.Error("lethal damage should flag the enemy for disposal")
	}

	effects := s.effects.Drain()
	if len(effects) != 1 || effects[0].Name != "explosion" {
		t.Errorf("death should spawn one explosion, got %v", effects)
	}

	// Further damage is a no-op
	if e.TakeDamage(100) {
		t.Error("disposed enemy should not die twice")
	}
}

func TestEnemyRespawnFasterAndClear(t *testing.T) {
	ui := &mockUI{}
	s := NewScene(nil, nil, ui)
	e := NewEnemy(s, 0, 0, EnemyBaseSpeed)
	s.Register(e)
	s.Frame(1.0 / 60.0)

	e.TakeDamage(EnemyMaxHealth)
	s.Frame(1.0 / 60.0) // dispose pass runs the respawn

	var replacement *Enemy
	for _, pe := range s.pending {
		if en, ok := pe.(*Enemy); ok {
			replacement = en
		}
	}
	if replacement == nil {
		t.Fatal("a replacement enemy should be pending")
	}
	if replacement.Speed != EnemyBaseSpeed+1 {
		t.Errorf("replacement should be one step faster, got %f", replacement.Speed)
	}
	if replacement.Health != EnemyMaxHealth {
		t.Error("replacement should spawn at full health")
	}
	if len(s.colliding(replacement.Col, replacement, nil)) != 0 {
		t.Error("replacement should spawn clear of other colliders")
	}
	if s.Score() != 1 || len(ui.scores) != 1 {
		t.Error("respawn should bump the defeated counter once")
	}
}
