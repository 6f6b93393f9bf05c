package main

import (
	"math"
	"testing"
)

func TestBulletSpawnOffset(t *testing.T) {
	s := NewScene(nil, nil, nil)
	b := NewBullet(s, KindPlayer, 0, 0, 0, 0) // firing straight up
	if math.Abs(b.X) > 1e-9 || math.Abs(b.Y-(-BulletSpawnOffset)) > 1e-9 {
		t.Errorf("bullet should spawn ahead of the muzzle, got (%f, %f)", b.X, b.Y)
	}
}

func TestBulletTravel(t *testing.T) {
	s := NewScene(nil, nil, nil)
	b := NewBullet(s, KindPlayer, 0, 0, 0, math.Pi/2) // firing right
	startX := b.X

	b.Update(0.5)
	wantX := startX + BulletSpeed*0.5
	if math.Abs(b.X-wantX) > 1e-6 {
		t.Errorf("expected X %f, got %f", wantX, b.X)
	}
	if b.Col.X != b.X || b.Col.Y != b.Y {
		t.Error("collider should track the bullet position")
	}
}

func TestBulletDisposedOffMap(t *testing.T) {
	s := NewScene(nil, nil, nil)
	b := NewBullet(s, KindPlayer, MapHalf-2, 0, 0, math.Pi/2)
	b.Update(1.0)
	if !b.Disposed() {
		t.Error("bullet should dispose when leaving the map")
	}
}

func TestBulletHitsEnemy(t *testing.T) {
	s := NewScene(nil, nil, nil)
	e := NewEnemy(s, 0, -2.9, EnemyBaseSpeed)
	s.Register(e)

	b := NewBullet(s, KindPlayer, 0, 0, 0, 0) // up, toward the enemy
	s.Register(b)

	for i := 0; i < 60 && !b.Disposed(); i++ {
		b.Update(1.0 / 60.0)
	}

	if !b.Disposed() {
		t.Fatal("bullet should have hit the enemy")
	}
	if e.Health != EnemyMaxHealth-PlayerBulletDamage {
		t.Errorf("expected enemy HP %d, got %d", EnemyMaxHealth-PlayerBulletDamage, e.Health)
	}

	effects := s.effects.Drain()
	if len(effects) != 1 || effects[0].Name != "spark" {
		t.Errorf("hit should spawn one spark effect, got %v", effects)
	}
}

func TestBulletIgnoresOwnerSide(t *testing.T) {
	s := NewScene(nil, nil, nil)
	p := NewPlayer(s, 0, -2)
	s.Register(p)

	// Player bullet flying through the player tank itself
	b := NewBullet(s, KindPlayer, 0, 0, 0, 0)
	s.Register(b)

	for i := 0; i < 30; i++ {
		b.Update(1.0 / 60.0)
		if b.Disposed() && math.Abs(b.Y) < MapHalf {
			t.Fatal("player bullet should pass through the player")
		}
	}
	if p.Health != PlayerMaxHealth {
		t.Error("player should take no damage from its own bullet")
	}
}

func TestBulletIgnoresOtherBullets(t *testing.T) {
	s := NewScene(nil, nil, nil)
	other := NewBullet(s, KindEnemy, 0, -0.25, 0, 0) // ends up in the travel path
	s.Register(other)

	b := NewBullet(s, KindPlayer, 0, 0, 0, 0)
	b.Update(1.0 / 60.0)
	if b.Disposed() {
		t.Error("bullets should pass through each other")
	}
}

func TestBulletWallStopsWithoutDamage(t *testing.T) {
	s := NewScene(nil, nil, nil)
	s.Register(NewWall(s, 0, -3))
	e := NewEnemy(s, 0, -3.5, EnemyBaseSpeed) // tucked behind the wall
	s.Register(e)

	b := NewBullet(s, KindPlayer, 0, 0, 0, 0)
	s.Register(b)
	for i := 0; i < 60 && !b.Disposed(); i++ {
		b.Update(1.0 / 60.0)
	}

	if !b.Disposed() {
		t.Fatal("bullet should stop at the wall")
	}
	if e.Health != EnemyMaxHealth {
		t.Errorf("enemy behind the wall should take no damage, HP %d", e.Health)
	}
}

func TestBulletDamagesFirstMatchOnly(t *testing.T) {
	s := NewScene(nil, nil, nil)
	first := NewEnemy(s, 0, -2.9, EnemyBaseSpeed)
	second := NewEnemy(s, 0.1, -2.95, EnemyBaseSpeed) // overlapping the first
	s.Register(first)
	s.Register(second)

	b := NewBullet(s, KindPlayer, 0, 0, 0, 0)
	s.Register(b)
	for i := 0; i < 60 && !b.Disposed(); i++ {
		b.Update(1.0 / 60.0)
	}

	if !b.Disposed() {
		t.Fatal("bullet should have hit")
	}
	if first.Health != EnemyMaxHealth-PlayerBulletDamage {
		t.Errorf("first enemy in collection order should take the hit, HP %d", first.Health)
	}
	if second.Health != EnemyMaxHealth {
		t.Errorf("second overlapping enemy should be untouched, HP %d", second.Health)
	}
}

func TestEnemyBulletDamagesPlayer(t *testing.T) {
	s := NewScene(nil, nil, nil)
	p := NewPlayer(s, 0, -2.9)
	s.Register(p)

	b := NewBullet(s, KindEnemy, 0, 0, 0, 0)
	s.Register(b)
	for i := 0; i < 60 && !b.Disposed(); i++ {
		b.Update(1.0 / 60.0)
	}

	if p.Health != PlayerMaxHealth-EnemyBulletDamage {
		t.Errorf("expected player HP %d, got %d", PlayerMaxHealth-EnemyBulletDamage, p.Health)
	}
}
