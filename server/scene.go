package main

import (
	"log"
	"math/rand"
	"sync"
	"time"
)

const (
	// Safe-spawn rejection sampling gives up after this many candidates
	// and takes the last one; at arena density that is effectively never.
	maxSpawnAttempts = 1000
)

// Renderer consumes per-frame snapshots. The scene never reads back
// from it.
type Renderer interface {
	Render(state GameState)
	// RenderNow hands a single entity over without waiting for the next
	// frame snapshot, for effects that should not wait a frame.
	RenderNow(state EntityState)
}

// UI receives score and game-over events.
type UI interface {
	UpdateScore(score int)
	GameOver(final int)
}

// Scene owns the live entity collection and runs the per-frame
// dispose/update pipeline. It is constructed explicitly and handed to
// every entity that needs to register entities or run queries; there is
// no global registry.
//
// All mutation funnels through the scene mutex: the frame loop holds it
// for the whole frame, external callers (input, registration) take it
// per call. Entities run inside the frame and use the unexported,
// lock-free methods.
type Scene struct {
	mu       sync.Mutex
	entities []Entity // live for update, insertion order
	pending  []Entity // registered this frame: query-visible, updated next frame
	tick     uint64
	defeated int
	gameOver bool
	rng      *rand.Rand

	assets   *AssetLibrary
	effects  *EffectQueue
	renderer Renderer
	ui       UI
}

// NewScene creates an empty scene wired to its collaborators. renderer
// and ui may be nil (headless simulation, used by tests).
func NewScene(assets *AssetLibrary, renderer Renderer, ui UI) *Scene {
	return &Scene{
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		assets:   assets,
		effects:  NewEffectQueue(),
		renderer: renderer,
		ui:       ui,
	}
}

// Frame advances the simulation by dt seconds (clamped by the caller)
// and hands the result to the renderer. A no-op once the game is over.
func (s *Scene) Frame(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gameOver {
		return
	}
	s.tick++

	// Admit entities registered during the previous frame. They were
	// already visible to queries and renders; now they update too.
	s.entities = append(s.entities, s.pending...)
	s.pending = s.pending[:0]

	s.disposePass()

	for _, e := range s.entities {
		e.Update(dt)
	}

	if s.renderer != nil {
		s.renderer.Render(s.snapshot())
	}
}

// disposePass removes every flagged entity and releases its resources.
// Dispose calls may register replacements into the pending set.
func (s *Scene) disposePass() {
	kept := s.entities[:0]
	for _, e := range s.entities {
		if e.Disposed() {
			e.Dispose()
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(s.entities); i++ {
		s.entities[i] = nil
	}
	s.entities = kept
}

// Register queues an entity for the next frame's update pass. It is
// visible to collision queries and snapshots immediately.
func (s *Scene) Register(e Entity) {
	s.mu.Lock()
	s.enqueue(e)
	s.mu.Unlock()
}

// RegisterNow additionally hands the entity straight to the renderer so
// it shows up before the next broadcast frame.
func (s *Scene) RegisterNow(e Entity) {
	s.mu.Lock()
	s.enqueue(e)
	r := s.renderer
	st := e.State()
	s.mu.Unlock()
	if r != nil {
		r.RenderNow(st)
	}
}

func (s *Scene) enqueue(e Entity) {
	s.pending = append(s.pending, e)
}

// QueryColliding is the external entry point for collision queries.
func (s *Scene) QueryColliding(c Sphere, exclude Entity, pred func(Entity) bool) []Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.colliding(c, exclude, pred)
}

// colliding scans both the live and the pending set: a broad-phase
// check over every collider, O(n) per query, which is fine at a few
// dozen entities.
func (s *Scene) colliding(c Sphere, exclude Entity, pred func(Entity) bool) []Entity {
	var hits []Entity
	match := func(e Entity) {
		if e == exclude {
			return
		}
		col := e.Collider()
		if col == nil || !col.Intersects(c) {
			return
		}
		if pred != nil && !pred(e) {
			return
		}
		hits = append(hits, e)
	}
	for _, e := range s.entities {
		match(e)
	}
	for _, e := range s.pending {
		match(e)
	}
	return hits
}

// player returns the live player combatant, or nil after its disposal.
func (s *Scene) player() *Player {
	for _, e := range s.entities {
		if p, ok := e.(*Player); ok {
			return p
		}
	}
	for _, e := range s.pending {
		if p, ok := e.(*Player); ok {
			return p
		}
	}
	return nil
}

// safeSpawn rejection-samples a position inside the inner map bounds
// (one cell of border excluded) whose sphere overlaps no live collider.
func (s *Scene) safeSpawn(radius float64) (x, y float64) {
	lo := -MapHalf + CellSize
	hi := MapHalf - CellSize
	for i := 0; i < maxSpawnAttempts; i++ {
		x = lo + s.rng.Float64()*(hi-lo)
		y = lo + s.rng.Float64()*(hi-lo)
		if len(s.colliding(Sphere{X: x, Y: y, R: radius}, nil, nil)) == 0 {
			return x, y
		}
	}
	log.Printf("safeSpawn: no clear position after %d attempts", maxSpawnAttempts)
	return x, y
}

// addDefeated bumps the monotonic defeated-enemy counter and refreshes
// the score display.
func (s *Scene) addDefeated() {
	s.defeated++
	if s.ui != nil {
		s.ui.UpdateScore(s.defeated)
	}
}

// triggerGameOver freezes the pipeline permanently and hands the final
// score to the UI. One-way; repeat calls are no-ops.
func (s *Scene) triggerGameOver() {
	if s.gameOver {
		return
	}
	s.gameOver = true
	if s.ui != nil {
		s.ui.GameOver(s.defeated)
	}
}

// TriggerGameOver is the external entry point for ending the game.
func (s *Scene) TriggerGameOver() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.triggerGameOver()
}

// Score returns the defeated-enemy counter.
func (s *Scene) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defeated
}

// IsGameOver reports whether the pipeline is frozen.
func (s *Scene) IsGameOver() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameOver
}

// HandleInput applies client input to the player tank.
func (s *Scene) HandleInput(in ClientInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.player()
	if p == nil {
		return
	}
	p.TargetAngle = NormalizeAngle(in.Angle)
	p.Moving = in.Move
	p.Firing = in.Fire
}

// snapshot builds the render handoff: live + pending entities plus the
// drained effect queue.
func (s *Scene) snapshot() GameState {
	gs := GameState{
		Tick:  s.tick,
		Score: s.defeated,
		Over:  s.gameOver,
	}
	gs.Entities = make([]EntityState, 0, len(s.entities)+len(s.pending))
	for _, e := range s.entities {
		gs.Entities = append(gs.Entities, e.State())
	}
	for _, e := range s.pending {
		gs.Entities = append(gs.Entities, e.State())
	}
	gs.Effects = s.effects.Drain()
	return gs
}

// visual resolves an asset id for an entity being constructed. At
// startup every required asset is known to exist; a miss here means a
// late-spawned entity, which keeps simulating without a visual.
func (s *Scene) visual(id string) string {
	if s.assets == nil {
		return ""
	}
	if _, ok := s.assets.Get(id); !ok {
		log.Printf("visual asset %q missing, entity will simulate unrendered", id)
		return ""
	}
	return id
}
