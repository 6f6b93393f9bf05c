package main

import "sync"

// Effect is a timed visual effect request handed to the rendering side.
// Losing one is cosmetic only; nothing in the simulation depends on it.
type Effect struct {
	Name      string  `json:"n" msgpack:"n"`
	X         float64 `json:"x" msgpack:"x"`
	Y         float64 `json:"y" msgpack:"y"`
	Z         float64 `json:"z" msgpack:"z"`
	Intensity float64 `json:"i" msgpack:"i"`
}

// EffectQueue collects fire-and-forget effect spawns. It is drained once
// per frame before the snapshot is handed to the renderer; no ordering
// guarantee is made between effects queued in the same frame.
type EffectQueue struct {
	mu     sync.Mutex
	queued []Effect
}

// NewEffectQueue creates an empty effect queue.
func NewEffectQueue() *EffectQueue {
	return &EffectQueue{}
}

// Spawn enqueues an effect. Safe to call from any goroutine; errors are
// never reported back to the triggering entity.
func (q *EffectQueue) Spawn(name string, x, y, z, intensity float64) {
	q.mu.Lock()
	q.queued = append(q.queued, Effect{Name: name, X: x, Y: y, Z: z, Intensity: intensity})
	q.mu.Unlock()
}

// Drain returns all queued effects and empties the queue.
func (q *EffectQueue) Drain() []Effect {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.queued) == 0 {
		return nil
	}
	out := q.queued
	q.queued = nil
	return out
}
