package main

import (
	"log"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	TickRate       = 60 // simulation frames per second
	BroadcastRate  = 30 // state broadcasts per second
	TickDuration   = time.Second / TickRate
	BroadcastEvery = TickRate / BroadcastRate
	MaxFrameDelta  = 0.1 // seconds; dt clamp before entering the scene

	ScoreHideDelay = 5 * time.Second

	maxSessions          = 100
	maxClientsPerSession = 8
)

// Broadcaster interface for sending messages to clients
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// Session is one arena: a scene, its frame loop, and the clients
// watching it. The first client to join controls the tank; later ones
// spectate. The session is the scene's rendering and UI collaborator.
type Session struct {
	ID   string
	Name string

	db    *DB
	scene *Scene

	mu         sync.Mutex
	clients    map[Broadcaster]bool
	controller Broadcaster
	account    int64 // auth id of the controlling player, 0 = guest
	playerName string
	redeemed   bool
	hideTimer  *time.Timer

	frames  uint64 // touched only by the frame loop goroutine
	stop    chan struct{}
	stopped bool
}

// NewSession builds a session with a freshly populated arena.
func NewSession(name string, db *DB, assets *AssetLibrary) *Session {
	sess := &Session{
		ID:      GenerateUUID(),
		Name:    name,
		db:      db,
		clients: make(map[Broadcaster]bool),
		stop:    make(chan struct{}),
	}
	sess.scene = NewScene(assets, sess, sess)
	NewArena(sess.scene)
	return sess
}

// Run drives the frame loop until Stop. Δt is wall-clock measured and
// clamped so a stalled host cannot produce a runaway step.
func (sess *Session) Run() {
	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			dt := Clamp(now.Sub(last).Seconds(), 0, MaxFrameDelta)
			last = now
			sess.scene.Frame(dt)
		case <-sess.stop:
			return
		}
	}
}

// Stop terminates the frame loop
func (sess *Session) Stop() {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if !sess.stopped {
		sess.stopped = true
		close(sess.stop)
	}
	if sess.hideTimer != nil {
		sess.hideTimer.Stop()
	}
}

// Attach adds a client; returns its role. The controlling seat goes to
// the first joiner of a game still in progress.
func (sess *Session) Attach(c Broadcaster, name string, account int64) string {
	over := sess.scene.IsGameOver()
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if len(sess.clients) >= maxClientsPerSession {
		return ""
	}
	sess.clients[c] = true
	if sess.controller == nil && !over {
		sess.controller = c
		sess.playerName = name
		sess.account = account
		return "player"
	}
	return "spectator"
}

// Detach removes a client and reports whether the session is now empty.
func (sess *Session) Detach(c Broadcaster) bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	delete(sess.clients, c)
	if sess.controller == c {
		sess.controller = nil
	}
	return len(sess.clients) == 0
}

// HandleInput forwards input, controller only.
func (sess *Session) HandleInput(c Broadcaster, in ClientInput) {
	sess.mu.Lock()
	isController := sess.controller == c
	sess.mu.Unlock()
	if isController {
		sess.scene.HandleInput(in)
	}
}

// ClientCount returns the number of attached clients.
func (sess *Session) ClientCount() int {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return len(sess.clients)
}

// Render broadcasts the frame snapshot as a msgpack binary message at
// the broadcast cadence.
func (sess *Session) Render(state GameState) {
	sess.frames++
	if sess.frames%BroadcastEvery != 0 {
		return
	}
	data, err := msgpack.Marshal(state)
	if err != nil {
		log.Printf("snapshot marshal: %v", err)
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	for c := range sess.clients {
		c.SendBinary(data)
	}
}

// RenderNow pushes a single entity ahead of the next broadcast frame.
func (sess *Session) RenderNow(state EntityState) {
	sess.broadcastJSON(Envelope{T: MsgSpawn, Data: state})
}

// UpdateScore refreshes the score display and restarts the 5-second
// auto-hide timer.
func (sess *Session) UpdateScore(score int) {
	sess.broadcastJSON(Envelope{T: MsgScore, Data: ScoreMsg{Score: score}})
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.hideTimer != nil {
		sess.hideTimer.Stop()
	}
	sess.hideTimer = time.AfterFunc(ScoreHideDelay, func() {
		sess.broadcastJSON(Envelope{T: MsgScoreHide})
	})
}

// GameOver shows the game-over screen and persists the result off the
// frame loop.
func (sess *Session) GameOver(final int) {
	sess.mu.Lock()
	account := sess.account
	name := sess.playerName
	sess.mu.Unlock()

	best := 0
	if sess.db != nil && account != 0 {
		if b, err := sess.db.BestScore(account); err == nil {
			best = b
		}
	}
	sess.broadcastJSON(Envelope{T: MsgGameOver, Data: GameOverMsg{
		Score:     final,
		Best:      best,
		CanRedeem: true,
	}})

	go sess.recordResult(account, name, final)
}

// recordResult writes the score and checks achievement milestones.
func (sess *Session) recordResult(account int64, name string, final int) {
	if sess.db == nil {
		return
	}
	if name == "" {
		name = "Pilot"
	}
	if err := sess.db.RecordScore(account, name, final); err != nil {
		log.Printf("record score: %v", err)
		return
	}
	if account == 0 {
		return
	}
	for _, def := range CheckAchievements(sess.db, account, final) {
		sess.broadcastJSON(Envelope{T: MsgAchievement, Data: AchievementMsg{
			ID:   def.ID,
			Name: def.Name,
			Desc: def.Description,
		}})
	}
}

// Redeem runs the one-shot score redemption; only valid once the game
// is over, and only once per session.
func (sess *Session) Redeem(c Broadcaster, redeemer Redeemer) {
	if !sess.scene.IsGameOver() {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "game still in progress"}})
		return
	}
	sess.mu.Lock()
	if sess.redeemed {
		sess.mu.Unlock()
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "score already redeemed"}})
		return
	}
	sess.redeemed = true
	account := sess.account
	sess.mu.Unlock()

	score := sess.scene.Score()
	go func() {
		txid, err := redeemer.Redeem(account, score)
		if err != nil {
			// Surfaced to the UI only; the simulation is untouched.
			c.SendJSON(Envelope{T: MsgRedeemResult, Data: RedeemResultMsg{Score: score, Err: err.Error()}})
			return
		}
		c.SendJSON(Envelope{T: MsgRedeemResult, Data: RedeemResultMsg{TxID: txid, Score: score}})
	}()
}

func (sess *Session) broadcastJSON(msg Envelope) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	for c := range sess.clients {
		c.SendJSON(msg)
	}
}

// SessionManager handles creation and lookup of sessions
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionManager creates a new SessionManager
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session)}
}

// CreateSession creates and starts a session. Returns nil at the limit.
func (sm *SessionManager) CreateSession(name string, db *DB, assets *AssetLibrary) *Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if len(sm.sessions) >= maxSessions {
		return nil
	}
	sess := NewSession(name, db, assets)
	sm.sessions[sess.ID] = sess
	go sess.Run()
	return sess
}

// GetSession returns a session by ID
func (sm *SessionManager) GetSession(id string) *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[id]
}

// RemoveClient detaches a client and tears the session down when empty.
func (sm *SessionManager) RemoveClient(sessionID string, c Broadcaster) {
	sm.mu.RLock()
	sess, ok := sm.sessions[sessionID]
	sm.mu.RUnlock()
	if !ok {
		return
	}
	if sess.Detach(c) {
		sess.Stop()
		sm.mu.Lock()
		delete(sm.sessions, sessionID)
		sm.mu.Unlock()
	}
}

// ListSessions returns info about all active sessions
func (sm *SessionManager) ListSessions() []SessionInfo {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	list := make([]SessionInfo, 0, len(sm.sessions))
	for _, sess := range sm.sessions {
		list = append(list, SessionInfo{
			ID:      sess.ID,
			Name:    sess.Name,
			Clients: sess.ClientCount(),
			Over:    sess.scene.IsGameOver(),
		})
	}
	return list
}
