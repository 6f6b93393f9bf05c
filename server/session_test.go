package main

import (
	"sync"
	"testing"
	"time"
)

// fakeClient records what the session sends it.
type fakeClient struct {
	mu     sync.Mutex
	json   []Envelope
	binary [][]byte
}

func (f *fakeClient) SendJSON(msg interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if env, ok := msg.(Envelope); ok {
		f.json = append(f.json, env)
	}
}

func (f *fakeClient) SendBinary(data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.binary = append(f.binary, data)
}

func (f *fakeClient) binaryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.binary)
}

func (f *fakeClient) lastJSON(t string) (Envelope, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.json) - 1; i >= 0; i-- {
		if f.json[i].T == t {
			return f.json[i], true
		}
	}
	return Envelope{}, false
}

func TestAttachRoles(t *testing.T) {
	sess := NewSession("test", nil, nil)
	defer sess.Stop()

	c1, c2 := &fakeClient{}, &fakeClient{}
	if role := sess.Attach(c1, "alice", 0); role != "player" {
		t.Errorf("first joiner should be player, got %q", role)
	}
	if role := sess.Attach(c2, "bob", 0); role != "spectator" {
		t.Errorf("second joiner should be spectator, got %q", role)
	}
	if sess.ClientCount() != 2 {
		t.Errorf("expected 2 clients, got %d", sess.ClientCount())
	}
}

func TestAttachAfterGameOverSpectates(t *testing.T) {
	sess := NewSession("test", nil, nil)
	defer sess.Stop()
	sess.scene.TriggerGameOver()

	c := &fakeClient{}
	if role := sess.Attach(c, "late", 0); role != "spectator" {
		t.Errorf("joiner of a finished game should spectate, got %q", role)
	}
}

func TestAttachLimit(t *testing.T) {
	sess := NewSession("test", nil, nil)
	defer sess.Stop()

	for i := 0; i < maxClientsPerSession; i++ {
		if role := sess.Attach(&fakeClient{}, "c", 0); role == "" {
			t.Fatalf("client %d should be admitted", i)
		}
	}
	if role := sess.Attach(&fakeClient{}, "extra", 0); role != "" {
		t.Errorf("client over the limit should be rejected, got %q", role)
	}
}

func TestDetachReportsEmpty(t *testing.T) {
	sess := NewSession("test", nil, nil)
	defer sess.Stop()

	c1, c2 := &fakeClient{}, &fakeClient{}
	sess.Attach(c1, "a", 0)
	sess.Attach(c2, "b", 0)

	if sess.Detach(c1) {
		t.Error("session with one client left should not report empty")
	}
	if !sess.Detach(c2) {
		t.Error("session with no clients should report empty")
	}
}

func TestInputControllerOnly(t *testing.T) {
	sess := NewSession("test", nil, nil)
	defer sess.Stop()

	player := &fakeClient{}
	spectator := &fakeClient{}
	sess.Attach(player, "p", 0)
	sess.Attach(spectator, "s", 0)

	sess.HandleInput(spectator, ClientInput{Angle: 2, Move: true})
	tank := sess.scene.player()
	if tank.Moving {
		t.Error("spectator input should be dropped")
	}

	sess.HandleInput(player, ClientInput{Angle: 2, Move: true})
	if !tank.Moving || tank.TargetAngle != 2 {
		t.Error("controller input should reach the tank")
	}
}

func TestRenderBroadcastCadence(t *testing.T) {
	sess := NewSession("test", nil, nil)
	defer sess.Stop()

	c := &fakeClient{}
	sess.Attach(c, "a", 0)

	// Two simulation frames per broadcast
	for i := 0; i < 2*BroadcastEvery; i++ {
		sess.scene.Frame(1.0 / TickRate)
	}
	if got := c.binaryCount(); got != 2 {
		t.Errorf("expected 2 binary broadcasts, got %d", got)
	}
}

func TestRedeemRequiresGameOver(t *testing.T) {
	sess := NewSession("test", nil, nil)
	defer sess.Stop()

	c := &fakeClient{}
	sess.Attach(c, "a", 0)

	sess.Redeem(c, NewLedgerRedeemer(nil))
	if _, ok := c.lastJSON(MsgError); !ok {
		t.Error("redeeming a live game should error")
	}
}

func TestRedeemOncePerSession(t *testing.T) {
	db := testDB(t)
	sess := NewSession("test", db, nil)
	defer sess.Stop()

	c := &fakeClient{}
	sess.Attach(c, "a", 0)
	sess.scene.addDefeated()
	sess.scene.TriggerGameOver()

	sess.Redeem(c, NewLedgerRedeemer(db))
	deadline := time.Now().Add(2 * time.Second)
	var result Envelope
	for {
		if env, ok := c.lastJSON(MsgRedeemResult); ok {
			result = env
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("no redeem result arrived")
		}
		time.Sleep(10 * time.Millisecond)
	}
	res, ok := result.Data.(RedeemResultMsg)
	if !ok || res.TxID == "" || res.Score != 1 {
		t.Errorf("unexpected redeem result: %+v", result.Data)
	}

	sess.Redeem(c, NewLedgerRedeemer(db))
	if _, ok := c.lastJSON(MsgError); !ok {
		t.Error("second redeem should error")
	}
}

func TestGameOverBroadcast(t *testing.T) {
	sess := NewSession("test", nil, nil)
	defer sess.Stop()

	c := &fakeClient{}
	sess.Attach(c, "a", 0)
	sess.scene.TriggerGameOver()

	env, ok := c.lastJSON(MsgGameOver)
	if !ok {
		t.Fatal("game over should be broadcast")
	}
	msg, ok := env.Data.(GameOverMsg)
	if !ok || !msg.CanRedeem {
		t.Errorf("unexpected game over payload: %+v", env.Data)
	}
}

func TestSessionManagerLifecycle(t *testing.T) {
	sm := NewSessionManager()

	sess := sm.CreateSession("arena", nil, nil)
	if sess == nil {
		t.Fatal("create should succeed")
	}
	if sm.GetSession(sess.ID) != sess {
		t.Error("lookup by id should return the session")
	}
	if sm.GetSession("missing") != nil {
		t.Error("unknown id should return nil")
	}

	list := sm.ListSessions()
	if len(list) != 1 || list[0].ID != sess.ID || list[0].Name != "arena" {
		t.Errorf("unexpected session list: %+v", list)
	}

	c := &fakeClient{}
	sess.Attach(c, "a", 0)
	sm.RemoveClient(sess.ID, c)
	if sm.GetSession(sess.ID) != nil {
		t.Error("empty session should be torn down")
	}
}
