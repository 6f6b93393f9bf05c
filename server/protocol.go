package main

import "encoding/json"

// Client -> Server message types
const (
	MsgJoin     = "join"
	MsgLeave    = "leave"
	MsgInput    = "input"
	MsgCreate   = "create" // create session
	MsgList     = "list"   // list sessions
	MsgRegister = "register"
	MsgLogin    = "login"
	MsgAuth     = "auth"   // resume with token
	MsgRedeem   = "redeem" // redeem final score after game over
	MsgScores   = "scores" // request leaderboard
)

// Server -> Client message types
const (
	MsgState        = "state" // binary msgpack GameState
	MsgWelcome      = "welcome"
	MsgJoined       = "joined"
	MsgCreated      = "created"
	MsgSessions     = "sessions"
	MsgSpawn        = "spawn" // immediate render of a single entity
	MsgScore        = "score"
	MsgScoreHide    = "score_hide"
	MsgGameOver     = "gameover"
	MsgRedeemResult = "redeem_result"
	MsgAchievement  = "achievement"
	MsgAuthOK       = "auth_ok"
	MsgScoreList    = "score_list"
	MsgError        = "error"
)

// Envelope wraps all outgoing JSON messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages — json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// ClientInput steers the player tank
type ClientInput struct {
	Angle float64 `json:"a"` // requested facing, radians, 0 is up
	Move  bool    `json:"m"` // drive forward
	Fire  bool    `json:"f"`
}

// JoinMsg is sent when a player wants to join a session
type JoinMsg struct {
	Name      string `json:"name"`
	SessionID string `json:"sid"`
}

// CreateMsg is sent when a player wants to create a session
type CreateMsg struct {
	Name        string `json:"name"`
	SessionName string `json:"sname"`
}

// EntityState is the per-entity slice of a snapshot
type EntityState struct {
	ID    string  `json:"id,omitempty" msgpack:"id,omitempty"`
	Kind  int     `json:"k" msgpack:"k"`
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	Z     float64 `json:"z" msgpack:"z"`
	Angle float64 `json:"a" msgpack:"a"`
	HP    int     `json:"hp,omitempty" msgpack:"hp,omitempty"`
	Asset string  `json:"v,omitempty" msgpack:"v,omitempty"`
}

// GameState is the full per-frame snapshot, broadcast as msgpack binary
type GameState struct {
	Tick     uint64        `json:"tick" msgpack:"tick"`
	Entities []EntityState `json:"e" msgpack:"e"`
	Effects  []Effect      `json:"fx,omitempty" msgpack:"fx,omitempty"`
	Score    int           `json:"sc" msgpack:"sc"`
	Over     bool          `json:"over" msgpack:"over"`
}

// WelcomeMsg is sent to a client when it joins
type WelcomeMsg struct {
	Name   string  `json:"name"`
	Role   string  `json:"role"` // "player" or "spectator"
	Assets []Asset `json:"assets"`
}

// SessionInfo is used in the session list
type SessionInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Clients int    `json:"clients"`
	Over    bool   `json:"over"`
}

// ScoreMsg refreshes the score display; the display auto-hides 5s later
type ScoreMsg struct {
	Score int `json:"sc"`
}

// GameOverMsg shows the game-over screen with the final score and a
// redeem action
type GameOverMsg struct {
	Score     int  `json:"sc"`
	Best      int  `json:"best,omitempty"`
	CanRedeem bool `json:"redeem"`
}

// RedeemResultMsg reports the outcome of the one-shot redeem call
type RedeemResultMsg struct {
	TxID  string `json:"tx,omitempty"`
	Score int    `json:"sc"`
	Err   string `json:"err,omitempty"`
}

// AchievementMsg announces a newly unlocked achievement
type AchievementMsg struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Desc string `json:"desc"`
}

// RegisterMsg / LoginMsg carry account credentials
type RegisterMsg struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginMsg carries login credentials
type LoginMsg struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthMsg resumes a session with a stored token
type AuthMsg struct {
	Token string `json:"token"`
}

// AuthOKMsg confirms authentication
type AuthOKMsg struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	PlayerID int64  `json:"pid"`
}

// ErrorMsg sends an error to the client
type ErrorMsg struct {
	Msg string `json:"msg"`
}
