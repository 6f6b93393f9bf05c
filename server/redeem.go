package main

import "fmt"

// Redeemer converts a final score into a transaction. It is invoked at
// most once per game, only after game over, and its failure never
// touches the simulation. Retries, if any, belong to the implementation.
type Redeemer interface {
	Redeem(playerID int64, score int) (txID string, err error)
}

// LedgerRedeemer settles redemptions against the local ledger table.
// In deployments the ledger is drained by an external settlement
// process; the simulation only ever sees the transaction id.
type LedgerRedeemer struct {
	db *DB
}

// NewLedgerRedeemer creates a Redeemer backed by the score ledger.
func NewLedgerRedeemer(db *DB) *LedgerRedeemer {
	return &LedgerRedeemer{db: db}
}

// Redeem records the transaction and returns its id.
func (r *LedgerRedeemer) Redeem(playerID int64, score int) (string, error) {
	if r.db == nil {
		return "", fmt.Errorf("redemption unavailable")
	}
	if score <= 0 {
		return "", fmt.Errorf("nothing to redeem")
	}
	txID := "0x" + GenerateID(16)
	if err := r.db.RecordRedeem(txID, playerID, score); err != nil {
		return "", fmt.Errorf("redeem failed: %w", err)
	}
	return txID, nil
}
