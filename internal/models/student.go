package models

import "time"

// Student is the ledger's view of an admitted principal. Balance is the
// spendable token count; Locked is the sum of the student's active bids.
type Student struct {
	ID         string    `json:"id"`
	Balance    uint64    `json:"balance"`
	Locked     uint64    `json:"locked"`
	Admitted   bool      `json:"admitted"`
	AdmittedAt time.Time `json:"admitted_at"`
}
