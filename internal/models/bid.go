package models

import "time"

// Bid is a sealed offer of tokens for a course seat. At most one active bid
// exists per (student, course); the amount is locked out of the student's
// spendable balance until clearing.
type Bid struct {
	StudentID string    `json:"student_id"`
	CourseID  string    `json:"course_id"`
	Amount    uint64    `json:"amount"`
	PlacedAt  time.Time `json:"placed_at"`
}
