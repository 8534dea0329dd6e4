package engine

import (
	"time"

	"github.com/openuni-dev/admission-auction-api/internal/models"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
)

// PlaceBid locks amount out of the student's spendable balance and records
// the bid. A student holds at most one active bid per course; revisions must
// go through ModifyBid.
func (e *Engine) PlaceBid(studentID, courseID string, amount uint64) (models.Bid, error) {
	if amount == 0 {
		return models.Bid{}, appErrors.Clone(appErrors.ErrValidation, "bid amount must be positive")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	c, ok := e.courses[courseID]
	if !ok {
		return models.Bid{}, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	if c.closed {
		return models.Bid{}, appErrors.ErrCourseClosed
	}
	acct, ok := e.students[studentID]
	if !ok {
		return models.Bid{}, appErrors.Clone(appErrors.ErrNotAdmitted, "only admitted students can bid")
	}
	if _, exists := c.byStudent[studentID]; exists {
		return models.Bid{}, appErrors.Clone(appErrors.ErrDuplicate, "active bid already exists, modify it instead")
	}
	if err := acct.lock(amount); err != nil {
		return models.Bid{}, err
	}

	b := &bid{studentID: studentID, amount: amount, placedAt: time.Now().UTC()}
	c.bids = append(c.bids, b)
	c.byStudent[studentID] = b
	return b.snapshot(courseID), nil
}

// ModifyBid adjusts the amount of an existing bid, locking or unlocking the
// delta. Re-submitting the current amount is rejected.
func (e *Engine) ModifyBid(studentID, courseID string, newAmount uint64) (models.Bid, error) {
	if newAmount == 0 {
		return models.Bid{}, appErrors.Clone(appErrors.ErrValidation, "bid amount must be positive")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	c, ok := e.courses[courseID]
	if !ok {
		return models.Bid{}, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	if c.closed {
		return models.Bid{}, appErrors.ErrCourseClosed
	}
	b, exists := c.byStudent[studentID]
	if !exists {
		return models.Bid{}, appErrors.Clone(appErrors.ErrNotFound, "bid not found")
	}
	acct := e.students[studentID]

	switch {
	case newAmount == b.amount:
		return models.Bid{}, appErrors.ErrSameBid
	case newAmount > b.amount:
		if err := acct.lock(newAmount - b.amount); err != nil {
			return models.Bid{}, err
		}
	default:
		if err := acct.unlock(b.amount - newAmount); err != nil {
			return models.Bid{}, err
		}
	}

	b.amount = newAmount
	return b.snapshot(courseID), nil
}

// WithdrawBid releases the full lock and removes the bid record. It is an
// internal refund path; students retract a bid by modifying it, and losing
// bids are released when enrollment closes.
func (e *Engine) WithdrawBid(studentID, courseID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, ok := e.courses[courseID]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	b, exists := c.byStudent[studentID]
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, "bid not found")
	}
	if err := e.students[studentID].unlock(b.amount); err != nil {
		return err
	}
	c.removeBid(studentID)
	return nil
}

// ListBids returns the course's active bids in insertion order.
func (e *Engine) ListBids(courseID string) ([]models.Bid, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	c, ok := e.courses[courseID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	bids := make([]models.Bid, 0, len(c.bids))
	for _, b := range c.bids {
		bids = append(bids, b.snapshot(courseID))
	}
	return bids, nil
}

func (c *course) removeBid(studentID string) {
	delete(c.byStudent, studentID)
	for i, b := range c.bids {
		if b.studentID == studentID {
			c.bids = append(c.bids[:i], c.bids[i+1:]...)
			return
		}
	}
}
