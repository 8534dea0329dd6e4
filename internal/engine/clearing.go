package engine

import (
	"sort"
	"time"

	"github.com/openuni-dev/admission-auction-api/internal/models"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
)

// ClearingResult is the outcome of closing enrollment for a course.
type ClearingResult struct {
	Course  models.Course
	Winners []models.Bid
	Losers  []models.Bid
}

// CloseEnrollment ranks the course's bids by amount descending, admits the
// top bidders up to the quota and refunds the rest, then closes the course
// permanently. Ties are broken by bid insertion order so results are
// reproducible. Closing a course with no bids is valid and yields an empty
// enrolled set.
func (e *Engine) CloseEnrollment(courseID string) (ClearingResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, ok := e.courses[courseID]
	if !ok {
		return ClearingResult{}, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	if c.closed {
		return ClearingResult{}, appErrors.ErrAlreadyClosed
	}

	ranked := make([]*bid, len(c.bids))
	copy(ranked, c.bids)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].amount > ranked[j].amount
	})

	limit := c.quota
	if len(ranked) < limit {
		limit = len(ranked)
	}

	result := ClearingResult{
		Winners: make([]models.Bid, 0, limit),
		Losers:  make([]models.Bid, 0, len(ranked)-limit),
	}

	for _, b := range ranked[:limit] {
		if err := e.students[b.studentID].spend(b.amount); err != nil {
			return ClearingResult{}, err
		}
		c.enrolled = append(c.enrolled, b.studentID)
		result.Winners = append(result.Winners, b.snapshot(courseID))
	}
	for _, b := range ranked[limit:] {
		if err := e.students[b.studentID].unlock(b.amount); err != nil {
			return ClearingResult{}, err
		}
		result.Losers = append(result.Losers, b.snapshot(courseID))
	}

	c.bids = nil
	c.byStudent = make(map[string]*bid)
	c.closed = true
	c.updatedAt = time.Now().UTC()

	result.Course = c.snapshot()
	return result, nil
}
