package engine

import (
	"sync"
	"time"

	"github.com/openuni-dev/admission-auction-api/internal/models"
)

// Options tunes the token economy.
type Options struct {
	FeesPerUOC      uint64
	TransferFeeRate float64
}

// Engine owns the entire auction state: student balances and locks, course
// definitions, active bids and the platform balance. Every mutation takes the
// exclusive lock so operations are serialized; reads take the shared lock and
// observe a consistent snapshot. Persistence and authorization live outside.
type Engine struct {
	mu sync.RWMutex

	students map[string]*account
	courses  map[string]*course

	platform   uint64
	feesPerUOC uint64
	feeRate    float64
}

type account struct {
	id         string
	balance    uint64 // spendable, excludes locked
	locked     uint64 // sum of active bid locks
	admittedAt time.Time
}

type course struct {
	id        string
	quota     int
	deadline  time.Time
	prereqs   []string
	lecturer  string
	closed    bool
	enrolled  []string
	createdBy string
	createdAt time.Time
	updatedAt time.Time

	// bids keeps insertion order; clearing relies on it for deterministic
	// tie-breaking between equal amounts.
	bids      []*bid
	byStudent map[string]*bid
}

type bid struct {
	studentID string
	amount    uint64
	placedAt  time.Time
}

// New constructs an empty engine.
func New(opts Options) *Engine {
	if opts.FeesPerUOC == 0 {
		opts.FeesPerUOC = 1000
	}
	if opts.TransferFeeRate <= 0 {
		opts.TransferFeeRate = 0.10
	}
	return &Engine{
		students:   make(map[string]*account),
		courses:    make(map[string]*course),
		feesPerUOC: opts.FeesPerUOC,
		feeRate:    opts.TransferFeeRate,
	}
}

func (a *account) snapshot() models.Student {
	return models.Student{
		ID:         a.id,
		Balance:    a.balance,
		Locked:     a.locked,
		Admitted:   true,
		AdmittedAt: a.admittedAt,
	}
}

func (c *course) snapshot() models.Course {
	state := models.CourseStateOpen
	if c.closed {
		state = models.CourseStateClosed
	}
	enrolled := make([]string, len(c.enrolled))
	copy(enrolled, c.enrolled)
	prereqs := make([]string, len(c.prereqs))
	copy(prereqs, c.prereqs)
	return models.Course{
		ID:               c.id,
		Quota:            c.quota,
		Deadline:         c.deadline,
		Prerequisites:    prereqs,
		Lecturer:         c.lecturer,
		State:            state,
		EnrolledStudents: enrolled,
		CreatedBy:        c.createdBy,
		CreatedAt:        c.createdAt,
		UpdatedAt:        c.updatedAt,
	}
}

func (b *bid) snapshot(courseID string) models.Bid {
	return models.Bid{
		StudentID: b.studentID,
		CourseID:  courseID,
		Amount:    b.amount,
		PlacedAt:  b.placedAt,
	}
}
