package engine

import (
	"math"
	"time"

	"github.com/openuni-dev/admission-auction-api/internal/models"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
)

// AdmitStudent registers a new student account with a zero balance.
func (e *Engine) AdmitStudent(studentID string) error {
	if studentID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "student id required")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.students[studentID]; exists {
		return appErrors.Clone(appErrors.ErrDuplicate, "student already admitted")
	}
	e.students[studentID] = &account{id: studentID, admittedAt: time.Now().UTC()}
	return nil
}

// GetStudent returns a snapshot of the student's balances.
func (e *Engine) GetStudent(studentID string) (models.Student, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	acct, ok := e.students[studentID]
	if !ok {
		return models.Student{}, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return acct.snapshot(), nil
}

// SetFeesPerUOC changes the fee-to-token conversion rate.
func (e *Engine) SetFeesPerUOC(rate uint64) error {
	if rate == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "fees per UOC must be positive")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.feesPerUOC = rate
	return nil
}

// FeesPerUOC returns the current conversion rate.
func (e *Engine) FeesPerUOC() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.feesPerUOC
}

// PayFees converts a fee payment into admission tokens: 100 tokens are minted
// per UOC purchased. The raw payment accrues to the platform balance.
func (e *Engine) PayFees(studentID string, payment uint64) (uint64, error) {
	if payment == 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "payment must be positive")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	acct, ok := e.students[studentID]
	if !ok {
		return 0, appErrors.Clone(appErrors.ErrNotAdmitted, "only admitted students can pay fees")
	}

	minted := payment / e.feesPerUOC * 100
	acct.balance += minted
	e.platform += payment
	return minted, nil
}

// TransferWithFee moves tokens between two admitted students. The sender
// bears the platform cut: amount plus floor(amount*feeRate) leaves the
// sender, the recipient receives amount, the platform keeps the fee.
func (e *Engine) TransferWithFee(fromID, toID string, amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "amount must be positive")
	}
	if fromID == toID {
		return 0, appErrors.Clone(appErrors.ErrValidation, "cannot transfer to self")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	from, ok := e.students[fromID]
	if !ok {
		return 0, appErrors.Clone(appErrors.ErrNotAdmitted, "sender is not an admitted student")
	}
	to, ok := e.students[toID]
	if !ok {
		return 0, appErrors.Clone(appErrors.ErrNotAdmitted, "recipient is not an admitted student")
	}

	fee := uint64(math.Floor(float64(amount) * e.feeRate))
	if from.balance < amount+fee {
		return 0, appErrors.Clone(appErrors.ErrInsufficientBalance, "not enough tokens for transfer and fee")
	}

	from.balance -= amount + fee
	to.balance += amount
	e.platform += fee
	return fee, nil
}

// WithdrawPlatform debits the platform balance for an external payout.
func (e *Engine) WithdrawPlatform(amount uint64) error {
	if amount == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "amount must be positive")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.platform < amount {
		return appErrors.ErrInsufficientPlatformBalance
	}
	e.platform -= amount
	return nil
}

// PlatformBalance returns the accumulated fees held by the platform.
func (e *Engine) PlatformBalance() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.platform
}

// lock moves tokens from spendable balance into the locked pool.
// Callers must hold the write lock.
func (a *account) lock(amount uint64) error {
	if a.balance < amount {
		return appErrors.ErrInsufficientBalance
	}
	a.balance -= amount
	a.locked += amount
	return nil
}

// unlock releases previously locked tokens back to the spendable balance.
// Releasing more than is locked indicates corrupted bookkeeping.
func (a *account) unlock(amount uint64) error {
	if amount > a.locked {
		return appErrors.Wrap(nil, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "unlock exceeds locked total")
	}
	a.locked -= amount
	a.balance += amount
	return nil
}

// spend finalizes a lock into a permanent debit. The balance was already
// reduced when the lock was taken; only the lock record is cleared.
func (a *account) spend(amount uint64) error {
	if amount > a.locked {
		return appErrors.Wrap(nil, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "spend exceeds locked total")
	}
	a.locked -= amount
	return nil
}
