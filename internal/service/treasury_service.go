package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/openuni-dev/admission-auction-api/internal/engine"
	"github.com/openuni-dev/admission-auction-api/internal/models"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
)

// SetFeesPerUOCRequest changes the token cost of one unit of credit.
type SetFeesPerUOCRequest struct {
	FeesPerUOC uint64 `json:"fees_per_uoc" validate:"required,gt=0"`
}

// PayFeesRequest records an out-of-band fee payment to mint tokens.
type PayFeesRequest struct {
	Amount uint64 `json:"amount" validate:"required,gt=0"`
}

// PayFeesResult reports the outcome of a fee payment.
type PayFeesResult struct {
	Payment uint64         `json:"payment"`
	Minted  uint64         `json:"minted"`
	Student models.Student `json:"student"`
}

// TransferRequest moves tokens between admitted students.
type TransferRequest struct {
	To     string `json:"to" validate:"required"`
	Amount uint64 `json:"amount" validate:"required,gt=0"`
}

// TransferResult reports the fee charged on top of the amount.
type TransferResult struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
	Fee    uint64 `json:"fee"`
}

// WithdrawRequest pays out accumulated platform funds.
type WithdrawRequest struct {
	Recipient string `json:"recipient" validate:"required"`
	Amount    uint64 `json:"amount" validate:"required,gt=0"`
}

// TreasuryService covers the token economy: fee rates, minting, transfers
// and platform withdrawals.
type TreasuryService struct {
	engine    *engine.Engine
	gate      AuthorizationGate
	recorder  Recorder
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTreasuryService constructs a TreasuryService.
func NewTreasuryService(eng *engine.Engine, gate AuthorizationGate, recorder Recorder, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *TreasuryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TreasuryService{engine: eng, gate: gate, recorder: recorder, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// SetFeesPerUOC updates the fee rate. Requires the COO role.
func (s *TreasuryService) SetFeesPerUOC(ctx context.Context, callerID string, req SetFeesPerUOCRequest) error {
	if err := s.gate.Require(ctx, callerID, models.RoleCOO); err != nil {
		return err
	}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid fee rate payload")
	}

	if err := s.engine.SetFeesPerUOC(req.FeesPerUOC); err != nil {
		return err
	}

	s.recorder.Record(ctx, models.EventFeesPerUocChanged, callerID, map[string]interface{}{
		"fees_per_uoc": req.FeesPerUOC,
	})
	return nil
}

// FeesPerUOC returns the current fee rate.
func (s *TreasuryService) FeesPerUOC(ctx context.Context) uint64 {
	return s.engine.FeesPerUOC()
}

// PayFees mints tokens for the calling student in exchange for a recorded
// fee payment. The payment itself accrues to the platform.
func (s *TreasuryService) PayFees(ctx context.Context, callerID string, req PayFeesRequest) (*PayFeesResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}

	minted, err := s.engine.PayFees(callerID, req.Amount)
	if err != nil {
		return nil, err
	}

	s.invalidateStudent(ctx, callerID)
	s.metrics.AddTokensMinted(minted)
	s.recorder.Record(ctx, models.EventStudentPaidFees, callerID, map[string]interface{}{
		"payment": req.Amount,
		"minted":  minted,
	})

	student, err := s.engine.GetStudent(callerID)
	if err != nil {
		return nil, err
	}
	return &PayFeesResult{Payment: req.Amount, Minted: minted, Student: student}, nil
}

// Transfer moves tokens from the caller to another admitted student. The
// sender additionally pays the platform's percentage fee.
func (s *TreasuryService) Transfer(ctx context.Context, callerID string, req TransferRequest) (*TransferResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid transfer payload")
	}
	if req.To == callerID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "cannot transfer to self")
	}

	fee, err := s.engine.TransferWithFee(callerID, req.To, req.Amount)
	if err != nil {
		return nil, err
	}

	s.invalidateStudent(ctx, callerID)
	s.invalidateStudent(ctx, req.To)
	s.metrics.AddTokensTransferred(req.Amount, fee)
	s.recorder.Record(ctx, models.EventStudentToStudentTransfer, callerID, map[string]interface{}{
		"to":     req.To,
		"amount": req.Amount,
		"fee":    fee,
	})
	return &TransferResult{From: callerID, To: req.To, Amount: req.Amount, Fee: fee}, nil
}

// Withdraw pays out platform funds. Requires the COO role.
func (s *TreasuryService) Withdraw(ctx context.Context, callerID string, req WithdrawRequest) (uint64, error) {
	if err := s.gate.Require(ctx, callerID, models.RoleCOO); err != nil {
		return 0, err
	}
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid withdrawal payload")
	}

	if err := s.engine.WithdrawPlatform(req.Amount); err != nil {
		return 0, err
	}

	s.recorder.Record(ctx, models.EventTransfer, callerID, map[string]interface{}{
		"recipient": req.Recipient,
		"amount":    req.Amount,
	})
	return s.engine.PlatformBalance(), nil
}

// PlatformBalance reports the platform's accumulated funds. Like the fee
// rate, the balance is a public read.
func (s *TreasuryService) PlatformBalance(ctx context.Context) uint64 {
	return s.engine.PlatformBalance()
}

func (s *TreasuryService) invalidateStudent(ctx context.Context, studentID string) {
	if err := s.cache.Invalidate(ctx, studentCacheKey(studentID)); err != nil {
		s.logger.Debug("student cache invalidation failed", zap.String("student", studentID), zap.Error(err))
	}
}
