package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openuni-dev/admission-auction-api/internal/models"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
)

func newTestTreasury(t *testing.T, students ...string) (*TreasuryService, *memoryRecorder) {
	t.Helper()
	eng := fundedEngine(t, students...)
	recorder := &memoryRecorder{}
	gate := &stubGate{roles: map[string]models.Role{
		"coo-1":   models.RoleCOO,
		"admin-1": models.RoleUniAdmin,
	}}
	return NewTreasuryService(eng, gate, recorder, disabledCache(), nil, nil, nil), recorder
}

func TestTreasuryPayFeesMintsTokens(t *testing.T) {
	svc, recorder := newTestTreasury(t, "s1")

	result, err := svc.PayFees(context.Background(), "s1", PayFeesRequest{Amount: 3000})
	require.NoError(t, err)
	// 3000 / 1000 UOC worth, 100 tokens per UOC, on top of setup funding.
	assert.Equal(t, uint64(300), result.Minted)
	assert.Equal(t, uint64(2100), result.Student.Balance)
	assert.Contains(t, recorder.kinds(), models.EventStudentPaidFees)
}

func TestTreasuryPayFeesRequiresAdmission(t *testing.T) {
	svc, _ := newTestTreasury(t)

	_, err := svc.PayFees(context.Background(), "outsider", PayFeesRequest{Amount: 3000})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotAdmitted.Code, appErrors.FromError(err).Code)
}

func TestTreasurySetFeesPerUOC(t *testing.T) {
	svc, recorder := newTestTreasury(t)

	require.NoError(t, svc.SetFeesPerUOC(context.Background(), "coo-1", SetFeesPerUOCRequest{FeesPerUOC: 2000}))
	assert.Equal(t, uint64(2000), svc.FeesPerUOC(context.Background()))
	assert.Equal(t, []string{models.EventFeesPerUocChanged}, recorder.kinds())

	err := svc.SetFeesPerUOC(context.Background(), "admin-1", SetFeesPerUOCRequest{FeesPerUOC: 500})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotAuthorized.Code, appErrors.FromError(err).Code)
}

func TestTreasuryTransferChargesSenderFee(t *testing.T) {
	svc, recorder := newTestTreasury(t, "s1", "s2")

	result, err := svc.Transfer(context.Background(), "s1", TransferRequest{To: "s2", Amount: 50})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), result.Fee)
	assert.Contains(t, recorder.kinds(), models.EventStudentToStudentTransfer)
}

func TestTreasuryTransferToSelfRejected(t *testing.T) {
	svc, _ := newTestTreasury(t, "s1")

	_, err := svc.Transfer(context.Background(), "s1", TransferRequest{To: "s1", Amount: 50})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTreasuryWithdrawIsCOOOnly(t *testing.T) {
	svc, recorder := newTestTreasury(t, "s1")

	// Setup funding put 18000 into the platform.
	remaining, err := svc.Withdraw(context.Background(), "coo-1", WithdrawRequest{Recipient: "treasury-account", Amount: 4000})
	require.NoError(t, err)
	assert.Equal(t, uint64(14000), remaining)
	assert.Contains(t, recorder.kinds(), models.EventTransfer)

	_, err = svc.Withdraw(context.Background(), "admin-1", WithdrawRequest{Recipient: "x", Amount: 1})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotAuthorized.Code, appErrors.FromError(err).Code)
}

func TestTreasuryPlatformBalanceIsPublic(t *testing.T) {
	svc, _ := newTestTreasury(t, "s1")

	// Setup funding put 18000 into the platform; no role is required to
	// read the balance, only mutations are gated.
	assert.Equal(t, uint64(18000), svc.PlatformBalance(context.Background()))
}
