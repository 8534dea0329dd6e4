package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
)

func newTestEngine() *Engine {
	return New(Options{FeesPerUOC: 1000, TransferFeeRate: 0.10})
}

func TestAdmitStudent(t *testing.T) {
	e := newTestEngine()

	require.NoError(t, e.AdmitStudent("s1"))

	student, err := e.GetStudent("s1")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), student.Balance)
	assert.True(t, student.Admitted)
	assert.False(t, student.AdmittedAt.IsZero())
}

func TestAdmitStudentDuplicate(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.AdmitStudent("s1"))

	err := e.AdmitStudent("s1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicate.Code, appErrors.FromError(err).Code)
}

func TestGetStudentNotFound(t *testing.T) {
	e := newTestEngine()

	_, err := e.GetStudent("missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPayFeesMintsHundredTokensPerUOC(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.AdmitStudent("s1"))

	minted, err := e.PayFees("s1", 3000)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), minted)

	student, err := e.GetStudent("s1")
	require.NoError(t, err)
	assert.Equal(t, uint64(300), student.Balance)
	assert.Equal(t, uint64(3000), e.PlatformBalance())
}

func TestPayFeesNotAdmitted(t *testing.T) {
	e := newTestEngine()

	_, err := e.PayFees("outsider", 3000)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotAdmitted.Code, appErrors.FromError(err).Code)
	assert.Equal(t, uint64(0), e.PlatformBalance())
}

func TestSetFeesPerUOC(t *testing.T) {
	e := newTestEngine()

	require.NoError(t, e.SetFeesPerUOC(100))
	assert.Equal(t, uint64(100), e.FeesPerUOC())

	err := e.SetFeesPerUOC(0)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTransferWithFeeSenderBearsCut(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.AdmitStudent("s1"))
	require.NoError(t, e.AdmitStudent("s2"))
	_, err := e.PayFees("s1", 2000)
	require.NoError(t, err)

	platformBefore := e.PlatformBalance()

	fee, err := e.TransferWithFee("s1", "s2", 50)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), fee)

	sender, _ := e.GetStudent("s1")
	receiver, _ := e.GetStudent("s2")
	assert.Equal(t, uint64(200-55), sender.Balance)
	assert.Equal(t, uint64(50), receiver.Balance)
	assert.Equal(t, platformBefore+5, e.PlatformBalance())
}

func TestTransferWithFeeInsufficientBalance(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.AdmitStudent("s1"))
	require.NoError(t, e.AdmitStudent("s2"))
	_, err := e.PayFees("s1", 1000)
	require.NoError(t, err)

	// 100 tokens available; 100 + 10 fee exceeds the balance.
	_, err = e.TransferWithFee("s1", "s2", 100)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInsufficientBalance.Code, appErrors.FromError(err).Code)

	sender, _ := e.GetStudent("s1")
	receiver, _ := e.GetStudent("s2")
	assert.Equal(t, uint64(100), sender.Balance)
	assert.Equal(t, uint64(0), receiver.Balance)
}

func TestTransferWithFeeRequiresAdmittedParties(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.AdmitStudent("s1"))
	_, err := e.PayFees("s1", 1000)
	require.NoError(t, err)

	_, err = e.TransferWithFee("s1", "outsider", 10)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotAdmitted.Code, appErrors.FromError(err).Code)

	_, err = e.TransferWithFee("outsider", "s1", 10)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotAdmitted.Code, appErrors.FromError(err).Code)
}

func TestWithdrawPlatform(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.AdmitStudent("s1"))
	_, err := e.PayFees("s1", 3000)
	require.NoError(t, err)

	require.NoError(t, e.WithdrawPlatform(42))
	assert.Equal(t, uint64(2958), e.PlatformBalance())

	err = e.WithdrawPlatform(1_000_000)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInsufficientPlatformBalance.Code, appErrors.FromError(err).Code)
	assert.Equal(t, uint64(2958), e.PlatformBalance())
}
