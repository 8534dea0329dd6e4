package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openuni-dev/admission-auction-api/internal/engine"
	"github.com/openuni-dev/admission-auction-api/internal/models"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
)

func newTestBidService(t *testing.T) (*BidService, *engine.Engine, *memoryRecorder) {
	t.Helper()
	eng := fundedEngine(t, "s1", "s2")
	_, err := eng.CreateCourse("COMP6451", 2, time.Now().Add(time.Hour), "admin-1")
	require.NoError(t, err)
	recorder := &memoryRecorder{}
	return NewBidService(eng, recorder, disabledCache(), nil, nil, nil), eng, recorder
}

func TestBidServicePlace(t *testing.T) {
	svc, eng, recorder := newTestBidService(t)

	bid, err := svc.Place(context.Background(), "s1", "COMP6451", PlaceBidRequest{Amount: 500})
	require.NoError(t, err)
	assert.Equal(t, uint64(500), bid.Amount)
	assert.Equal(t, []string{models.EventBidCreated}, recorder.kinds())

	student, err := eng.GetStudent("s1")
	require.NoError(t, err)
	assert.Equal(t, uint64(500), student.Locked)
}

func TestBidServicePlaceRejectsZeroAmount(t *testing.T) {
	svc, _, recorder := newTestBidService(t)

	_, err := svc.Place(context.Background(), "s1", "COMP6451", PlaceBidRequest{Amount: 0})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, recorder.kinds())
}

func TestBidServiceModify(t *testing.T) {
	svc, eng, recorder := newTestBidService(t)

	_, err := svc.Place(context.Background(), "s1", "COMP6451", PlaceBidRequest{Amount: 500})
	require.NoError(t, err)

	bid, err := svc.Modify(context.Background(), "s1", "COMP6451", ModifyBidRequest{Amount: 300})
	require.NoError(t, err)
	assert.Equal(t, uint64(300), bid.Amount)
	assert.Equal(t, []string{models.EventBidCreated, models.EventBidModified}, recorder.kinds())

	student, err := eng.GetStudent("s1")
	require.NoError(t, err)
	assert.Equal(t, uint64(300), student.Locked)
}

func TestBidServiceModifySameAmount(t *testing.T) {
	svc, _, _ := newTestBidService(t)

	_, err := svc.Place(context.Background(), "s1", "COMP6451", PlaceBidRequest{Amount: 500})
	require.NoError(t, err)

	_, err = svc.Modify(context.Background(), "s1", "COMP6451", ModifyBidRequest{Amount: 500})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSameBid.Code, appErrors.FromError(err).Code)
}
