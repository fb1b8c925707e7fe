package impl

import (
	"context"
	"testing"
	"time"

	"sentinel/config"
	"sentinel/internal/domain/entity"
	domainerrors "sentinel/internal/domain/errors"
	"sentinel/internal/domain/service"
	"sentinel/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAlertFixture() (usecase.AlertUsecase, *stubAlertRepository, *stubPublisher) {
	alertRepo := newStubAlertRepository()
	publisher := &stubPublisher{}
	svc := NewAlertService(&config.Config{}, testLogger(), alertRepo, publisher)

	return svc, alertRepo, publisher
}

func TestAlertService_DispatchPanic_WithLocation(t *testing.T) {
	svc, alertRepo, publisher := newAlertFixture()
	ctx := context.Background()

	capturedAt := time.Now().Add(-30 * time.Second).UTC().Truncate(time.Second)
	receipt, err := svc.DispatchPanic(ctx, &usecase.PanicInput{
		TouristID:  "tourist-1",
		Location:   &usecase.LocationInput{Latitude: 28.6562, Longitude: 77.2410},
		CapturedAt: capturedAt.Format(time.RFC3339),
	})
	require.NoError(t, err)
	require.NotNil(t, receipt)

	assert.NotEqual(t, uuid.Nil, receipt.AlertID)
	assert.Equal(t, "alerts/"+receipt.AlertID.String(), receipt.StorageLocator)
	assert.True(t, receipt.LocationAvailable)
	assert.InDelta(t, 28.6562, receipt.Latitude, 1e-9)

	// The record is durable and retrievable immediately after dispatch.
	stored, err := alertRepo.FindAlertByID(ctx, receipt.AlertID)
	require.NoError(t, err)
	assert.Equal(t, "tourist-1", stored.TouristID)
	assert.Equal(t, entity.AlertStatusActive, stored.Status)
	assert.True(t, stored.CapturedAt.Equal(capturedAt))
	assert.False(t, stored.ReceivedAt.IsZero())

	published := publisher.published()
	require.Len(t, published, 1)
	assert.Equal(t, service.EventKindPanicAlert, published[0].Kind)
	assert.Equal(t, string(entity.SeverityHigh), published[0].Severity)
}

func TestAlertService_DispatchPanic_WithoutLocation(t *testing.T) {
	svc, alertRepo, _ := newAlertFixture()
	ctx := context.Background()

	// A device with no fix still dispatches; the record carries an explicit
	// unavailable marker instead of a fabricated coordinate.
	receipt, err := svc.DispatchPanic(ctx, &usecase.PanicInput{TouristID: "tourist-1"})
	require.NoError(t, err)
	assert.False(t, receipt.LocationAvailable)

	stored, err := alertRepo.FindAlertByID(ctx, receipt.AlertID)
	require.NoError(t, err)
	assert.False(t, stored.LocationAvailable)
	assert.Zero(t, stored.Latitude)
	assert.Zero(t, stored.Longitude)
}

func TestAlertService_DispatchPanic_RejectsMissingTourist(t *testing.T) {
	svc, _, _ := newAlertFixture()

	_, err := svc.DispatchPanic(context.Background(), &usecase.PanicInput{TouristID: "   "})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
}

func TestAlertService_DispatchPanic_RejectsOutOfRangeLocation(t *testing.T) {
	svc, alertRepo, _ := newAlertFixture()

	// A present but invalid location is rejected; only absence is tolerated.
	_, err := svc.DispatchPanic(context.Background(), &usecase.PanicInput{
		TouristID: "tourist-1",
		Location:  &usecase.LocationInput{Latitude: 95, Longitude: 77},
	})
	require.Error(t, err)
	assert.Empty(t, alertRepo.order)
}

func TestAlertService_DispatchPanic_RejectsMalformedCapturedAt(t *testing.T) {
	svc, _, _ := newAlertFixture()

	_, err := svc.DispatchPanic(context.Background(), &usecase.PanicInput{
		TouristID:  "tourist-1",
		CapturedAt: "yesterday",
	})
	require.Error(t, err)
}

func TestAlertService_DispatchPanic_PersistenceFailurePropagates(t *testing.T) {
	alertRepo := newStubAlertRepository()
	alertRepo.createErr = domainerrors.NewDatabaseExecuteError(errors.New("db down"), "insert failed")
	svc := NewAlertService(&config.Config{}, testLogger(), alertRepo, &stubPublisher{})

	// An alert that cannot be stored must not report success.
	_, err := svc.DispatchPanic(context.Background(), &usecase.PanicInput{TouristID: "tourist-1"})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
}

func TestAlertService_DispatchPanic_PublishFailureStillSucceeds(t *testing.T) {
	alertRepo := newStubAlertRepository()
	publisher := &stubPublisher{publishErr: errors.New("broker down")}
	svc := NewAlertService(&config.Config{}, testLogger(), alertRepo, publisher)

	receipt, err := svc.DispatchPanic(context.Background(), &usecase.PanicInput{TouristID: "tourist-1"})
	require.NoError(t, err)
	assert.NotNil(t, receipt)
	assert.Len(t, alertRepo.order, 1)
}

func TestAlertService_ListRecent_AppliesLimitBounds(t *testing.T) {
	svc, alertRepo, _ := newAlertFixture()
	ctx := context.Background()

	for range 30 {
		_, err := svc.DispatchPanic(ctx, &usecase.PanicInput{TouristID: "tourist-1"})
		require.NoError(t, err)
	}
	require.Len(t, alertRepo.order, 30)

	// Zero limit falls back to the configured default.
	alerts, err := svc.ListRecent(ctx, 0, "")
	require.NoError(t, err)
	assert.Len(t, alerts, 20)

	// An oversized limit is clamped to the maximum.
	alerts, err = svc.ListRecent(ctx, 5000, "")
	require.NoError(t, err)
	assert.Len(t, alerts, 30)
}

func TestAlertService_UpdateStatus_Acknowledge(t *testing.T) {
	svc, _, _ := newAlertFixture()
	ctx := context.Background()

	receipt, err := svc.DispatchPanic(ctx, &usecase.PanicInput{TouristID: "tourist-1"})
	require.NoError(t, err)

	alert, err := svc.UpdateStatus(ctx, receipt.AlertID, "acknowledged")
	require.NoError(t, err)
	assert.Equal(t, entity.AlertStatusAcknowledged, alert.Status)
	assert.Equal(t, "tourist-1", alert.TouristID)
}

func TestAlertService_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newAlertFixture()

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), "escalated")
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "INVALID_ALERT_STATUS", appErr.ErrorCode())
}

func TestAlertService_UpdateStatus_UnknownAlert(t *testing.T) {
	svc, _, _ := newAlertFixture()

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), "resolved")
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "ALERT_NOT_FOUND", appErr.ErrorCode())
}
