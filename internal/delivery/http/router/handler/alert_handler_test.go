package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sentinel/internal/delivery/http/validator"
	"sentinel/internal/domain/entity"
	domainerrors "sentinel/internal/domain/errors"
	"sentinel/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAlertUsecase records calls and returns canned results.
type fakeAlertUsecase struct {
	lastPanic    *usecase.PanicInput
	dispatchErr  error
	updateStatus string
}

func (f *fakeAlertUsecase) DispatchPanic(_ context.Context, input *usecase.PanicInput) (*usecase.DispatchReceipt, error) {
	f.lastPanic = input
	if f.dispatchErr != nil {
		return nil, f.dispatchErr
	}

	id := uuid.New()

	return &usecase.DispatchReceipt{
		AlertID:           id,
		StorageLocator:    "alerts/" + id.String(),
		LocationAvailable: input.Location != nil,
	}, nil
}

func (f *fakeAlertUsecase) ListRecent(_ context.Context, _ int, _ string) ([]*entity.EmergencyAlert, error) {
	return []*entity.EmergencyAlert{}, nil
}

func (f *fakeAlertUsecase) UpdateStatus(_ context.Context, id uuid.UUID, status string) (*entity.EmergencyAlert, error) {
	f.updateStatus = status

	return &entity.EmergencyAlert{ID: id, Status: entity.AlertStatus(status)}, nil
}

func newAlertTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func newTestAlertHandler(uc usecase.AlertUsecase) *AlertHandler {
	return &AlertHandler{
		alertUC: uc,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestAlertHandler_DispatchPanic_Success(t *testing.T) {
	fake := &fakeAlertUsecase{}
	handler := newTestAlertHandler(fake)

	body := `{"tourist_id":"tourist-1","location":{"latitude":28.6562,"longitude":77.241}}`
	c, rec := newAlertTestContext(t, http.MethodPost, "/alerts/panic", body)

	require.NoError(t, handler.DispatchPanic(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, fake.lastPanic)
	assert.Equal(t, "tourist-1", fake.lastPanic.TouristID)
	require.NotNil(t, fake.lastPanic.Location)
	assert.InDelta(t, 28.6562, fake.lastPanic.Location.Latitude, 1e-9)

	responseBody := rec.Body.String()
	assert.Contains(t, responseBody, `"success":true`)
	assert.Contains(t, responseBody, "storage_locator")
}

func TestAlertHandler_DispatchPanic_WithoutLocation(t *testing.T) {
	fake := &fakeAlertUsecase{}
	handler := newTestAlertHandler(fake)

	c, rec := newAlertTestContext(t, http.MethodPost, "/alerts/panic", `{"tourist_id":"tourist-1"}`)

	require.NoError(t, handler.DispatchPanic(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, fake.lastPanic)
	assert.Nil(t, fake.lastPanic.Location)
	assert.Contains(t, rec.Body.String(), `"location_available":false`)
}

func TestAlertHandler_DispatchPanic_MissingTouristID(t *testing.T) {
	fake := &fakeAlertUsecase{}
	handler := newTestAlertHandler(fake)

	c, rec := newAlertTestContext(t, http.MethodPost, "/alerts/panic", `{}`)

	require.NoError(t, handler.DispatchPanic(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, fake.lastPanic)
}

func TestAlertHandler_DispatchPanic_UsecaseErrorMapped(t *testing.T) {
	fake := &fakeAlertUsecase{dispatchErr: domainerrors.ErrAlertPersistFailed}
	handler := newTestAlertHandler(fake)

	c, rec := newAlertTestContext(t, http.MethodPost, "/alerts/panic", `{"tourist_id":"tourist-1"}`)

	require.NoError(t, handler.DispatchPanic(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "ALERT_PERSIST_FAILED")
}

func TestAlertHandler_UpdateAlertStatus_Success(t *testing.T) {
	fake := &fakeAlertUsecase{}
	handler := newTestAlertHandler(fake)

	alertID := uuid.New()
	c, rec := newAlertTestContext(t, http.MethodPatch, "/alerts/"+alertID.String()+"/status", `{"status":"acknowledged"}`)
	c.SetParamNames("id")
	c.SetParamValues(alertID.String())

	require.NoError(t, handler.UpdateAlertStatus(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "acknowledged", fake.updateStatus)
}

func TestAlertHandler_UpdateAlertStatus_BadID(t *testing.T) {
	fake := &fakeAlertUsecase{}
	handler := newTestAlertHandler(fake)

	c, rec := newAlertTestContext(t, http.MethodPatch, "/alerts/not-a-uuid/status", `{"status":"acknowledged"}`)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, handler.UpdateAlertStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, fake.updateStatus)
}

func TestParseLimit(t *testing.T) {
	assert.Equal(t, 0, parseLimit(""))
	assert.Equal(t, 0, parseLimit("abc"))
	assert.Equal(t, 0, parseLimit("-5"))
	assert.Equal(t, 25, parseLimit("25"))
}
