package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	bookingRepo "roomapp/database/repository/booking"
	"roomapp/middleware"
	"roomapp/models"
	"roomapp/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubBookingService returns canned results per method.
type stubBookingService struct {
	booking *models.Booking
	list    []models.Booking
	err     error

	lastActor  string
	lastTarget string
}

func (s *stubBookingService) Create(ctx context.Context, actorUID string, in booking.CreateInput) (*models.Booking, error) {
	s.lastActor = actorUID
	return s.booking, s.err
}

func (s *stubBookingService) UpdateStatus(ctx context.Context, actorUID, id, target string) (*models.Booking, error) {
	s.lastActor = actorUID
	s.lastTarget = target
	return s.booking, s.err
}

func (s *stubBookingService) Get(ctx context.Context, actorUID, id string) (*models.Booking, error) {
	s.lastActor = actorUID
	return s.booking, s.err
}

func (s *stubBookingService) ListForUser(ctx context.Context, actorUID, uid string) ([]models.Booking, error) {
	s.lastActor = actorUID
	return s.list, s.err
}

// asUser injects the identity the auth middleware would set.
func asUser(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxAuthUID, uid)
		c.Set(middleware.CtxIdentity, &middleware.AuthIdentity{UID: uid})
		c.Next()
	}
}

func newBookingRouter(svc *stubBookingService, uid string) *gin.Engine {
	r := gin.New()
	h := NewBookingHandler(svc, zap.NewNop())
	api := r.Group("/api/bookings", asUser(uid))
	api.POST("", h.CreateBookingHandler)
	api.PATCH("/:id/status", h.UpdateStatusHandler)
	api.GET("/user/:uid", h.ListUserBookingsHandler)
	api.GET("/:id", h.GetBookingHandler)
	return r
}

func newRequest(method, path, body string) *http.Request {
	if body == "" {
		body = "{}"
	}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	return serve(r, newRequest(method, path, body))
}

func TestCreateBookingHandler(t *testing.T) {
	svc := &stubBookingService{booking: &models.Booking{ID: "b1", Status: models.StatusPending}}
	r := newBookingRouter(svc, "client-1")

	w := doJSON(t, r, http.MethodPost, "/api/bookings",
		`{"stylistUid":"s1","serviceId":"hair","dateTime":"2026-09-01T10:00:00Z","price":120}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "client-1", svc.lastActor, "actor comes from the token, not the body")

	var resp struct {
		OK      bool           `json:"ok"`
		Booking models.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "b1", resp.Booking.ID)
}

func TestCreateBookingHandlerBadDateTime(t *testing.T) {
	svc := &stubBookingService{}
	r := newBookingRouter(svc, "client-1")

	w := doJSON(t, r, http.MethodPost, "/api/bookings",
		`{"stylistUid":"s1","serviceId":"hair","dateTime":"tomorrow at noon"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusHandler(t *testing.T) {
	svc := &stubBookingService{booking: &models.Booking{ID: "b1", Status: models.StatusAccepted}}
	r := newBookingRouter(svc, "staff-1")

	w := doJSON(t, r, http.MethodPatch, "/api/bookings/b1/status", `{"status":"accepted"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "accepted", svc.lastTarget)
	assert.JSONEq(t, `{"ok":true,"status":"accepted"}`, w.Body.String())
}

func TestUpdateStatusHandlerRequiresStatus(t *testing.T) {
	r := newBookingRouter(&stubBookingService{}, "staff-1")

	w := doJSON(t, r, http.MethodPatch, "/api/bookings/b1/status", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{booking.ErrMissingFields, http.StatusBadRequest},
		{booking.ErrInvalidStatus, http.StatusBadRequest},
		{booking.ErrNotAuthorized, http.StatusForbidden},
		{bookingRepo.ErrNotFound, http.StatusNotFound},
		{booking.ErrIllegalTransition, http.StatusConflict},
		{booking.ErrAcceptConflict, http.StatusConflict},
		{errors.New("mongo timeout"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		svc := &stubBookingService{err: tc.err}
		r := newBookingRouter(svc, "staff-1")

		w := doJSON(t, r, http.MethodPatch, "/api/bookings/b1/status", `{"status":"accepted"}`)
		assert.Equal(t, tc.code, w.Code, tc.err.Error())
	}
}

func TestInternalErrorIsMasked(t *testing.T) {
	svc := &stubBookingService{err: errors.New("mongo: connection refused to 10.0.0.7")}
	r := newBookingRouter(svc, "staff-1")

	w := doJSON(t, r, http.MethodGet, "/api/bookings/b1", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Server error", resp["error"])
}

func TestGetBookingHandler(t *testing.T) {
	svc := &stubBookingService{booking: &models.Booking{ID: "b1"}}
	r := newBookingRouter(svc, "client-1")

	w := doJSON(t, r, http.MethodGet, "/api/bookings/b1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"booking"`)
}

func TestListUserBookingsHandler(t *testing.T) {
	svc := &stubBookingService{list: []models.Booking{{ID: "b1"}, {ID: "b2"}}}
	r := newBookingRouter(svc, "client-1")

	w := doJSON(t, r, http.MethodGet, "/api/bookings/user/client-1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Bookings []models.Booking `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Bookings, 2)
}
