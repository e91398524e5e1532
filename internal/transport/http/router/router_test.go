package router_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"booking-platform/internal/core/clock"
	"booking-platform/internal/repo/memory"
	"booking-platform/internal/service"
	"booking-platform/internal/transport/http/handler"
	"booking-platform/internal/transport/http/router"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type errData struct {
	Kind    string         `json:"kind"`
	Details map[string]any `json:"details"`
}

type env struct {
	t     *testing.T
	api   *gin.Engine
	admin *gin.Engine
}

func newEnv(t *testing.T) *env {
	svc := service.New(memory.NewStore(), service.Options{
		Clock: clock.Fixed(time.Date(2025, 5, 15, 9, 0, 0, 0, time.UTC)),
	})
	reg := router.NewRegistry(handler.All(svc, zap.NewNop())...)
	opts := router.EngineOptions{Limits: router.Limits{MaxBody: 1 << 10, Timeout: 5 * time.Second}}
	return &env{
		t:     t,
		api:   router.NewAPIEngine(zap.NewNop(), reg, opts),
		admin: router.NewAdminEngine(zap.NewNop(), reg, opts),
	}
}

func (e *env) do(h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	e.t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(e.t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var out envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" && bytes.HasPrefix(w.Body.Bytes(), []byte("{")) {
		require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func (e *env) mustOK(method, path string, body any, into any) {
	e.t.Helper()
	w, out := e.do(e.api, method, path, body)
	require.Equal(e.t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(e.t, 0, out.Code)
	if into != nil {
		require.NoError(e.t, json.Unmarshal(out.Data, into))
	}
}

func (e *env) mustFail(method, path string, body any, status int, kind string) errData {
	e.t.Helper()
	w, out := e.do(e.api, method, path, body)
	require.Equal(e.t, status, w.Code, w.Body.String())
	require.Equal(e.t, status, out.Code)
	var d errData
	require.NoError(e.t, json.Unmarshal(out.Data, &d))
	assert.Equal(e.t, kind, d.Kind)
	return d
}

type idOnly struct {
	ID int64 `json:"id"`
}

// seed creates a user, promotes them and lists one accommodation.
func (e *env) seed() (userID, hostID, accID int64) {
	var u, h, a idOnly
	e.mustOK(http.MethodPost, "/api/v1/users", gin.H{"name": "Ada", "surname": "L", "email": "ada@example.com"}, &u)
	e.mustOK(http.MethodPost, "/api/v1/hosts", gin.H{"userId": u.ID}, &h)
	e.mustOK(http.MethodPost, "/api/v1/accommodations", gin.H{
		"name": "Casa", "address": "Via Roma 1", "roomCount": 2, "bedCount": 4, "pricePerNight": 99.5,
		"availabilityStart": "2025-06-01", "availabilityEnd": "2025-06-30", "hostId": h.ID,
	}, &a)
	return u.ID, h.ID, a.ID
}

func TestReservationAdmissionOverHTTP(t *testing.T) {
	e := newEnv(t)
	userID, _, accID := e.seed()

	t.Run("inside window", func(t *testing.T) {
		var r struct {
			ID        int64  `json:"id"`
			StartDate string `json:"startDate"`
			EndDate   string `json:"endDate"`
		}
		e.mustOK(http.MethodPost, "/api/v1/reservations", gin.H{
			"userId": userID, "accommodationId": accID, "startDate": "2025-06-10", "endDate": "2025-06-12",
		}, &r)
		assert.Positive(t, r.ID)
		assert.Equal(t, "2025-06-10", r.StartDate)
		assert.Equal(t, "2025-06-12", r.EndDate)
	})

	t.Run("outside window", func(t *testing.T) {
		d := e.mustFail(http.MethodPost, "/api/v1/reservations", gin.H{
			"userId": userID, "accommodationId": accID, "startDate": "2025-06-25", "endDate": "2025-07-02",
		}, http.StatusUnprocessableEntity, "OUTSIDE_AVAILABILITY_WINDOW")
		assert.Equal(t, "2025-06-01", d.Details["availabilityStart"])
		assert.Equal(t, "2025-06-30", d.Details["availabilityEnd"])
	})

	t.Run("past date", func(t *testing.T) {
		e.mustFail(http.MethodPost, "/api/v1/reservations", gin.H{
			"userId": userID, "accommodationId": accID, "startDate": "2025-05-01", "endDate": "2025-05-03",
		}, http.StatusBadRequest, "PAST_DATE")
	})

	t.Run("inverted range", func(t *testing.T) {
		e.mustFail(http.MethodPost, "/api/v1/reservations", gin.H{
			"userId": userID, "accommodationId": accID, "startDate": "2025-06-12", "endDate": "2025-06-10",
		}, http.StatusBadRequest, "INVALID_RANGE")
	})

	t.Run("unknown accommodation", func(t *testing.T) {
		e.mustFail(http.MethodPost, "/api/v1/reservations", gin.H{
			"userId": userID, "accommodationId": 999, "startDate": "2025-06-10", "endDate": "2025-06-12",
		}, http.StatusNotFound, "ACCOMMODATION_NOT_FOUND")
	})

	t.Run("malformed date", func(t *testing.T) {
		w, out := e.do(e.api, http.MethodPost, "/api/v1/reservations", gin.H{
			"userId": userID, "accommodationId": accID, "startDate": "10/06/2025", "endDate": "2025-06-12",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, out.Msg, "startDate")
	})

	t.Run("latest for user", func(t *testing.T) {
		var r idOnly
		e.mustOK(http.MethodGet, "/api/v1/users/"+strconv.FormatInt(userID, 10)+"/reservations/latest", nil, &r)
		assert.Positive(t, r.ID)
	})

	t.Run("missing reservation", func(t *testing.T) {
		e.mustFail(http.MethodGet, "/api/v1/reservations/424242", nil, http.StatusNotFound, "RESERVATION_NOT_FOUND")
	})
}

func TestHostUniquenessOverHTTP(t *testing.T) {
	e := newEnv(t)
	userID, hostID, _ := e.seed()

	d := e.mustFail(http.MethodPost, "/api/v1/hosts", gin.H{"userId": userID}, http.StatusConflict, "DUPLICATE_HOST")
	assert.EqualValues(t, userID, d.Details["userId"])

	var h idOnly
	e.mustOK(http.MethodGet, "/api/v1/users/"+strconv.FormatInt(userID, 10)+"/host", nil, &h)
	assert.Equal(t, hostID, h.ID)

	e.mustFail(http.MethodPost, "/api/v1/hosts", gin.H{"userId": 777}, http.StatusNotFound, "USER_NOT_FOUND")
}

func TestAccommodationQueries(t *testing.T) {
	e := newEnv(t)
	_, hostID, _ := e.seed()

	var rows []idOnly
	e.mustOK(http.MethodGet, "/api/v1/accommodations?from=2025-06-20&to=2025-07-10", nil, &rows)
	assert.Len(t, rows, 1)

	e.mustOK(http.MethodGet, "/api/v1/hosts/"+strconv.FormatInt(hostID, 10)+"/accommodations", nil, &rows)
	assert.Len(t, rows, 1)

	e.mustFail(http.MethodGet, "/api/v1/accommodations?from=2025-07-10&to=2025-06-20", nil, http.StatusBadRequest, "INVALID_RANGE")
	e.mustFail(http.MethodGet, "/api/v1/accommodations?rooms=-1", nil, http.StatusBadRequest, "INVALID_QUERY")

	e.mustFail(http.MethodPost, "/api/v1/accommodations", gin.H{
		"name": "Ghost", "availabilityStart": "2025-06-01", "availabilityEnd": "2025-06-30", "hostId": 999,
	}, http.StatusNotFound, "HOST_NOT_FOUND")
}

func TestFeedbackScoreValidation(t *testing.T) {
	e := newEnv(t)
	e.mustFail(http.MethodPost, "/api/v1/feedbacks", gin.H{"title": "meh", "score": 9}, http.StatusBadRequest, "INVALID_ARGUMENT")

	var f struct {
		ID    int64 `json:"id"`
		Score int   `json:"score"`
	}
	e.mustOK(http.MethodPost, "/api/v1/feedbacks", gin.H{"title": "great", "score": 5}, &f)
	assert.Equal(t, 5, f.Score)
}

func TestReadyChecksAndRouting(t *testing.T) {
	e := newEnv(t)

	w, _ := e.do(e.api, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = e.do(e.api, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, out := e.do(e.api, http.MethodGet, "/api/v1/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 404, out.Code)

	w, _ = e.do(e.api, http.MethodGet, "/api/v1/users", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestBodyLimit(t *testing.T) {
	e := newEnv(t)
	w, out := e.do(e.api, http.MethodPost, "/api/v1/users", gin.H{"name": string(make([]byte, 4096))})
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, 413, out.Code)
}

func TestAdminSurface(t *testing.T) {
	e := newEnv(t)
	userID, _, accID := e.seed()
	e.mustOK(http.MethodPost, "/api/v1/reservations", gin.H{
		"userId": userID, "accommodationId": accID, "startDate": "2025-06-10", "endDate": "2025-06-12",
	}, nil)

	w, out := e.do(e.admin, http.MethodDelete, "/admin/v1/reservations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var n struct {
		Deleted int64 `json:"deleted"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &n))
	assert.EqualValues(t, 1, n.Deleted)

	// the booking routes are not on the admin engine
	w, _ = e.do(e.admin, http.MethodGet, "/api/v1/users", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = e.do(e.admin, http.MethodPost, "/admin/v1/cache/purge", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = e.do(e.admin, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "booking_reservation_admissions_total")
}
