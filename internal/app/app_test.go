package app_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashokahotel/hotel-booking-backend/internal/app"
	"github.com/ashokahotel/hotel-booking-backend/internal/config"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestApp(t *testing.T) *app.Container {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{
		HTTPAddr:        ":0",
		DegradedReads:   config.DegradedReadMemory,
		PublicBaseURL:   "http://localhost:8080",
		JWTSecret:       "test-secret",
		JWTTTL:          time.Hour,
		AdminUsername:   "admin",
		AdminPassword:   "admin123",
		ReceiptDir:      t.TempDir(),
		ReceiptMaxBytes: 5 << 20,
	}

	// No DB pool: the container wires the in-memory stores.
	container, err := app.NewContainer(app.Config{Cfg: cfg, Logger: logger})
	require.NoError(t, err)
	return container
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doMultipart(t *testing.T, router *gin.Engine, method, path string, fields map[string]string, token string) *httptest.ResponseRecorder {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func login(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/admin/login",
		map[string]string{"username": "admin", "password": "admin123"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func guestBookingForm() map[string]string {
	return map[string]string{
		"fullname":     "A",
		"mobile":       "999",
		"adult":        "2",
		"room":         "Standard Room",
		"total_amount": "2000",
	}
}

func TestAdminLogin(t *testing.T) {
	c := newTestApp(t)

	t.Run("valid credentials", func(t *testing.T) {
		login(t, c.Router)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		w := doJSON(t, c.Router, http.MethodPost, "/api/admin/login",
			map[string]string{"username": "admin", "password": "nope"}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
	})

	t.Run("admin routes need a token", func(t *testing.T) {
		w := doJSON(t, c.Router, http.MethodGet, "/api/admin/bookings", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		w := doJSON(t, c.Router, http.MethodGet, "/api/admin/bookings", nil, "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGuestBookingFlow(t *testing.T) {
	c := newTestApp(t)
	token := login(t, c.Router)

	w := doMultipart(t, c.Router, http.MethodPost, "/api/bookings", guestBookingForm(), "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])

	bookingID, _ := body["bookingId"].(string)
	require.True(t, strings.HasPrefix(bookingID, "ASH"), "got %q", bookingID)

	w = doJSON(t, c.Router, http.MethodGet, "/api/admin/bookings", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)
	bookings, _ := list["bookings"].([]any)
	require.Len(t, bookings, 1)

	entry := bookings[0].(map[string]any)
	assert.Equal(t, bookingID, entry["id"])
	assert.Equal(t, "pending", entry["status"])
	assert.Equal(t, float64(2000), entry["total_amount"])
	assert.Nil(t, entry["payment_receipt"])
}

func TestGuestBookingValidation(t *testing.T) {
	c := newTestApp(t)

	form := guestBookingForm()
	delete(form, "mobile")
	w := doMultipart(t, c.Router, http.MethodPost, "/api/bookings", form, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	form = guestBookingForm()
	form["total_amount"] = "a lot"
	w = doMultipart(t, c.Router, http.MethodPost, "/api/bookings", form, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStaffBookingIsConfirmed(t *testing.T) {
	c := newTestApp(t)
	token := login(t, c.Router)

	w := doMultipart(t, c.Router, http.MethodPost, "/api/admin/book-room", guestBookingForm(), token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, c.Router, http.MethodGet, "/api/admin/bookings", nil, token)
	list := decode(t, w)
	bookings := list["bookings"].([]any)
	require.Len(t, bookings, 1)
	assert.Equal(t, "confirmed", bookings[0].(map[string]any)["status"])
}

func TestUpdateBookingStatus(t *testing.T) {
	c := newTestApp(t)
	token := login(t, c.Router)

	w := doMultipart(t, c.Router, http.MethodPost, "/api/bookings", guestBookingForm(), "")
	bookingID := decode(t, w)["bookingId"].(string)

	t.Run("unknown status rejected", func(t *testing.T) {
		w := doJSON(t, c.Router, http.MethodPut, "/api/admin/bookings/"+bookingID,
			map[string]string{"status": "approved"}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown booking", func(t *testing.T) {
		w := doJSON(t, c.Router, http.MethodPut, "/api/admin/bookings/ASH0",
			map[string]string{"status": "confirmed"}, token)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("confirm", func(t *testing.T) {
		w := doJSON(t, c.Router, http.MethodPut, "/api/admin/bookings/"+bookingID,
			map[string]string{"status": "confirmed"}, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Status updated", decode(t, w)["message"])
	})
}

func TestStats(t *testing.T) {
	c := newTestApp(t)
	token := login(t, c.Router)

	for i := 0; i < 2; i++ {
		doMultipart(t, c.Router, http.MethodPost, "/api/bookings", guestBookingForm(), "")
	}

	w := doJSON(t, c.Router, http.MethodGet, "/api/admin/stats", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	stats := decode(t, w)["stats"].(map[string]any)
	assert.Equal(t, float64(2), stats["total_bookings"])
	assert.Equal(t, float64(2), stats["pending_bookings"])
	assert.Equal(t, float64(2), stats["today_bookings"])
}

func TestPreBookingLinkFlow(t *testing.T) {
	c := newTestApp(t)
	token := login(t, c.Router)

	w := doJSON(t, c.Router, http.MethodPost, "/api/admin/create-booking-link", map[string]any{
		"fullname":     "A",
		"mobile":       "999",
		"adult":        2,
		"room":         "Suite Room",
		"total_amount": 9000,
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	preBookingID := body["preBookingId"].(string)
	bookingLink := body["bookingLink"].(string)
	assert.True(t, strings.HasPrefix(preBookingID, "PRE"))
	assert.Contains(t, bookingLink, "complete-booking-suite.html")
	assert.Contains(t, bookingLink, preBookingID)

	t.Run("guest resolves the link", func(t *testing.T) {
		w := doJSON(t, c.Router, http.MethodGet, "/api/pre-booking/"+preBookingID, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		pre := decode(t, w)["preBooking"].(map[string]any)
		assert.Equal(t, "Suite Room", pre["room"])
		// Internal state stays internal.
		assert.NotContains(t, pre, "status")
	})

	t.Run("guest completes the booking", func(t *testing.T) {
		w := doMultipart(t, c.Router, http.MethodPost, "/api/complete-booking/"+preBookingID, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		bookingID := decode(t, w)["bookingId"].(string)
		assert.True(t, strings.HasPrefix(bookingID, "ASH"))
	})

	t.Run("second completion fails", func(t *testing.T) {
		w := doMultipart(t, c.Router, http.MethodPost, "/api/complete-booking/"+preBookingID, nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("resolved link is gone after redemption", func(t *testing.T) {
		w := doJSON(t, c.Router, http.MethodGet, "/api/pre-booking/"+preBookingID, nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHealthEndpoint(t *testing.T) {
	c := newTestApp(t)

	w := doJSON(t, c.Router, http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "OK", body["status"])
	// Memory-only wiring reports the store as down.
	assert.Equal(t, "Disconnected", body["store"])
}

func TestUnknownRoute(t *testing.T) {
	c := newTestApp(t)

	w := doJSON(t, c.Router, http.MethodGet, fmt.Sprintf("/api/%s", "nope"), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
