package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"carbook/internal/config"
	"carbook/internal/database"
	"carbook/internal/events"
	"carbook/internal/models"
	"carbook/internal/service"
	"carbook/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newTestServer(t *testing.T) (*gin.Engine, *database.DB) {
	t.Helper()
	logger := zerolog.New(io.Discard)

	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.App.Name = "carbook"
	cfg.Server.TemplatesGlob = "../../web/templates/*.html"
	cfg.Session.CookieName = "carbook_session"
	cfg.Session.TTLSeconds = 3600
	cfg.Auth.AdminEmails = []string{"admin@example.com"}
	cfg.Auth.MinPasswordLen = 8
	cfg.Auth.LoginRateLimit.RPS = 100
	cfg.Auth.LoginRateLimit.Burst = 100

	sessions := session.NewMemorySessionRepository(time.Hour)
	bus := events.NewEventBus()
	bookings := service.NewBookingService(db, bus, &logger)
	cars := service.NewCarService(db, bus, &logger)
	users := service.NewUserService(db, cfg, &logger)

	srv := NewServer(cfg, bookings, cars, users, sessions, db.PingContext, &logger)
	return srv.Router(), db
}

// testClient carries the session cookie between requests like a browser.
type testClient struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func (c *testClient) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, path, body)
	require.NoError(c.t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "carbook_session" {
			c.cookie = cookie
		}
	}
	return w
}

func (c *testClient) register(email, name string) {
	c.t.Helper()
	w := c.do(http.MethodPost, "/register", url.Values{
		"email":    {email},
		"name":     {name},
		"password": {"secret-pass"},
	})
	require.Equal(c.t, http.StatusSeeOther, w.Code)
	require.Equal(c.t, "/", w.Header().Get("Location"))
}

func seedCar(t *testing.T, db *database.DB, available bool) *models.Car {
	t.Helper()
	car := &models.Car{
		Make:        "Toyota",
		Model:       "Corolla",
		Year:        2021,
		PricePerDay: 5000,
		IsAvailable: available,
	}
	require.NoError(t, db.CreateCar(context.Background(), car))
	return car
}

func TestCatalog(t *testing.T) {
	router, db := newTestServer(t)
	car := seedCar(t, db, true)
	client := &testClient{t: t, router: router}

	w := client.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Toyota Corolla")
	assert.Contains(t, w.Body.String(), "50.00")

	w = client.do(http.MethodGet, "/cars/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = client.do(http.MethodGet, "/cars/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), car.Label())
}

func TestBookingRequiresLogin(t *testing.T) {
	router, _ := newTestServer(t)
	client := &testClient{t: t, router: router}

	w := client.do(http.MethodGet, "/booking/my-bookings", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestBookingFlow(t *testing.T) {
	router, db := newTestServer(t)
	car := seedCar(t, db, true)
	client := &testClient{t: t, router: router}
	client.register("bob@example.com", "Bob")

	form := url.Values{
		"start_date": {"2026-09-01T10:00"},
		"end_date":   {"2026-09-03T10:00"},
	}
	w := client.do(http.MethodPost, "/booking/new/1", form)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/booking/my-bookings", w.Header().Get("Location"))

	// Two days at 50.00
	w = client.do(http.MethodGet, "/booking/my-bookings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "100.00")
	assert.Contains(t, w.Body.String(), "confirmed")

	// The car is off the market now
	got, err := db.GetCar(context.Background(), car.ID)
	require.NoError(t, err)
	assert.False(t, got.IsAvailable)

	// A second attempt bounces back to the car page without writing
	w = client.do(http.MethodPost, "/booking/new/1", form)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cars/1", w.Header().Get("Location"))

	bookings, err := db.ListAllBookings(context.Background())
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestBookingFormUnavailableCarRedirects(t *testing.T) {
	router, db := newTestServer(t)
	seedCar(t, db, false)
	client := &testClient{t: t, router: router}
	client.register("bob@example.com", "Bob")

	w := client.do(http.MethodGet, "/booking/new/1", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cars/1", w.Header().Get("Location"))
}

func TestAdminGuard(t *testing.T) {
	router, _ := newTestServer(t)
	client := &testClient{t: t, router: router}
	client.register("bob@example.com", "Bob")

	w := client.do(http.MethodGet, "/booking/admin/bookings", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

var deleteTokenRe = regexp.MustCompile(`name="_token" value="([0-9a-f]+)"`)

func TestAdminDeleteBooking(t *testing.T) {
	router, db := newTestServer(t)
	car := seedCar(t, db, true)

	user := &testClient{t: t, router: router}
	user.register("bob@example.com", "Bob")
	w := user.do(http.MethodPost, "/booking/new/1", url.Values{
		"start_date": {"2026-09-01T10:00"},
		"end_date":   {"2026-09-03T10:00"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	admin := &testClient{t: t, router: router}
	admin.register("admin@example.com", "Admin")

	w = admin.do(http.MethodGet, "/booking/admin/bookings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Bob")

	match := deleteTokenRe.FindStringSubmatch(w.Body.String())
	require.Len(t, match, 2)
	token := match[1]

	// Wrong token leaves the booking in place
	w = admin.do(http.MethodPost, "/booking/admin/booking/1/delete", url.Values{"_token": {"bogus"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	bookings, err := db.ListAllBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 1)

	// Real token removes it and frees the car
	w = admin.do(http.MethodPost, "/booking/admin/booking/1/delete", url.Values{"_token": {token}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/booking/admin/bookings", w.Header().Get("Location"))

	bookings, err = db.ListAllBookings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bookings)

	got, err := db.GetCar(context.Background(), car.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAvailable)
}

func TestAdminCarForms(t *testing.T) {
	router, db := newTestServer(t)
	admin := &testClient{t: t, router: router}
	admin.register("admin@example.com", "Admin")

	w := admin.do(http.MethodPost, "/admin/cars/new", url.Values{
		"make":          {"Honda"},
		"model":         {"Civic"},
		"year":          {"2020"},
		"price_per_day": {"45.50"},
		"is_available":  {"true"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cars/1", w.Header().Get("Location"))

	car, err := db.GetCar(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "45.50", car.PricePerDay.String())

	w = admin.do(http.MethodPost, "/admin/cars/1/edit", url.Values{
		"make":          {"Honda"},
		"model":         {"Civic"},
		"year":          {"2020"},
		"price_per_day": {"48.00"},
		"is_available":  {"true"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	car, err = db.GetCar(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "48.00", car.PricePerDay.String())
}

func TestLoginLogout(t *testing.T) {
	router, _ := newTestServer(t)
	client := &testClient{t: t, router: router}
	client.register("bob@example.com", "Bob")

	w := client.do(http.MethodPost, "/logout", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = client.do(http.MethodGet, "/booking/my-bookings", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = client.do(http.MethodPost, "/login", url.Values{
		"email":    {"bob@example.com"},
		"password": {"secret-pass"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = client.do(http.MethodGet, "/booking/my-bookings", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := newTestServer(t)
	client := &testClient{t: t, router: router}
	client.register("bob@example.com", "Bob")
	client.do(http.MethodPost, "/logout", nil)

	w := client.do(http.MethodPost, "/login", url.Values{
		"email":    {"bob@example.com"},
		"password": {"wrong"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestBookingsExport(t *testing.T) {
	router, db := newTestServer(t)
	seedCar(t, db, true)
	admin := &testClient{t: t, router: router}
	admin.register("admin@example.com", "Admin")

	w := admin.do(http.MethodGet, "/booking/admin/bookings/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "bookings_export_")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestHealthz(t *testing.T) {
	router, _ := newTestServer(t)
	client := &testClient{t: t, router: router}

	w := client.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
