package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/avolkov/libris/internal/auth"
	"github.com/avolkov/libris/internal/config"
	"github.com/avolkov/libris/internal/database"
	"github.com/avolkov/libris/internal/database/books"
	"github.com/avolkov/libris/internal/database/reservations"
	"github.com/avolkov/libris/internal/database/users"
	"github.com/avolkov/libris/internal/entities"
)

// writeTestTemplates lays out the minimal template set the router and
// auth controller expect on disk.
func writeTestTemplates(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	pages := map[string]string{
		"index.html":     `{{range .Books}}<div class="book">{{.Name}}</div>{{end}}`,
		"add.html":       `{{range .Books}}<div class="book">{{.Name}}</div>{{end}}`,
		"remove.html":    `{{range .Books}}<div class="book">{{.Name}}</div>{{end}}`,
		"dashboard.html": `<p>{{len .Reservations}} reservations</p>{{range .Reservations}}<div class="loan">{{.Book.Name}}</div>{{end}}`,
	}
	for name, body := range pages {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	require.NoError(t, os.Mkdir(filepath.Join(dir, "auth"), 0o755))
	login := `<form method="post" action="/login"><p class="error">{{.Error}}</p></form>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth", "login.html"), []byte(login), 0o644))

	return dir
}

func setupAppRouter(t *testing.T) (*gin.Engine, *database.Database, func()) {
	return setupAppRouterWithCSRF(t, nil)
}

func setupAppRouterWithCSRF(t *testing.T, csrfSecret []byte) (*gin.Engine, *database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_router_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	authCfg := config.Auth{
		BcryptCost:      bcrypt.MinCost,
		SessionLifetime: time.Hour,
		SecureCookies:   false,
	}

	usersRepo := users.NewRepository(db.DB)
	authService := auth.NewService(usersRepo, authCfg)

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	sessionManager, err := auth.NewSessionManager(sqlDB, authCfg)
	require.NoError(t, err)

	router := NewRouter(RouterConfig{
		Catalog:        books.NewRepository(db.DB),
		Reservations:   reservations.NewRepository(db.DB, 14*24*time.Hour),
		Database:       db,
		AuthService:    authService,
		SessionManager: sessionManager,
		AuthMiddleware: auth.NewMiddleware(sessionManager),
		TemplatesPath:  writeTestTemplates(t),
		Version:        "test",
		CSRFSecret:     csrfSecret,
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return router, db, cleanup
}

// cookieJar keeps session cookies across requests in a test flow.
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{cookies: make(map[string]*http.Cookie)}
}

func (j *cookieJar) update(w *httptest.ResponseRecorder) {
	resp := http.Response{Header: w.Header()}
	for _, c := range resp.Cookies() {
		j.cookies[c.Name] = c
	}
}

func (j *cookieJar) do(router *gin.Engine, method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req, _ = http.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	for _, c := range j.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	j.update(w)
	return w
}

func TestRouter_DashboardRequiresSession(t *testing.T) {
	router, _, cleanup := setupAppRouter(t)
	defer cleanup()

	jar := newCookieJar()
	w := jar.do(router, "GET", "/dashboard", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/loginpage", w.Header().Get("Location"))
}

func TestRouter_LoginWithWrongPassword(t *testing.T) {
	router, _, cleanup := setupAppRouter(t)
	defer cleanup()

	jar := newCookieJar()
	w := jar.do(router, "POST", "/register", url.Values{
		"username": {"alice"},
		"password": {"correct"},
	})
	require.Equal(t, http.StatusFound, w.Code)

	// A fresh, anonymous client with bad credentials
	stranger := newCookieJar()
	w = stranger.do(router, "POST", "/login", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password")

	w = stranger.do(router, "GET", "/dashboard", nil)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestRouter_BorrowReturnFlow(t *testing.T) {
	router, db, cleanup := setupAppRouter(t)
	defer cleanup()

	jar := newCookieJar()

	// Register and land on the dashboard
	w := jar.do(router, "POST", "/register", url.Values{
		"username": {"bob"},
		"password": {"pw123"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/dashboard", w.Header().Get("Location"))

	w = jar.do(router, "GET", "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0 reservations")

	// Add a book through the open admin page
	w = jar.do(router, "POST", "/add", url.Values{
		"isbn":     {"123"},
		"bookname": {"Dune"},
		"author":   {"Herbert"},
	})
	require.Equal(t, http.StatusFound, w.Code)

	var book entities.Book
	require.NoError(t, db.DB.Where("name = ?", "Dune").First(&book).Error)

	// Borrow it
	w = jar.do(router, "GET", "/borrow/"+itoa(book.ID), nil)
	require.Equal(t, http.StatusFound, w.Code)

	w = jar.do(router, "GET", "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1 reservations")
	assert.Contains(t, w.Body.String(), "Dune")

	// Due date is two weeks out
	var reservation entities.Reservation
	require.NoError(t, db.DB.Where("book_id = ?", book.ID).First(&reservation).Error)
	assert.WithinDuration(t, time.Now().Add(14*24*time.Hour), reservation.BorrowedTo, time.Minute)

	// Return it
	w = jar.do(router, "GET", "/return/"+itoa(reservation.ID), nil)
	require.Equal(t, http.StatusFound, w.Code)

	w = jar.do(router, "GET", "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0 reservations")

	var updated entities.Book
	require.NoError(t, db.DB.First(&updated, book.ID).Error)
	assert.False(t, updated.Reserved)
}

func TestRouter_Logout(t *testing.T) {
	router, _, cleanup := setupAppRouter(t)
	defer cleanup()

	jar := newCookieJar()
	w := jar.do(router, "POST", "/register", url.Values{
		"username": {"alice"},
		"password": {"secret"},
	})
	require.Equal(t, http.StatusFound, w.Code)

	w = jar.do(router, "GET", "/logout", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/loginpage", w.Header().Get("Location"))

	w = jar.do(router, "GET", "/dashboard", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/loginpage", w.Header().Get("Location"))
}

func TestRouter_RegisterDuplicateUsername(t *testing.T) {
	router, db, cleanup := setupAppRouter(t)
	defer cleanup()

	jar := newCookieJar()
	w := jar.do(router, "POST", "/register", url.Values{
		"username": {"alice"},
		"password": {"first"},
	})
	require.Equal(t, http.StatusFound, w.Code)

	other := newCookieJar()
	w = other.do(router, "POST", "/register", url.Values{
		"username": {"alice"},
		"password": {"second"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Username is already taken")

	var count int64
	db.DB.Model(&entities.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRouter_SearchPage(t *testing.T) {
	router, _, cleanup := setupAppRouter(t)
	defer cleanup()

	jar := newCookieJar()
	w := jar.do(router, "GET", "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = jar.do(router, "POST", "/", url.Values{"searchbook": {"anything"}})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ForgedPostDoesNotMutate(t *testing.T) {
	secret := []byte("test-secret-key-32-bytes-long!!!")
	router, db, cleanup := setupAppRouterWithCSRF(t, secret)
	defer cleanup()

	// Cross-site form post: no CSRF cookie, no token field
	jar := newCookieJar()
	w := jar.do(router, "POST", "/add", url.Values{
		"isbn":     {"666"},
		"bookname": {"Forged"},
		"author":   {"Mallory"},
	})

	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	db.DB.Model(&entities.Book{}).Count(&count)
	assert.Equal(t, int64(0), count, "rejected submission must not create a book")
}

func TestRouter_Health(t *testing.T) {
	router, _, cleanup := setupAppRouter(t)
	defer cleanup()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status": "healthy"`)
}
