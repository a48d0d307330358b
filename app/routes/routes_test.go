package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cheeseblog/app/logging"
	"cheeseblog/app/middleware"
	"cheeseblog/app/repositories"
	"cheeseblog/app/services"
	"cheeseblog/app/sessions"
	"cheeseblog/app/views"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	*httptest.Server
	metrics *middleware.Metrics
}

func setupTestServer(t *testing.T, limiter *middleware.RateLimiter) *testServer {
	t.Helper()
	ctx := context.Background()

	db, err := repositories.Open(filepath.Join(t.TempDir(), "blog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, repositories.Migrate(ctx, db.DB, goose.NopLogger()))

	sessionDB, err := sessions.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { sessionDB.Close() })

	templates, err := views.Load(views.Templates())
	require.NoError(t, err)

	accountRepo := repositories.NewSQLiteAccountRepository(db)
	postRepo := repositories.NewSQLitePostRepository(db)
	commentRepo := repositories.NewSQLiteCommentRepository(db)
	auth := services.NewAuthService(accountRepo)
	auth.SetHashCost(bcrypt.MinCost)

	metrics := middleware.NewMetrics()
	router := SetupRoutes(Dependencies{
		Templates:    templates,
		Static:       views.Static(),
		Store:        sessions.NewStore(sessionDB, []byte("test-secret"), time.Hour),
		Auth:         auth,
		Posts:        services.NewPostService(postRepo, commentRepo),
		Comments:     services.NewCommentService(commentRepo, postRepo),
		AdminID:      1,
		Logger:       logging.Discard(),
		Metrics:      metrics,
		LoginLimiter: limiter,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, metrics: metrics}
}

// newBrowser returns a client that keeps cookies and does not follow redirects.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

type response struct {
	status   int
	location string
	body     string
}

func get(t *testing.T, c *http.Client, srv *testServer, path string) response {
	t.Helper()
	resp, err := c.Get(srv.URL + path)
	require.NoError(t, err)
	return readResponse(t, resp)
}

func post(t *testing.T, c *http.Client, srv *testServer, path string, form url.Values) response {
	t.Helper()
	resp, err := c.PostForm(srv.URL+path, form)
	require.NoError(t, err)
	return readResponse(t, resp)
}

func readResponse(t *testing.T, resp *http.Response) response {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return response{status: resp.StatusCode, location: resp.Header.Get("Location"), body: string(body)}
}

func TestBlogScenario(t *testing.T) {
	srv := setupTestServer(t, nil)
	admin := newBrowser(t)
	reader := newBrowser(t)
	visitor := newBrowser(t)

	// The first account becomes the administrator.
	res := post(t, admin, srv, "/register", url.Values{"email": {"admin@x.io"}, "name": {"Admin"}, "password": {"pw"}})
	require.Equal(t, http.StatusFound, res.status)
	assert.Equal(t, "/", res.location)

	res = post(t, admin, srv, "/new-post", url.Values{
		"title":    {"First"},
		"subtitle": {"Sub"},
		"img_url":  {"https://example.com/a.jpg"},
		"body":     {"<p>Hello <b>world</b></p>"},
	})
	require.Equal(t, http.StatusFound, res.status)
	assert.Equal(t, "/", res.location)

	res = get(t, visitor, srv, "/")
	assert.Equal(t, http.StatusOK, res.status)
	assert.Contains(t, res.body, "First")
	assert.Contains(t, res.body, "Posted by Admin")

	res = post(t, reader, srv, "/register", url.Values{"email": {"reader@x.io"}, "name": {"Reader"}, "password": {"pw"}})
	require.Equal(t, http.StatusFound, res.status)

	res = post(t, reader, srv, "/post/1", url.Values{"body": {"Great read"}})
	require.Equal(t, http.StatusFound, res.status)
	assert.Equal(t, "/post/1", res.location)

	res = get(t, visitor, srv, "/post/1")
	assert.Equal(t, http.StatusOK, res.status)
	assert.Contains(t, res.body, "<b>world</b>")
	assert.Contains(t, res.body, "Great read")
	assert.Contains(t, res.body, "Reader")

	assert.Equal(t, http.StatusForbidden, get(t, reader, srv, "/delete/1").status)
	assert.Equal(t, http.StatusForbidden, get(t, visitor, srv, "/edit-post/1").status)

	res = post(t, visitor, srv, "/post/1", url.Values{"body": {"drive-by"}})
	assert.Equal(t, "/login", res.location)
	assert.Contains(t, get(t, visitor, srv, "/login").body, "Please login or register to comment!")

	res = get(t, admin, srv, "/delete/1")
	require.Equal(t, http.StatusFound, res.status)
	assert.Equal(t, "/", res.location)
	assert.Equal(t, http.StatusNotFound, get(t, visitor, srv, "/post/1").status)
	assert.NotContains(t, get(t, visitor, srv, "/").body, "First")

	// Logging out ends the admin's rights.
	res = get(t, admin, srv, "/logout")
	assert.Equal(t, "/", res.location)
	assert.Equal(t, http.StatusForbidden, get(t, admin, srv, "/new-post").status)

	// Logging back in restores them.
	res = post(t, admin, srv, "/login", url.Values{"email": {"admin@x.io"}, "password": {"pw"}})
	assert.Equal(t, "/", res.location)
	assert.Equal(t, http.StatusOK, get(t, admin, srv, "/new-post").status)
}

func TestStaticAndUnknownRoutes(t *testing.T) {
	srv := setupTestServer(t, nil)
	c := newBrowser(t)

	res := get(t, c, srv, "/static/css/styles.css")
	assert.Equal(t, http.StatusOK, res.status)
	assert.Contains(t, res.body, "body")

	assert.Equal(t, http.StatusNotFound, get(t, c, srv, "/nope").status)
	assert.Equal(t, http.StatusNotFound, get(t, c, srv, "/post/abc").status)
}

func TestForgedCookieIsAnonymous(t *testing.T) {
	srv := setupTestServer(t, nil)
	c := newBrowser(t)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	c.Jar.SetCookies(u, []*http.Cookie{{Name: sessions.CookieName, Value: "eyJhbGciOiJIUzI1NiJ9.eyJzaWQiOiJ4In0.bad", Path: "/"}})

	res := get(t, c, srv, "/")
	assert.Equal(t, http.StatusOK, res.status)
	assert.Contains(t, res.body, `href="/login"`)
	assert.Equal(t, http.StatusForbidden, get(t, c, srv, "/new-post").status)
}

func TestLoginRateLimit(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.001, 2, logging.Discard())
	srv := setupTestServer(t, limiter)
	c := newBrowser(t)

	form := url.Values{"email": {"nobody@x.io"}, "password": {"pw"}}
	assert.Equal(t, http.StatusFound, post(t, c, srv, "/login", form).status)
	assert.Equal(t, http.StatusFound, post(t, c, srv, "/login", form).status)
	assert.Equal(t, http.StatusTooManyRequests, post(t, c, srv, "/login", form).status)

	// Reading the form is not throttled.
	assert.Equal(t, http.StatusOK, get(t, c, srv, "/login").status)
}

func TestMetricsCountRoutes(t *testing.T) {
	srv := setupTestServer(t, nil)
	c := newBrowser(t)

	get(t, c, srv, "/about")
	get(t, c, srv, "/post/7")

	rec := httptest.NewRecorder()
	srv.metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()

	assert.True(t, strings.Contains(body, `path="/about",status="200"`))
	assert.True(t, strings.Contains(body, `path="/post/{id:[0-9]+}",status="404"`))
}
