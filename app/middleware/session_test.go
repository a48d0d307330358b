package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cheeseblog/app/models"
	"cheeseblog/app/repositories"
	"cheeseblog/app/sessions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAccounts map[int]*models.Account

func (s stubAccounts) Account(_ context.Context, id int) (*models.Account, error) {
	if account, ok := s[id]; ok {
		return account, nil
	}
	return nil, repositories.ErrNotFound
}

func setupSessionStore(t *testing.T) *sessions.Store {
	t.Helper()
	db, err := sessions.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sessions.NewStore(db, []byte("secret"), time.Hour)
}

func cookieRequest(t *testing.T, store *sessions.Store, sess *sessions.Session) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, store.Write(rec, sess))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestSessionMiddleware(t *testing.T) {
	store := setupSessionStore(t)
	logger, _ := newBufferLogger()
	accounts := stubAccounts{1: {ID: 1, Name: "Admin", Email: "admin@x.io"}}

	var gotAccount *models.Account
	var gotSession *sessions.Session
	handler := Session(store, accounts, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccount = CurrentAccount(r.Context())
		gotSession = CurrentSession(r.Context())
	}))

	t.Run("anonymous", func(t *testing.T) {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Nil(t, gotAccount)
		require.NotNil(t, gotSession)
		assert.False(t, gotSession.Authenticated())
	})

	t.Run("logged in", func(t *testing.T) {
		sess := store.New()
		sess.AccountID = 1
		handler.ServeHTTP(httptest.NewRecorder(), cookieRequest(t, store, sess))
		require.NotNil(t, gotAccount)
		assert.Equal(t, "Admin", gotAccount.Name)
		assert.Equal(t, sess.ID, gotSession.ID)
	})

	t.Run("forged cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: sessions.CookieName, Value: "eyJhbGciOiJIUzI1NiJ9.e30.forged"})
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.Nil(t, gotAccount)
		assert.False(t, gotSession.Authenticated())
	})

	t.Run("unknown account", func(t *testing.T) {
		sess := store.New()
		sess.AccountID = 9
		handler.ServeHTTP(httptest.NewRecorder(), cookieRequest(t, store, sess))
		assert.Nil(t, gotAccount)
		assert.False(t, gotSession.Authenticated())
	})
}

func TestRequireAdmin(t *testing.T) {
	isAdmin := func(a *models.Account) bool { return a.ID == 1 }
	handler := RequireAdmin(isAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name     string
		account  *models.Account
		expected int
	}{
		{name: "anonymous", expected: http.StatusForbidden},
		{name: "regular account", account: &models.Account{ID: 2}, expected: http.StatusForbidden},
		{name: "admin", account: &models.Account{ID: 1}, expected: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/new-post", nil)
			if tt.account != nil {
				req = req.WithContext(WithAccount(req.Context(), tt.account))
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, tt.expected, w.Code)
		})
	}
}
