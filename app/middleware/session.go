package middleware

import (
	"context"
	"errors"
	"net/http"

	"cheeseblog/app/models"
	"cheeseblog/app/sessions"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type contextKey int

const (
	sessionKey contextKey = iota
	accountKey
)

// AccountLoader resolves the account bound to a session.
type AccountLoader interface {
	Account(ctx context.Context, id int) (*models.Account, error)
}

// Session resolves the request's session and principal once and stores both
// in the request context. A missing, forged or expired cookie yields a fresh
// anonymous session that is only persisted if a handler writes it.
func Session(store *sessions.Store, accounts AccountLoader, logger logrus.FieldLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := store.Load(r)
			if err != nil {
				if !errors.Is(err, sessions.ErrNoSession) &&
					!errors.Is(err, sessions.ErrNotFound) &&
					!errors.Is(err, sessions.ErrInvalidToken) {
					logger.WithError(err).Warn("failed to load session")
				}
				sess = store.New()
			}

			ctx := WithSession(r.Context(), sess)
			if sess.Authenticated() {
				account, err := accounts.Account(r.Context(), sess.AccountID)
				if err != nil {
					logger.WithError(err).WithField("account_id", sess.AccountID).Warn("session names unknown account")
					sess.AccountID = 0
				} else {
					ctx = WithAccount(ctx, account)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentSession returns the session resolved for the request, or nil outside
// the Session middleware.
func CurrentSession(ctx context.Context) *sessions.Session {
	sess, _ := ctx.Value(sessionKey).(*sessions.Session)
	return sess
}

// CurrentAccount returns the logged-in account, or nil for anonymous visitors.
func CurrentAccount(ctx context.Context) *models.Account {
	account, _ := ctx.Value(accountKey).(*models.Account)
	return account
}

// WithAccount returns a copy of ctx carrying account as the principal.
func WithAccount(ctx context.Context, account *models.Account) context.Context {
	return context.WithValue(ctx, accountKey, account)
}

// WithSession returns a copy of ctx carrying sess.
func WithSession(ctx context.Context, sess *sessions.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// RequireAdmin rejects requests whose principal does not satisfy isAdmin with
// 403 Forbidden. Anonymous visitors are rejected too.
func RequireAdmin(isAdmin func(*models.Account) bool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account := CurrentAccount(r.Context())
			if account == nil || !isAdmin(account) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
