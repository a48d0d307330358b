package sessions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	// SessionKeyPrefix prefixes every session key in badger.
	SessionKeyPrefix = "session:"

	// CookieName is the name of the cookie carrying the signed session token.
	CookieName = "session"
)

var (
	ErrNotFound  = errors.New("session not found")
	ErrNoSession = errors.New("no session cookie")
)

// Store persists sessions in badger and issues signed cookies for them.
type Store struct {
	db     *badger.DB
	secret []byte
	ttl    time.Duration
	secure bool
}

// Open opens the badger directory at path. An empty path keeps everything in memory.
func Open(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return db, nil
}

// NewStore creates a Store. secret signs the session cookie.
func NewStore(db *badger.DB, secret []byte, ttl time.Duration) *Store {
	return &Store{db: db, secret: secret, ttl: ttl}
}

// SetSecure marks issued cookies as HTTPS-only.
func (s *Store) SetSecure(secure bool) {
	s.secure = secure
}

// New returns a fresh, unsaved session.
func (s *Store) New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}

func sessionKey(id string) []byte {
	return []byte(SessionKeyPrefix + id)
}

// Get loads a session by id.
func (s *Store) Get(id string) (*Session, error) {
	var sess Session
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &sess)
		})
	})
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// Save writes the session with the store's TTL.
func (s *Store) Save(sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(sessionKey(sess.ID), data).WithTTL(s.ttl))
	})
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(sessionKey(id))
	})
}

// Load resolves the session named by the request cookie. It returns
// ErrNoSession when there is no cookie, ErrInvalidToken when the signature
// does not verify and ErrNotFound when the session has expired or was removed.
func (s *Store) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoSession
	}
	id, err := parseToken(cookie.Value, s.secret)
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Write saves the session and sets the cookie naming it.
func (s *Store) Write(w http.ResponseWriter, sess *Session) error {
	if err := s.Save(sess); err != nil {
		return err
	}
	token, err := signToken(sess.ID, s.secret, s.ttl)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Destroy removes the session named by the request, if any, and expires the cookie.
func (s *Store) Destroy(w http.ResponseWriter, r *http.Request) error {
	var err error
	if cookie, cerr := r.Cookie(CookieName); cerr == nil {
		if id, perr := parseToken(cookie.Value, s.secret); perr == nil {
			err = s.Delete(id)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return err
}

// Clear drops every stored session.
func (s *Store) Clear() error {
	return s.db.DropPrefix([]byte(SessionKeyPrefix))
}

// Backup streams a full backup of the session store to w.
func (s *Store) Backup(w io.Writer) error {
	if _, err := s.db.Backup(w, 0); err != nil {
		return fmt.Errorf("failed to backup sessions: %w", err)
	}
	return nil
}

// Restore loads a backup produced by Backup.
func (s *Store) Restore(r io.Reader) error {
	if err := s.db.Load(r, 4); err != nil {
		return fmt.Errorf("failed to restore sessions: %w", err)
	}
	return nil
}
