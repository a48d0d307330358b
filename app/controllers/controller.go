package controllers

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"cheeseblog/app/middleware"
	"cheeseblog/app/models"
	"cheeseblog/app/services"
	"cheeseblog/app/sessions"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Page is the view-model handed to every template.
type Page struct {
	User    *models.Account
	IsAdmin bool
	Flashes []string

	Posts  []*models.Post
	Post   *models.Post
	Form   any
	Edit   bool
	Action string
}

// Renderer carries what every controller needs to answer a request:
// templates, the session store and the admin check.
type Renderer struct {
	templates map[string]*template.Template
	store     *sessions.Store
	isAdmin   func(*models.Account) bool
	logger    logrus.FieldLogger
}

// NewRenderer creates a Renderer.
func NewRenderer(templates map[string]*template.Template, store *sessions.Store, isAdmin func(*models.Account) bool, logger logrus.FieldLogger) *Renderer {
	return &Renderer{
		templates: templates,
		store:     store,
		isAdmin:   isAdmin,
		logger:    logger,
	}
}

// AdminByID returns an admin check matching a single account id.
func AdminByID(id int) func(*models.Account) bool {
	return func(account *models.Account) bool {
		return account != nil && account.ID == id
	}
}

// render executes the named page. Pending flashes are consumed and the
// session is written back before anything reaches the client.
func (rd *Renderer) render(w http.ResponseWriter, r *http.Request, name string, page *Page) {
	tmpl, ok := rd.templates[name]
	if !ok {
		rd.serverError(w, r, errors.New("template not found: "+name))
		return
	}

	page.User = middleware.CurrentAccount(r.Context())
	page.IsAdmin = page.User != nil && rd.isAdmin(page.User)

	sess := middleware.CurrentSession(r.Context())
	if sess != nil {
		page.Flashes = sess.PopFlashes()
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		rd.serverError(w, r, err)
		return
	}

	if len(page.Flashes) > 0 {
		if err := rd.store.Write(w, sess); err != nil {
			rd.serverError(w, r, err)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// flashRedirect queues msg for the next page and redirects to target.
func (rd *Renderer) flashRedirect(w http.ResponseWriter, r *http.Request, msg, target string) {
	sess := middleware.CurrentSession(r.Context())
	if sess == nil {
		sess = rd.store.New()
	}
	sess.AddFlash(msg)
	if err := rd.store.Write(w, sess); err != nil {
		rd.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// logIn binds account to a fresh session, discarding the previous one.
func (rd *Renderer) logIn(w http.ResponseWriter, r *http.Request, account *models.Account) error {
	if old := middleware.CurrentSession(r.Context()); old != nil {
		if err := rd.store.Delete(old.ID); err != nil {
			rd.logger.WithError(err).Warn("failed to drop previous session")
		}
	}
	sess := rd.store.New()
	sess.AccountID = account.ID
	return rd.store.Write(w, sess)
}

func (rd *Renderer) serverError(w http.ResponseWriter, r *http.Request, err error) {
	rd.logger.WithError(err).WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Error("request failed")
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// postError maps a service error to a response.
func (rd *Renderer) postError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrPostNotFound) {
		http.NotFound(w, r)
		return
	}
	rd.serverError(w, r, err)
}

// postID reads the {id} route variable. Routes constrain it to digits.
func postID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	return id, err == nil
}
