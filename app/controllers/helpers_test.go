package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"cheeseblog/app/logging"
	"cheeseblog/app/middleware"
	"cheeseblog/app/models"
	"cheeseblog/app/repositories/mock"
	"cheeseblog/app/services"
	"cheeseblog/app/sessions"
	"cheeseblog/app/views"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	router   *mux.Router
	store    *sessions.Store
	auth     *services.AuthService
	posts    *services.PostService
	comments *services.CommentService
	postRepo *mock.PostRepository
	accounts *mock.AccountRepository
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	accountRepo := mock.NewAccountRepository()
	postRepo := mock.NewPostRepository()
	commentRepo := mock.NewCommentRepository()

	auth := services.NewAuthService(accountRepo)
	auth.SetHashCost(bcrypt.MinCost)
	postService := services.NewPostService(postRepo, commentRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)

	db, err := sessions.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	store := sessions.NewStore(db, []byte("test-secret"), time.Hour)

	templates, err := views.Load(views.Templates())
	require.NoError(t, err)

	logger := logging.Discard()
	isAdmin := AdminByID(1)
	rd := NewRenderer(templates, store, isAdmin, logger)
	accountController := NewAccountController(rd, auth)
	postController := NewPostController(rd, postService)
	commentController := NewCommentController(rd, postService, commentService)
	adminOnly := middleware.RequireAdmin(isAdmin)

	router := mux.NewRouter()
	router.Use(middleware.Session(store, auth, logger))
	router.HandleFunc("/", postController.Index).Methods("GET")
	router.HandleFunc("/about", postController.About).Methods("GET")
	router.HandleFunc("/post/{id:[0-9]+}", postController.Show).Methods("GET")
	router.HandleFunc("/post/{id:[0-9]+}", commentController.Create).Methods("POST")
	router.HandleFunc("/register", accountController.Register).Methods("GET", "POST")
	router.HandleFunc("/login", accountController.Login).Methods("GET", "POST")
	router.HandleFunc("/logout", accountController.Logout).Methods("GET")
	router.Handle("/new-post", adminOnly(http.HandlerFunc(postController.Create))).Methods("GET", "POST")
	router.Handle("/edit-post/{id:[0-9]+}", adminOnly(http.HandlerFunc(postController.Edit))).Methods("GET", "POST")
	router.Handle("/delete/{id:[0-9]+}", adminOnly(http.HandlerFunc(postController.Delete))).Methods("GET", "POST")

	return &testEnv{
		router:   router,
		store:    store,
		auth:     auth,
		posts:    postService,
		comments: commentService,
		postRepo: postRepo,
		accounts: accountRepo,
	}
}

// do sends a request carrying cookies; a non-nil form makes it a POST.
func (e *testEnv) do(method, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// register creates an account through the handler and returns its cookies.
func (e *testEnv) register(t *testing.T, email, name, password string) []*http.Cookie {
	t.Helper()
	w := e.do("POST", "/register", url.Values{"email": {email}, "name": {name}, "password": {password}}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func (e *testEnv) createPost(t *testing.T, title string) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:    title,
		Subtitle: "Sub",
		Body:     "<p>Body</p>",
		ImgURL:   "https://example.com/img.jpg",
	}
	require.NoError(t, e.posts.CreatePost(context.Background(), post, 1))
	return post
}

func postForm(title string) url.Values {
	return url.Values{
		"title":    {title},
		"subtitle": {"Sub"},
		"img_url":  {"https://example.com/img.jpg"},
		"body":     {"<p>Body</p>"},
	}
}
