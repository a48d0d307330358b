package routes

import (
	"html/template"
	"io/fs"
	"net/http"

	"cheeseblog/app/controllers"
	"cheeseblog/app/middleware"
	"cheeseblog/app/services"
	"cheeseblog/app/sessions"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Dependencies are the collaborators the router wires into controllers.
type Dependencies struct {
	Templates map[string]*template.Template
	Static    fs.FS
	Store     *sessions.Store
	Auth      *services.AuthService
	Posts     *services.PostService
	Comments  *services.CommentService
	AdminID   int
	Logger    logrus.FieldLogger

	// Optional.
	Metrics      *middleware.Metrics
	LoginLimiter *middleware.RateLimiter
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(deps Dependencies) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Recoverer(deps.Logger))
	router.Use(middleware.Logger(deps.Logger))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware)
	}
	router.Use(middleware.Session(deps.Store, deps.Auth, deps.Logger))

	isAdmin := controllers.AdminByID(deps.AdminID)
	renderer := controllers.NewRenderer(deps.Templates, deps.Store, isAdmin, deps.Logger)
	accountController := controllers.NewAccountController(renderer, deps.Auth)
	postController := controllers.NewPostController(renderer, deps.Posts)
	commentController := controllers.NewCommentController(renderer, deps.Posts, deps.Comments)

	limited := func(h http.HandlerFunc) http.Handler { return h }
	if deps.LoginLimiter != nil {
		limited = func(h http.HandlerFunc) http.Handler { return deps.LoginLimiter.Handler(h) }
	}
	adminOnly := func(h http.HandlerFunc) http.Handler { return middleware.RequireAdmin(isAdmin)(h) }

	// Serve static files
	if deps.Static != nil {
		router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(deps.Static))))
	}

	router.HandleFunc("/", postController.Index).Methods(http.MethodGet)
	router.HandleFunc("/about", postController.About).Methods(http.MethodGet)
	router.HandleFunc("/post/{id:[0-9]+}", postController.Show).Methods(http.MethodGet)
	router.HandleFunc("/post/{id:[0-9]+}", commentController.Create).Methods(http.MethodPost)

	router.Handle("/register", limited(accountController.Register)).Methods(http.MethodGet, http.MethodPost)
	router.Handle("/login", limited(accountController.Login)).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/logout", accountController.Logout).Methods(http.MethodGet)

	router.Handle("/new-post", adminOnly(postController.Create)).Methods(http.MethodGet, http.MethodPost)
	router.Handle("/edit-post/{id:[0-9]+}", adminOnly(postController.Edit)).Methods(http.MethodGet, http.MethodPost)
	router.Handle("/delete/{id:[0-9]+}", adminOnly(postController.Delete)).Methods(http.MethodGet, http.MethodPost)

	return router
}
