package controllers

import (
	"errors"
	"net/http"

	"cheeseblog/app/forms"
	"cheeseblog/app/services"
)

// Flash messages shown on the login page.
const (
	FlashAlreadyRegistered = "You've already signed up with email. Please log in."
	FlashUnknownEmail      = "That email does not exist. Please try again."
	FlashWrongPassword     = "Wrong password. Please try again."
)

// AccountController handles registration, login and logout
type AccountController struct {
	*Renderer
	auth *services.AuthService
}

// NewAccountController creates a new AccountController
func NewAccountController(rd *Renderer, auth *services.AuthService) *AccountController {
	return &AccountController{Renderer: rd, auth: auth}
}

// Register shows the registration form and creates accounts
func (ac *AccountController) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ac.render(w, r, "register", &Page{Form: &forms.RegisterForm{}})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	form := forms.NewRegisterForm(r.PostForm)
	if !form.Validate() {
		ac.render(w, r, "register", &Page{Form: form})
		return
	}

	account, err := ac.auth.Register(r.Context(), form.Email, form.Name, form.Password)
	if errors.Is(err, services.ErrAlreadyRegistered) {
		ac.flashRedirect(w, r, FlashAlreadyRegistered, "/login")
		return
	}
	if err != nil {
		ac.serverError(w, r, err)
		return
	}

	if err := ac.logIn(w, r, account); err != nil {
		ac.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// Login shows the login form and authenticates accounts
func (ac *AccountController) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ac.render(w, r, "login", &Page{Form: &forms.LoginForm{}})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	form := forms.NewLoginForm(r.PostForm)
	if !form.Validate() {
		ac.render(w, r, "login", &Page{Form: form})
		return
	}

	account, err := ac.auth.Login(r.Context(), form.Email, form.Password)
	switch {
	case errors.Is(err, services.ErrUnknownEmail):
		ac.flashRedirect(w, r, FlashUnknownEmail, "/login")
		return
	case errors.Is(err, services.ErrWrongPassword):
		ac.flashRedirect(w, r, FlashWrongPassword, "/login")
		return
	case err != nil:
		ac.serverError(w, r, err)
		return
	}

	if err := ac.logIn(w, r, account); err != nil {
		ac.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout ends the session, if any
func (ac *AccountController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := ac.store.Destroy(w, r); err != nil {
		ac.logger.WithError(err).Warn("failed to destroy session")
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
