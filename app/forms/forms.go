// Package forms binds and validates the four HTML forms the blog accepts.
package forms

import (
	"errors"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("form")
	})
}

// Errors maps a form field name to a user-facing message.
type Errors map[string]string

// Has reports whether field has an error.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get returns the message for field, or "".
func (e Errors) Get(field string) string {
	return e[field]
}

// RegisterForm is the account registration form.
type RegisterForm struct {
	Email    string `form:"email" validate:"required,email,max=250"`
	Name     string `form:"name" validate:"required,max=250"`
	Password string `form:"password" validate:"required"`
	Errors   Errors `form:"-" validate:"-"`
}

// LoginForm only checks presence; credentials are verified by the auth service.
type LoginForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
	Errors   Errors `form:"-" validate:"-"`
}

// PostForm is used for both authoring and editing a post.
type PostForm struct {
	Title    string `form:"title" validate:"required,max=250"`
	Subtitle string `form:"subtitle" validate:"required,max=250"`
	ImgURL   string `form:"img_url" validate:"required,url,max=250"`
	Body     string `form:"body" validate:"required"`
	Errors   Errors `form:"-" validate:"-"`
}

// CommentForm is the comment box under a post.
type CommentForm struct {
	Body   string `form:"body" validate:"required,max=1000"`
	Errors Errors `form:"-" validate:"-"`
}

func NewRegisterForm(v url.Values) *RegisterForm {
	return &RegisterForm{
		Email:    value(v, "email"),
		Name:     value(v, "name"),
		Password: v.Get("password"),
	}
}

func NewLoginForm(v url.Values) *LoginForm {
	return &LoginForm{
		Email:    value(v, "email"),
		Password: v.Get("password"),
	}
}

func NewPostForm(v url.Values) *PostForm {
	return &PostForm{
		Title:    value(v, "title"),
		Subtitle: value(v, "subtitle"),
		ImgURL:   value(v, "img_url"),
		Body:     value(v, "body"),
	}
}

func NewCommentForm(v url.Values) *CommentForm {
	return &CommentForm{Body: value(v, "body")}
}

// Validate fills f.Errors and reports whether the form is acceptable.
func (f *RegisterForm) Validate() bool {
	f.Errors = check(f)
	return len(f.Errors) == 0
}

func (f *LoginForm) Validate() bool {
	f.Errors = check(f)
	return len(f.Errors) == 0
}

func (f *PostForm) Validate() bool {
	f.Errors = check(f)
	return len(f.Errors) == 0
}

func (f *CommentForm) Validate() bool {
	f.Errors = check(f)
	return len(f.Errors) == 0
}

func value(v url.Values, key string) string {
	return strings.TrimSpace(v.Get(key))
}

func check(form any) Errors {
	errs := Errors{}
	err := validate.Struct(form)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["form"] = err.Error()
		return errs
	}
	for _, fe := range verrs {
		if _, seen := errs[fe.Field()]; seen {
			continue
		}
		errs[fe.Field()] = message(fe)
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "url":
		return "Invalid URL."
	case "max":
		return "Field must be at most " + fe.Param() + " characters long."
	default:
		return "Invalid value."
	}
}
