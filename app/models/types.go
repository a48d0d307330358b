package models

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// DateLayout is the layout a post's publication date is stored in.
const DateLayout = "January 02,2006"

// Account represents a registered user.
type Account struct {
	ID       int    `db:"id" validate:"gte=0"`
	Email    string `db:"email" validate:"required,email,max=250"`
	Name     string `db:"name" validate:"required,max=250"`
	Password string `db:"password" validate:"required,max=250"`
}

// Post represents a blog entry owned by one account.
type Post struct {
	ID         int        `db:"id" validate:"gte=0"`
	AuthorID   int        `db:"author_id" validate:"required,gt=0"`
	Title      string     `db:"title" validate:"required,max=250"`
	Subtitle   string     `db:"subtitle" validate:"required,max=250"`
	Date       string     `db:"date" validate:"required,max=250"`
	Body       string     `db:"body" validate:"required"`
	ImgURL     string     `db:"img_url" validate:"required,max=250"`
	AuthorName string     `db:"author_name" validate:"-"`
	Comments   []*Comment `db:"-" validate:"-"`
}

// Comment represents a reader comment on a post.
type Comment struct {
	ID          int    `db:"id" validate:"gte=0"`
	PostID      int    `db:"post_id" validate:"required,gt=0"`
	AuthorID    int    `db:"author_id" validate:"required,gt=0"`
	Text        string `db:"text" validate:"required,max=1000"`
	AuthorName  string `db:"author_name" validate:"-"`
	AuthorEmail string `db:"author_email" validate:"-"`
	Post        *Post  `db:"-" validate:"-"`
}
