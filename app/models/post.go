package models

import (
	"errors"
	"time"
)

// FormatDate renders t the way post dates are stored.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if _, err := time.Parse(DateLayout, p.Date); err != nil {
		return errors.New("date is not in the publication format")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.Date == "" {
		p.Date = FormatDate(time.Now())
	}
}

// AddComment adds a comment to the post
func (p *Post) AddComment(comment *Comment) error {
	if comment == nil {
		return errors.New("comment cannot be nil")
	}

	comment.PostID = p.ID
	comment.Post = p
	p.Comments = append(p.Comments, comment)
	return nil
}

// ApplyEdit copies the editable fields of src onto p. Date and author stay put.
func (p *Post) ApplyEdit(src *Post) {
	p.Title = src.Title
	p.Subtitle = src.Subtitle
	p.ImgURL = src.ImgURL
	p.Body = src.Body
}
