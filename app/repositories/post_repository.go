package repositories

import (
	"context"

	"cheeseblog/app/models"

	"github.com/jmoiron/sqlx"
)

const selectPosts = `SELECT p.id, p.author_id, p.title, p.subtitle, p.date, p.body, p.img_url,
       COALESCE(a.name, '') AS author_name
FROM posts p
LEFT JOIN accounts a ON a.id = p.author_id`

// SQLitePostRepository implements PostRepository using SQLite
type SQLitePostRepository struct {
	db *sqlx.DB
}

// NewSQLitePostRepository creates a new SQLitePostRepository
func NewSQLitePostRepository(db *sqlx.DB) *SQLitePostRepository {
	return &SQLitePostRepository{db: db}
}

// Create creates a new post
func (r *SQLitePostRepository) Create(ctx context.Context, post *models.Post) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (author_id, title, subtitle, date, body, img_url) VALUES (?, ?, ?, ?, ?, ?)`,
		post.AuthorID, post.Title, post.Subtitle, post.Date, post.Body, post.ImgURL)
	if err != nil {
		return translateError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return translateError(err)
	}
	post.ID = int(id)
	return nil
}

// GetByID retrieves a post by ID
func (r *SQLitePostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	if err := r.db.GetContext(ctx, &post, selectPosts+` WHERE p.id = ?`, id); err != nil {
		return nil, translateError(err)
	}
	return &post, nil
}

// List retrieves every post in creation order
func (r *SQLitePostRepository) List(ctx context.Context) ([]*models.Post, error) {
	posts := []*models.Post{}
	if err := r.db.SelectContext(ctx, &posts, selectPosts+` ORDER BY p.id`); err != nil {
		return nil, translateError(err)
	}
	return posts, nil
}

// Update writes the editable fields of an existing post. Date and author are never touched.
func (r *SQLitePostRepository) Update(ctx context.Context, post *models.Post) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, subtitle = ?, img_url = ?, body = ? WHERE id = ?`,
		post.Title, post.Subtitle, post.ImgURL, post.Body, post.ID)
	if err != nil {
		return translateError(err)
	}
	return requireAffected(res)
}

// Delete deletes a post by ID
func (r *SQLitePostRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return translateError(err)
	}
	return requireAffected(res)
}
