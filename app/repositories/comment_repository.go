package repositories

import (
	"context"

	"cheeseblog/app/models"

	"github.com/jmoiron/sqlx"
)

const selectComments = `SELECT c.id, c.post_id, c.author_id, c.text,
       COALESCE(a.name, '') AS author_name, COALESCE(a.email, '') AS author_email
FROM comments c
LEFT JOIN accounts a ON a.id = c.author_id`

// SQLiteCommentRepository implements CommentRepository using SQLite
type SQLiteCommentRepository struct {
	db *sqlx.DB
}

// NewSQLiteCommentRepository creates a new SQLiteCommentRepository
func NewSQLiteCommentRepository(db *sqlx.DB) *SQLiteCommentRepository {
	return &SQLiteCommentRepository{db: db}
}

// Create creates a new comment
func (r *SQLiteCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (post_id, author_id, text) VALUES (?, ?, ?)`,
		comment.PostID, comment.AuthorID, comment.Text)
	if err != nil {
		return translateError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return translateError(err)
	}
	comment.ID = int(id)
	return nil
}

// ListByPost retrieves all comments for a post
func (r *SQLiteCommentRepository) ListByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	if err := r.db.SelectContext(ctx, &comments, selectComments+` WHERE c.post_id = ? ORDER BY c.id`, postID); err != nil {
		return nil, translateError(err)
	}
	return comments, nil
}

// DeleteByPost removes every comment attached to a post
func (r *SQLiteCommentRepository) DeleteByPost(ctx context.Context, postID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE post_id = ?`, postID)
	return translateError(err)
}
