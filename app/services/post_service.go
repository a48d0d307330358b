package services

import (
	"context"
	"errors"
	"fmt"

	"cheeseblog/app/models"
	"cheeseblog/app/repositories"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// CreatePost stamps today's date and the author, then stores the post
func (s *PostService) CreatePost(ctx context.Context, post *models.Post, authorID int) error {
	post.ID = 0
	post.AuthorID = authorID
	post.Date = ""
	post.BeforeCreate()

	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}
	return s.postRepo.Create(ctx, post)
}

// GetPost retrieves a post by ID with its comments
func (s *PostService) GetPost(ctx context.Context, id int) (*models.Post, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	for _, comment := range comments {
		if err := post.AddComment(comment); err != nil {
			return nil, err
		}
	}
	return post, nil
}

// ListPosts retrieves every post in id order
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// UpdatePost applies the editable fields of edit to the stored post.
// Date and author are preserved.
func (s *PostService) UpdatePost(ctx context.Context, id int, edit *models.Post) (*models.Post, error) {
	existing, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.ApplyEdit(edit)
	if err := existing.Validate(); err != nil {
		return nil, fmt.Errorf("invalid post: %w", err)
	}

	if err := s.postRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeletePost deletes a post and all its comments
func (s *PostService) DeletePost(ctx context.Context, id int) error {
	if _, err := s.findPost(ctx, id); err != nil {
		return err
	}

	if err := s.commentRepo.DeleteByPost(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}

	err := s.postRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrPostNotFound
	}
	return err
}

func (s *PostService) findPost(ctx context.Context, id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}
