// Package mock provides in-memory repositories for tests.
package mock

import (
	"context"
	"sort"
	"sync"

	"cheeseblog/app/models"
	"cheeseblog/app/repositories"
)

type AccountRepository struct {
	accounts map[int]*models.Account
	nextID   int
	mutex    sync.RWMutex
}

type PostRepository struct {
	posts  map[int]*models.Post
	nextID int
	mutex  sync.RWMutex
}

type CommentRepository struct {
	comments map[int]*models.Comment
	nextID   int
	mutex    sync.RWMutex
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[int]*models.Account),
		nextID:   1,
	}
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[int]*models.Post),
		nextID: 1,
	}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[int]*models.Comment),
		nextID:   1,
	}
}

// AccountRepository implementation

func (m *AccountRepository) Create(_ context.Context, account *models.Account) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, existing := range m.accounts {
		if existing.Email == account.Email {
			return repositories.ErrDuplicate
		}
	}
	account.ID = m.nextID
	m.nextID++
	stored := *account
	m.accounts[account.ID] = &stored
	return nil
}

func (m *AccountRepository) GetByID(_ context.Context, id int) (*models.Account, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	account, exists := m.accounts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	found := *account
	return &found, nil
}

func (m *AccountRepository) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, account := range m.accounts {
		if account.Email == email {
			found := *account
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// Count reports how many accounts are stored.
func (m *AccountRepository) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.accounts)
}

// PostRepository implementation

func (m *PostRepository) Create(_ context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post.ID = m.nextID
	m.nextID++
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *PostRepository) GetByID(_ context.Context, id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	found := *post
	return &found, nil
}

func (m *PostRepository) List(_ context.Context) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := make([]*models.Post, 0, len(m.posts))
	for _, post := range m.posts {
		found := *post
		posts = append(posts, &found)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID < posts[j].ID
	})
	return posts, nil
}

// Update mirrors the SQL implementation: only the editable columns change.
func (m *PostRepository) Update(_ context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	existing, exists := m.posts[post.ID]
	if !exists {
		return repositories.ErrNotFound
	}
	existing.ApplyEdit(post)
	return nil
}

func (m *PostRepository) Delete(_ context.Context, id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

// CommentRepository implementation

func (m *CommentRepository) Create(_ context.Context, comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment.ID = m.nextID
	m.nextID++
	stored := *comment
	m.comments[comment.ID] = &stored
	return nil
}

func (m *CommentRepository) ListByPost(_ context.Context, postID int) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comments := []*models.Comment{}
	for _, comment := range m.comments {
		if comment.PostID == postID {
			found := *comment
			comments = append(comments, &found)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

func (m *CommentRepository) DeleteByPost(_ context.Context, postID int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for id, comment := range m.comments {
		if comment.PostID == postID {
			delete(m.comments, id)
		}
	}
	return nil
}
