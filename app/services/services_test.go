package services

import (
	"cheeseblog/app/models"
	"cheeseblog/app/repositories/mock"

	"golang.org/x/crypto/bcrypt"
)

type testRepos struct {
	accounts *mock.AccountRepository
	posts    *mock.PostRepository
	comments *mock.CommentRepository
}

func newTestRepos() testRepos {
	return testRepos{
		accounts: mock.NewAccountRepository(),
		posts:    mock.NewPostRepository(),
		comments: mock.NewCommentRepository(),
	}
}

func newTestAuth(repos testRepos) *AuthService {
	auth := NewAuthService(repos.accounts)
	auth.SetHashCost(bcrypt.MinCost)
	return auth
}

func newTestPost() *models.Post {
	return &models.Post{
		Title:    "Test Post",
		Subtitle: "A subtitle",
		Body:     "<p>Hello</p>",
		ImgURL:   "https://example.com/a.jpg",
	}
}
