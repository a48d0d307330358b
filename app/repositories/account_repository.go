package repositories

import (
	"context"

	"cheeseblog/app/models"

	"github.com/jmoiron/sqlx"
)

// SQLiteAccountRepository implements AccountRepository using SQLite
type SQLiteAccountRepository struct {
	db *sqlx.DB
}

// NewSQLiteAccountRepository creates a new SQLiteAccountRepository
func NewSQLiteAccountRepository(db *sqlx.DB) *SQLiteAccountRepository {
	return &SQLiteAccountRepository{db: db}
}

// Create inserts a new account and assigns its ID. A taken email yields ErrDuplicate.
func (r *SQLiteAccountRepository) Create(ctx context.Context, account *models.Account) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (email, name, password) VALUES (?, ?, ?)`,
		account.Email, account.Name, account.Password)
	if err != nil {
		return translateError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return translateError(err)
	}
	account.ID = int(id)
	return nil
}

// GetByID retrieves an account by ID
func (r *SQLiteAccountRepository) GetByID(ctx context.Context, id int) (*models.Account, error) {
	var account models.Account
	err := r.db.GetContext(ctx, &account,
		`SELECT id, email, name, password FROM accounts WHERE id = ?`, id)
	if err != nil {
		return nil, translateError(err)
	}
	return &account, nil
}

// GetByEmail retrieves an account by its email address
func (r *SQLiteAccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := r.db.GetContext(ctx, &account,
		`SELECT id, email, name, password FROM accounts WHERE email = ?`, email)
	if err != nil {
		return nil, translateError(err)
	}
	return &account, nil
}
