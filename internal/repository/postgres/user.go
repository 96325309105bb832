package postgres

import (
	"database/sql"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new bot user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// IsAuthorized checks if the chat user has entered the bot password
func (r *UserRepo) IsAuthorized(userID int64) (bool, error) {
	var authorized bool
	query := `SELECT authorized FROM bot_users WHERE chat_user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&authorized)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return authorized, nil
}

// AuthorizeUser marks the chat user as authorized
func (r *UserRepo) AuthorizeUser(userID int64) error {
	query := `
		INSERT INTO bot_users (chat_user_id, authorized, authorized_at)
		VALUES ($1, TRUE, NOW())
		ON CONFLICT (chat_user_id)
		DO UPDATE SET authorized = TRUE, authorized_at = NOW()
	`
	_, err := r.db.Exec(query, userID)
	return err
}

// EnsureUserExists creates an unauthorized chat user if not exists
func (r *UserRepo) EnsureUserExists(userID int64) error {
	query := `
		INSERT INTO bot_users (chat_user_id, authorized)
		VALUES ($1, FALSE)
		ON CONFLICT (chat_user_id) DO NOTHING
	`
	_, err := r.db.Exec(query, userID)
	return err
}
