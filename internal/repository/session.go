package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

type SessionRepository interface {
	Create(session *model.Session) error
	ByToken(token string) (*model.Session, error)
	Delete(token string) error
	DeleteByUser(userID, exceptToken string) (int64, error)
	DeleteExpired(now time.Time) (int64, error)
}

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.Session) error {
	query := `INSERT INTO sessions (token, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query, session.Token, session.UserID, session.ExpiresAt, session.CreatedAt)
	return err
}

// ByToken returns the stored session whether or not it has expired;
// expiry is decided by the caller.
func (r *sessionRepository) ByToken(token string) (*model.Session, error) {
	session := &model.Session{}
	query := `SELECT * FROM sessions WHERE token = $1`

	err := r.db.Get(session, query, token)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	return session, nil
}

func (r *sessionRepository) Delete(token string) error {
	query := `DELETE FROM sessions WHERE token = $1`

	_, err := r.db.Exec(query, token)
	return err
}

// DeleteByUser removes every session of the user except exceptToken.
// An empty exceptToken removes them all.
func (r *sessionRepository) DeleteByUser(userID, exceptToken string) (int64, error) {
	query := `DELETE FROM sessions WHERE user_id = $1 AND token <> $2`

	result, err := r.db.Exec(query, userID, exceptToken)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// DeleteExpired is an operator maintenance task; request handling evicts
// expired sessions lazily on lookup.
func (r *sessionRepository) DeleteExpired(now time.Time) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at <= $1`

	result, err := r.db.Exec(query, now)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
