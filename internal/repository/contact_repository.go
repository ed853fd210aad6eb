package repository

import (
	"context"

	"portfolio-api/internal/database"
	"portfolio-api/internal/domain/portfolio"
)

type ContactMessageInput struct {
	Name    string
	Email   string
	Message string
}

// ContactRepository is insert-only; stored messages are never read back over HTTP.
type ContactRepository interface {
	CreateContactMessage(ctx context.Context, in ContactMessageInput) (portfolio.ContactMessage, error)
}

type PostgresContactRepository struct {
	db database.Querier
}

func NewPostgresContactRepository(db database.Querier) *PostgresContactRepository {
	return &PostgresContactRepository{db: db}
}

func (r *PostgresContactRepository) CreateContactMessage(ctx context.Context, in ContactMessageInput) (portfolio.ContactMessage, error) {
	m := portfolio.ContactMessage{Name: in.Name, Email: in.Email, Message: in.Message}
	err := r.db.QueryRow(
		ctx,
		`INSERT INTO contact_messages (name, email, message) VALUES ($1, $2, $3) RETURNING id, created_at`,
		in.Name,
		in.Email,
		in.Message,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return portfolio.ContactMessage{}, err
	}
	return m, nil
}

// CountContactMessages backs the status command and integration tests.
func (r *PostgresContactRepository) CountContactMessages(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM contact_messages`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
