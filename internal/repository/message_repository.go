package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ouvidoria-ativa/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	ListByManifestation(ctx context.Context, manifestationID uuid.UUID) ([]domain.Message, error)
}

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (id, manifestation_id, author_id, author_name, type, content, "read")
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		message.ID, message.ManifestationID, message.AuthorID,
		message.AuthorName, message.Type, message.Content, message.Read,
	).Scan(&message.CreatedAt)
}

// ListByManifestation returns the full thread in creation order. Role-based
// visibility is applied by the service so one cache entry can serve both
// viewer roles.
func (r *messageRepository) ListByManifestation(ctx context.Context, manifestationID uuid.UUID) ([]domain.Message, error) {
	var messages []domain.Message
	query := `
		SELECT id, manifestation_id, author_id, author_name, type, content, "read", created_at
		FROM messages
		WHERE manifestation_id = $1
		ORDER BY created_at ASC, id ASC`

	err := r.db.SelectContext(ctx, &messages, query, manifestationID)
	return messages, err
}
