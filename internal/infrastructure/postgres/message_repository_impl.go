package postgres

import (
	"context"

	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
	"github.com/oksasatya/portfolio-backend/internal/domain/repository"
	"github.com/oksasatya/portfolio-backend/internal/infrastructure/mapper"
)

type MessageRepository struct {
	db Client
}

func NewMessageRepository(db Client) *MessageRepository {
	return &MessageRepository{db: db}
}

// Send stores a visitor's message; id, timestamp and read flag come from storage.
func (r *MessageRepository) Send(ctx context.Context, msg entity.ContactMessage) error {
	_, err := r.db.Insert(ctx, TableMessages, mapper.ContactMessageToRecord(msg))
	return err
}

// List returns messages newest first.
func (r *MessageRepository) List(ctx context.Context) ([]entity.Message, error) {
	raws, err := r.db.Select(ctx, From(TableMessages).OrderDesc("created_at"))
	if err != nil {
		return nil, err
	}
	recs, err := decodeAll[mapper.MessageRecord](raws)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Message, 0, len(recs))
	for _, rec := range recs {
		out = append(out, mapper.MessageToDomain(rec))
	}
	return out, nil
}

// MarkRead reports false when no message has the id.
func (r *MessageRepository) MarkRead(ctx context.Context, id string, read bool) (bool, error) {
	n, err := r.db.Update(ctx, From(TableMessages).Eq("id", id), Values{"read": read})
	return n > 0, err
}

func (r *MessageRepository) Delete(ctx context.Context, id string) (bool, error) {
	n, err := r.db.Delete(ctx, From(TableMessages).Eq("id", id))
	return n > 0, err
}

var _ repository.MessageRepository = (*MessageRepository)(nil)
