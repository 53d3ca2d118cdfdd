package store

import (
	"context"
	"fmt"

	"github.com/travelops/contact-insights/internal/dependency"
	"github.com/travelops/contact-insights/internal/entity"
)

type outboxStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Outbox() dependency.Outbox {
	return &outboxStore{MYSQLStore: ms}
}

func (s *outboxStore) Add(ctx context.Context, m *entity.MailRecord) (int, error) {
	query := `
		INSERT INTO mail_outbox (recipient, subject, body, sent)
		VALUES (:recipient, :subject, :body, 0)`
	id, err := ExecNamedLastId(ctx, s.DB(), query, map[string]any{
		"recipient": m.Recipient,
		"subject":   m.Subject,
		"body":      m.Body,
	})
	if err != nil {
		return 0, fmt.Errorf("add outbox mail: %w", err)
	}
	return id, nil
}

func (s *outboxStore) ListUnsent(ctx context.Context) ([]entity.MailRecord, error) {
	query := `
		SELECT id, recipient, subject, body, sent, created_at, sent_at
		FROM mail_outbox
		WHERE sent = 0
		ORDER BY created_at`
	rows, err := QueryListNamed[entity.MailRecord](ctx, s.DB(), query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("list unsent mail: %w", err)
	}
	return rows, nil
}

func (s *outboxStore) MarkSent(ctx context.Context, id int) error {
	query := `UPDATE mail_outbox SET sent = 1, sent_at = NOW() WHERE id = :id`
	if err := ExecNamed(ctx, s.DB(), query, map[string]any{"id": id}); err != nil {
		return fmt.Errorf("mark mail sent: %w", err)
	}
	return nil
}
