package store

import (
	"context"
	"fmt"
	"time"

	"github.com/travelops/contact-insights/internal/dependency"
	"github.com/travelops/contact-insights/internal/entity"
)

type filesStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Files() dependency.Files {
	return &filesStore{MYSQLStore: ms}
}

func (s *filesStore) List(ctx context.Context, limit int) ([]entity.FileProcessingRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, file_name, source_type, row_count, status, error_text, processed_at
		FROM file_processing_history
		ORDER BY processed_at DESC
		LIMIT :lim`
	rows, err := QueryListNamed[entity.FileProcessingRecord](ctx, s.DB(), query, map[string]any{"lim": limit})
	if err != nil {
		return nil, fmt.Errorf("list file history: %w", err)
	}
	return rows, nil
}

func (s *filesStore) Add(ctx context.Context, rec *entity.FileProcessingRecord) (int, error) {
	query := `
		INSERT INTO file_processing_history (file_name, source_type, row_count, status, error_text, processed_at)
		VALUES (:fileName, :sourceType, :rowCount, :status, :errorText, :processedAt)`
	id, err := ExecNamedLastId(ctx, s.DB(), query, map[string]any{
		"fileName":    rec.FileName,
		"sourceType":  rec.SourceType,
		"rowCount":    rec.RowCount,
		"status":      rec.Status,
		"errorText":   rec.ErrorText,
		"processedAt": rec.ProcessedAt,
	})
	if err != nil {
		return 0, fmt.Errorf("add file history: %w", err)
	}
	return id, nil
}

// DeleteOlderThan prunes history rows past the retention window; expired
// blacklisted tokens ride along since both are cleaned by the same worker.
func (s *filesStore) DeleteOlderThan(ctx context.Context, olderThan time.Time) error {
	query := `DELETE FROM file_processing_history WHERE processed_at < :olderThan`
	if err := ExecNamed(ctx, s.DB(), query, map[string]any{"olderThan": olderThan}); err != nil {
		return fmt.Errorf("prune file history: %w", err)
	}
	query = `DELETE FROM blacklisted_token WHERE expires_at < NOW()`
	if err := ExecNamed(ctx, s.DB(), query, map[string]any{}); err != nil {
		return fmt.Errorf("prune blacklisted tokens: %w", err)
	}
	return nil
}
