package entity

import "time"

// FileProcessingRecord is one ingestion run of an exported report file.
type FileProcessingRecord struct {
	Id          int       `db:"id"`
	FileName    string    `db:"file_name"`
	SourceType  string    `db:"source_type"`
	RowCount    int       `db:"row_count"`
	Status      string    `db:"status"`
	ErrorText   string    `db:"error_text"`
	ProcessedAt time.Time `db:"processed_at"`
}
