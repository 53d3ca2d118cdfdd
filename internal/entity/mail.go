package entity

import (
	"database/sql"
	"time"
)

// MailRecord is an outbox row picked up by the external relay. The service
// never talks SMTP itself.
type MailRecord struct {
	Id        int          `db:"id"`
	Recipient string       `db:"recipient"`
	Subject   string       `db:"subject"`
	Body      string       `db:"body"`
	Sent      bool         `db:"sent"`
	CreatedAt time.Time    `db:"created_at"`
	SentAt    sql.NullTime `db:"sent_at"`
}
