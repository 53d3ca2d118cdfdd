package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelops/contact-insights/internal/entity"
	gerr "github.com/travelops/contact-insights/internal/errors"
)

// newTestDB connects to the database named by MYSQL_TEST_DSN and applies
// migrations. Tests depending on it are skipped when the variable is unset.
func newTestDB(t *testing.T) *MYSQLStore {
	t.Helper()
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN not set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	db, err := New(ctx, Config{DSN: dsn, Automigrate: true})
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func TestUsersRoundtrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	email := "store-test@travelops.de"
	id, err := db.Users().AddUser(ctx, email, "hash", entity.UserRoleCustomer)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = ExecNamed(ctx, db.DB(), "DELETE FROM user WHERE id = :id", map[string]any{"id": id})
	})

	u, err := db.Users().GetByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, id, u.Id)
	assert.Equal(t, entity.UserStatusPending, u.Status)
	assert.False(t, u.IsActive)

	_, err = db.Users().GetPermission(ctx, id)
	assert.ErrorIs(t, err, gerr.ErrNotFound)

	err = db.Users().Approve(ctx, id, &entity.Permission{
		UserId:       id,
		DateFilter:   "yesterday,last_week",
		Domains:      "bild",
		CanViewCalls: true,
	})
	require.NoError(t, err)

	u, err = db.Users().GetById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusApproved, u.Status)
	assert.True(t, u.IsActive)

	p, err := db.Users().GetPermission(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"yesterday", "last_week"}, p.AllowedFilters())
	assert.True(t, p.CanViewCalls)
	assert.False(t, p.CanViewBookings)

	// approving twice violates the unique permission row
	err = db.Users().Approve(ctx, id, &entity.Permission{UserId: id})
	require.Error(t, err)
	assert.True(t, db.IsErrUniqueViolation(err))
}

func TestFileHistoryPruning(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	old := time.Now().Add(-120 * 24 * time.Hour)
	oldId, err := db.Files().Add(ctx, &entity.FileProcessingRecord{
		FileName:    "queues-old.xlsx",
		SourceType:  "queue_statistics",
		RowCount:    10,
		Status:      "ok",
		ProcessedAt: old,
	})
	require.NoError(t, err)
	freshId, err := db.Files().Add(ctx, &entity.FileProcessingRecord{
		FileName:    "queues-fresh.xlsx",
		SourceType:  "queue_statistics",
		RowCount:    12,
		Status:      "ok",
		ProcessedAt: time.Now(),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = ExecNamed(ctx, db.DB(), "DELETE FROM file_processing_history WHERE id IN (:a, :b)",
			map[string]any{"a": oldId, "b": freshId})
	})

	require.NoError(t, db.Files().DeleteOlderThan(ctx, time.Now().Add(-90*24*time.Hour)))

	records, err := db.Files().List(ctx, 0)
	require.NoError(t, err)
	ids := make(map[int]bool, len(records))
	for _, r := range records {
		ids[r.Id] = true
	}
	assert.False(t, ids[oldId])
	assert.True(t, ids[freshId])
}

func TestOutboxRoundtrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, err := db.Outbox().Add(ctx, &entity.MailRecord{
		Recipient: "store-test@travelops.de",
		Subject:   "Your verification code",
		Body:      "Your verification code is 123456.",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = ExecNamed(ctx, db.DB(), "DELETE FROM mail_outbox WHERE id = :id", map[string]any{"id": id})
	})

	unsent, err := db.Outbox().ListUnsent(ctx)
	require.NoError(t, err)
	found := false
	for _, m := range unsent {
		if m.Id == id {
			found = true
		}
	}
	assert.True(t, found)

	require.NoError(t, db.Outbox().MarkSent(ctx, id))

	unsent, err = db.Outbox().ListUnsent(ctx)
	require.NoError(t, err)
	for _, m := range unsent {
		assert.NotEqual(t, id, m.Id)
	}
}
