//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestAgent(t *testing.T, db DBLike, name, phone string) uuid.UUID {
	t.Helper()

	agentID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO agents (id, name, phone) VALUES ($1, $2, $3)",
		agentID, name, phone)
	require.NoError(t, err)

	return agentID
}

func CreateTestProperty(t *testing.T, db DBLike, agentID uuid.UUID, title string) uuid.UUID {
	t.Helper()

	propertyID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO properties (id, agent_id, title, location) VALUES ($1, $2, $3, 'Dubai Marina')",
		propertyID, agentID, title)
	require.NoError(t, err)

	return propertyID
}

func CreateTestConversation(t *testing.T, db DBLike, agentID uuid.UUID, customerPhone string, customerName *string) uuid.UUID {
	t.Helper()

	conversationID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO conversations (id, agent_id, customer_phone, customer_name) VALUES ($1, $2, $3, $4)",
		conversationID, agentID, customerPhone, customerName)
	require.NoError(t, err)

	return conversationID
}

func CountReminderJobs(t *testing.T, db DBLike, viewingID uuid.UUID, status string) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM reminder_jobs WHERE viewing_id = $1 AND status = $2",
		viewingID, status).Scan(&count)
	require.NoError(t, err)
	return count
}

// StrandReminderProcessing flips a viewing's jobs to processing with a stale
// update stamp, as if a worker died after claiming them.
func StrandReminderProcessing(t *testing.T, db DBLike, viewingID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE reminder_jobs SET status = 'processing', fire_at = now() - interval '1 second', updated_at = now() - interval '10 minutes' WHERE viewing_id = $1",
		viewingID)
	require.NoError(t, err)
}

// ForceReminderDue rewinds the fire_at of every queued job for a viewing so
// the polling worker picks it up on the next tick.
func ForceReminderDue(t *testing.T, db DBLike, viewingID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE reminder_jobs SET fire_at = now() - interval '1 second' WHERE viewing_id = $1 AND status = 'queued'",
		viewingID)
	require.NoError(t, err)
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables so each subtest starts from an empty schema
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
