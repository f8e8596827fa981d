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

	"innkeeper/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestRoom inserts an AVAILABLE room directly, bypassing the API.
func CreateTestRoom(t *testing.T, db DBLike, number, roomType string, rate int64, capacity int) uuid.UUID {
	t.Helper()

	roomID := uuid.New()
	now := time.Now().UTC()
	_, err := db.Exec(context.Background(), `
		INSERT INTO rooms (id, number, room_type, rate, capacity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 'AVAILABLE', $6, $6)`,
		roomID, number, roomType, rate, capacity, now)
	require.NoError(t, err)
	return roomID
}

// ReservationState reads the stored lifecycle state and version.
func ReservationState(t *testing.T, db DBLike, id uuid.UUID) (reservation.State, int64) {
	t.Helper()

	var (
		state   string
		version int64
	)
	err := db.QueryRow(context.Background(),
		"SELECT state, version FROM reservations WHERE id = $1", id).Scan(&state, &version)
	require.NoError(t, err)
	return reservation.State(state), version
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every table in the public schema.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'`)
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
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
