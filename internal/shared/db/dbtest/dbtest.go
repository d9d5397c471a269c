// Package dbtest starts a throwaway postgres for integration tests.
package dbtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cristianortiz/auctionMarket/internal/shared/db"
	"github.com/cristianortiz/auctionMarket/internal/shared/db/migrations"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const image = "postgres:16-alpine"

// NewPostgres returns a migrated pool on a fresh container. Skipped with -short.
func NewPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()
	ctr, err := postgres.Run(ctx, image,
		postgres.WithDatabase("market"),
		postgres.WithUsername("market"),
		postgres.WithPassword("market"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, migrations.RunMigrations(dsn))

	pool, err := db.NewPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func InsertUser(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	id := uuid.New()
	short := id.String()[:8]
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, nickname, email) VALUES ($1, $2, $3)`,
		id, "user-"+short, short+"@market.test")
	require.NoError(t, err)
	return id
}

func InsertProduct(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, category, status string, minPrice int64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO products (id, owner_id, name, description, category, min_price, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, ownerID, fmt.Sprintf("product %s", id.String()[:8]), "test product", category, minPrice, status)
	require.NoError(t, err)
	return id
}

// InsertAuction stores an auction. A zero endTime is stored as NULL.
func InsertAuction(t *testing.T, pool *pgxpool.Pool, productID uuid.UUID, status string, minPrice int64, endTime time.Time) uuid.UUID {
	t.Helper()
	id := uuid.New()
	var end *time.Time
	if !endTime.IsZero() {
		end = &endTime
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO auctions (id, product_id, min_price, end_time, status) VALUES ($1, $2, $3, $4, $5)`,
		id, productID, minPrice, end, status)
	require.NoError(t, err)
	return id
}
