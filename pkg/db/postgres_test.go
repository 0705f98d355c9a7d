package db_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"evaluator/internal/storage"
	"evaluator/pkg/db"
)

func TestPostgres(t *testing.T) {
	t.Run("invalid url", func(t *testing.T) {
		_, err := db.New(context.Background(), db.Config{URL: "::not a url::"})
		require.Error(t, err)
	})

	t.Run("slot round trip", func(t *testing.T) {
		url := os.Getenv("POSTGRES_TEST_URL")
		if testing.Short() || url == "" {
			t.Skip("skipping postgres integration test")
		}

		ctx := context.Background()
		pool, err := db.New(ctx, db.Config{
			URL:            url,
			AutoMigrate:    true,
			MigrationsPath: "../../migrations",
		})
		require.NoError(t, err)
		defer pool.Close()

		slot := storage.NewPostgresSlot(pool, "db_test_slot")
		require.NoError(t, slot.Write(ctx, []byte(`[{"id":1}]`)))

		data, err := slot.Read(ctx)
		require.NoError(t, err)
		require.JSONEq(t, `[{"id":1}]`, string(data))
	})
}
