package pg_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/pagebridge/pkg/pg"
)

func TestConnect_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := pg.Connect(context.Background(), pg.Config{})
	assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)

	_, err = pg.Connect(context.Background(), pg.Config{ConnectionString: "postgres://%zz"})
	assert.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
}

func TestMigrate_RequiresFilesystem(t *testing.T) {
	t.Parallel()

	err := pg.Migrate(context.Background(), nil, nil, "migrations", pg.Config{}, slog.New(slog.DiscardHandler))
	assert.ErrorIs(t, err, pg.ErrMigrationsNotProvided)
}
