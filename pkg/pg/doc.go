// Package pg opens the pgx pool used by session.PostgresStore and applies its
// goose migrations.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//	if err := pg.Migrate(ctx, pool, session.Migrations, session.MigrationsDir, cfg, log); err != nil {
//		return err
//	}
//	store := session.NewPostgresStore(pool)
package pg
