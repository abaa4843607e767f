// Package pg bootstraps the PostgreSQL layer of the storefront: a pgx/v5
// connection pool with startup retries, goose migrations and a readiness
// probe.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations.FS, cfg, log); err != nil {
//	    return err
//	}
//
// Migrations are read from an fs.FS, normally the embedded db/migrations
// directory, so the binary carries its own schema.
//
// Errors are sentinel values joined with the underlying driver error; use
// errors.Is to match them. IsDuplicateKeyError and IsForeignKeyViolationError
// classify *pgconn.PgError codes.
package pg
