// Package pg connects to PostgreSQL through a pgx pool, applies goose
// migrations and classifies driver errors.
//
//	pool, err := pg.Connect(ctx, cfg.Postgres)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations.FS, cfg.Postgres, log); err != nil {
//		return err
//	}
//
// ConstraintTypeOf maps integrity violations (SQLSTATE class 23) onto
// apperr.ConstraintType so the HTTP layer can describe them without
// depending on driver types.
package pg
