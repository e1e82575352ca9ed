package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const blobsTable = "blobs"

type blobRepo struct {
	drv *entsql.Driver
}

func (r *blobRepo) Get(ctx context.Context, name string) ([]byte, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("value").
		From(entsql.Table(blobsTable)).
		Where(entsql.EQ("name", name)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query blob %q: %w", name, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query blob %q: %w", name, err)
		}
		return nil, ErrNotFound
	}
	var value []byte
	if err := rows.Scan(&value); err != nil {
		return nil, fmt.Errorf("scan blob %q: %w", name, err)
	}
	return value, nil
}

func (r *blobRepo) Put(ctx context.Context, name string, value []byte) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(blobsTable).
		Columns("name", "value", "updated_at").
		Values(name, value, time.Now().Unix()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("put blob %q: %w", name, err)
	}
	return nil
}

func (r *blobRepo) Delete(ctx context.Context, name string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(blobsTable).
		Where(entsql.EQ("name", name)).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete blob %q: %w", name, err)
	}
	return nil
}
