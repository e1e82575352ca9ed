package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const daySessionsTable = "day_sessions"

type daySessionRepo struct {
	drv *entsql.Driver
}

func (r *daySessionRepo) AppendDaySession(ctx context.Context, data DaySessionData) error {
	at := data.At
	if at.IsZero() {
		at = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(daySessionsTable).
		Columns("session_id", "topic_id", "day", "action", "score", "total", "missed", "at_unix").
		Values(data.SessionID, data.TopicID, data.Day, data.Action, data.Score, data.Total, data.Missed, at.Unix()).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save day session: %w", err)
	}
	return nil
}

func (r *daySessionRepo) RecentDaySessions(ctx context.Context, limit int) ([]DaySessionData, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("session_id", "topic_id", "day", "action", "score", "total", "missed", "at_unix").
		From(entsql.Table(daySessionsTable)).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query day sessions: %w", err)
	}
	defer rows.Close()

	var out []DaySessionData
	for rows.Next() {
		var (
			d  DaySessionData
			at int64
		)
		if err := rows.Scan(&d.SessionID, &d.TopicID, &d.Day, &d.Action, &d.Score, &d.Total, &d.Missed, &at); err != nil {
			return nil, fmt.Errorf("scan day session: %w", err)
		}
		d.At = time.Unix(at, 0)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate day sessions: %w", err)
	}
	return out, nil
}
