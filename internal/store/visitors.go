package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Visitor is one tracked page view.
type Visitor struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// PathStat counts views of one path.
type PathStat struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

// Stats summarizes traffic and contact activity for the admin dashboard.
type Stats struct {
	TotalVisitors       int64      `json:"total_visitors"`
	UniqueVisitors      int64      `json:"unique_visitors"`
	VisitorsToday       int64      `json:"visitors_today"`
	VisitorsThisWeek    int64      `json:"visitors_this_week"`
	TotalMessages       int64      `json:"total_messages"`
	UndeliveredMessages int64      `json:"undelivered_messages"`
	TopPaths            []PathStat `json:"top_paths"`
	RecentVisitors      []Visitor  `json:"recent_visitors"`
}

// RecordVisit stores one page view.
func (d *DB) RecordVisit(ctx context.Context, hashedIP, userAgent, path string) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, hashedIP, userAgent, path, d.stamp(d.now()))
	return errors.Wrap(err, "record visit")
}

// RecentVisitors returns the newest views first.
func (d *DB) RecentVisitors(ctx context.Context, limit int) ([]Visitor, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query visitors")
	}
	defer rows.Close()

	var visitors []Visitor
	for rows.Next() {
		var v Visitor
		var ts string
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, errors.Wrap(err, "scan visitor")
		}
		v.Timestamp = parseStamp(ts)
		visitors = append(visitors, v)
	}
	return visitors, errors.Wrap(rows.Err(), "iterate visitors")
}

// CleanupVisitors deletes views older than maxAge and reports how many went.
func (d *DB) CleanupVisitors(ctx context.Context, maxAge time.Duration) (int64, error) {
	res, err := d.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, d.stamp(d.now().Add(-maxAge)))
	if err != nil {
		return 0, errors.Wrap(err, "cleanup visitors")
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Stats collects the dashboard numbers.
func (d *DB) Stats(ctx context.Context) (*Stats, error) {
	now := d.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	stats := &Stats{}

	counts := []struct {
		query string
		args  []any
		dest  *int64
	}{
		{`SELECT COUNT(*) FROM visitors`, nil, &stats.TotalVisitors},
		{`SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil, &stats.UniqueVisitors},
		{`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{d.stamp(startOfDay)}, &stats.VisitorsToday},
		{`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{d.stamp(now.Add(-7 * 24 * time.Hour))}, &stats.VisitorsThisWeek},
		{`SELECT COUNT(*) FROM messages`, nil, &stats.TotalMessages},
		{`SELECT COUNT(*) FROM messages WHERE delivered = 0`, nil, &stats.UndeliveredMessages},
	}
	for _, c := range counts {
		if err := d.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return nil, errors.Wrap(err, "count stats")
		}
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT COALESCE(path, ''), COUNT(*) AS views
		FROM visitors
		GROUP BY path
		ORDER BY views DESC, path ASC
		LIMIT 10
	`)
	if err != nil {
		return nil, errors.Wrap(err, "query top paths")
	}
	defer rows.Close()
	for rows.Next() {
		var p PathStat
		if err := rows.Scan(&p.Path, &p.Views); err != nil {
			return nil, errors.Wrap(err, "scan path stat")
		}
		stats.TopPaths = append(stats.TopPaths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate path stats")
	}

	stats.RecentVisitors, err = d.RecentVisitors(ctx, 50)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
