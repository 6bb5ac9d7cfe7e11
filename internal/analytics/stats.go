package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/consultorvarela/portfolio/internal/db"
)

type PathStat struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

type RecentVisit struct {
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type Stats struct {
	TotalVisitors    int64         `json:"total_visitors"`
	UniqueVisitors   int64         `json:"unique_visitors"`
	VisitorsToday    int64         `json:"visitors_today"`
	VisitorsThisWeek int64         `json:"visitors_this_week"`
	TopPaths         []PathStat    `json:"top_paths"`
	RecentVisitors   []RecentVisit `json:"recent_visitors"`
	ContactSent      int64         `json:"contact_sent"`
	ContactFailed    int64         `json:"contact_failed"`
}

const (
	topPathsLimit = 10
	recentLimit   = 20
)

// Stats summarizes recorded visits and contact submissions.
func (t *Tracker) Stats(ctx context.Context) (*Stats, error) {
	now := t.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	week := now.AddDate(0, 0, -7)

	s := &Stats{}
	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&s.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&s.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&s.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{db.FormatTime(today)}},
		{&s.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{db.FormatTime(week)}},
		{&s.ContactSent, `SELECT COUNT(*) FROM contact_submissions WHERE status = 'sent'`, nil},
		{&s.ContactFailed, `SELECT COUNT(*) FROM contact_submissions WHERE status = 'failed'`, nil},
	}
	for _, c := range counts {
		if err := t.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("loading stats: %w", err)
		}
	}

	rows, err := t.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS views
		FROM visitors
		GROUP BY path
		ORDER BY views DESC, path ASC
		LIMIT ?`, topPathsLimit)
	if err != nil {
		return nil, fmt.Errorf("loading top paths: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p PathStat
		if err := rows.Scan(&p.Path, &p.Views); err != nil {
			return nil, fmt.Errorf("scanning top paths: %w", err)
		}
		s.TopPaths = append(s.TopPaths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Release the connection before the next query.
	rows.Close()

	recent, err := t.db.QueryContext(ctx, `
		SELECT hashed_ip, user_agent, path, timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("loading recent visitors: %w", err)
	}
	defer recent.Close()
	for recent.Next() {
		var (
			v  RecentVisit
			ts string
		)
		if err := recent.Scan(&v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("scanning recent visitors: %w", err)
		}
		if v.Timestamp, err = db.ParseTime(ts); err != nil {
			return nil, fmt.Errorf("parsing visit time %q: %w", ts, err)
		}
		s.RecentVisitors = append(s.RecentVisitors, v)
	}
	return s, recent.Err()
}
