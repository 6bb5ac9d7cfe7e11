// Package analytics records privacy-conscious page views and contact form
// outcomes. Visitor IPs are only ever stored as salted hashes.
package analytics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/consultorvarela/portfolio/internal/db"
)

// DefaultRetentionMonths is how long visits are kept.
const DefaultRetentionMonths = 12

// skipPrefixes are never tracked.
var skipPrefixes = []string{"/static/", "/images/", "/admin/", "/favicon", "/healthz"}

type Options struct {
	// Salt for IP hashing. A random one is generated when empty, which
	// makes unique counts restart with the process.
	Salt            string
	RetentionMonths int
}

// Visit is one tracked page view.
type Visit struct {
	IP        string
	UserAgent string
	Path      string
}

type Tracker struct {
	db        *db.DB
	salt      string
	retention int
	log       *zap.Logger
	now       func() time.Time
	wg        sync.WaitGroup
}

func New(database *db.DB, opts Options, log *zap.Logger) (*Tracker, error) {
	if log == nil {
		log = zap.NewNop()
	}
	salt := opts.Salt
	if salt == "" {
		var err error
		if salt, err = randomSalt(); err != nil {
			return nil, err
		}
		log.Debug("Using random IP hashing salt")
	}
	retention := opts.RetentionMonths
	if retention <= 0 {
		retention = DefaultRetentionMonths
	}
	return &Tracker{db: database, salt: salt, retention: retention, log: log, now: time.Now}, nil
}

func randomSalt() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashIP returns a stable, truncated digest of ip for this tracker's salt.
func (t *Tracker) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + t.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// Record stores a page view.
func (t *Tracker) Record(ctx context.Context, v Visit) error {
	_, err := t.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, timestamp) VALUES (?, ?, ?, ?)`,
		t.HashIP(v.IP), v.UserAgent, v.Path, db.FormatTime(t.now()))
	if err != nil {
		return fmt.Errorf("recording visit: %w", err)
	}
	return nil
}

// RecordContact stores the outcome of a contact submission.
func (t *Tracker) RecordContact(ctx context.Context, id string, sent bool, at time.Time) error {
	status := "failed"
	if sent {
		status = "sent"
	}
	_, err := t.db.ExecContext(ctx,
		`INSERT INTO contact_submissions (id, status, timestamp) VALUES (?, ?, ?)`,
		id, status, db.FormatTime(at))
	if err != nil {
		return fmt.Errorf("recording contact %s: %w", id, err)
	}
	return nil
}

// Cleanup deletes visits older than the retention window and returns how
// many were removed.
func (t *Tracker) Cleanup(ctx context.Context) (int64, error) {
	cutoff := t.now().AddDate(0, -t.retention, 0)
	res, err := t.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, db.FormatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("cleaning up visits: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		t.log.Info("Removed expired visitor records", zap.Int64("rows", n), zap.Int("months", t.retention))
	}
	return n, nil
}

// Tracked reports whether a request path and DNT header should be recorded.
func Tracked(path, dnt string) bool {
	if dnt == "1" {
		return false
	}
	for _, p := range skipPrefixes {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	return true
}

// Middleware records GET page views in the background.
func (t *Tracker) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != "GET" || !Tracked(path, c.GetHeader("DNT")) {
			c.Next()
			return
		}

		v := Visit{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent"), Path: path}
		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			if err := t.Record(context.Background(), v); err != nil {
				t.log.Warn("Unable to record visit", zap.Error(err))
			}
		}()
		c.Next()
	}
}

// Close waits for background writes to finish.
func (t *Tracker) Close() error {
	t.wg.Wait()
	return nil
}
