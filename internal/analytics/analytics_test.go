package analytics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"

	"github.com/consultorvarela/portfolio/internal/db"
)

func newTracker(t *testing.T, now time.Time) *Tracker {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	tr, err := New(database, Options{Salt: "pepper"}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tr.now = func() time.Time { return now }
	return tr
}

func TestHashIP(t *testing.T) {
	tr := newTracker(t, time.Now())
	a := tr.HashIP("203.0.113.7")
	if len(a) != 16 {
		t.Fatalf("hash length = %d", len(a))
	}
	if a != tr.HashIP("203.0.113.7") {
		t.Error("hash not stable")
	}
	if a == tr.HashIP("203.0.113.8") {
		t.Error("different IPs share a hash")
	}

	other, err := New(tr.db, Options{Salt: "salt"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if other.HashIP("203.0.113.7") == a {
		t.Error("salt ignored")
	}
}

func TestRandomSalt(t *testing.T) {
	tr := newTracker(t, time.Now())
	a, err := New(tr.db, Options{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := New(tr.db, Options{}, nil)
	if a.salt == "" || a.salt == b.salt {
		t.Errorf("expected distinct random salts, got %q and %q", a.salt, b.salt)
	}
}

func TestStats(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	tr := newTracker(t, now)
	ctx := context.Background()

	record := func(at time.Time, ip, path string) {
		tr.now = func() time.Time { return at }
		if err := tr.Record(ctx, Visit{IP: ip, UserAgent: "test", Path: path}); err != nil {
			t.Fatal(err)
		}
	}
	record(now.Add(-1*time.Hour), "1.1.1.1", "/")
	record(now.Add(-2*time.Hour), "1.1.1.1", "/blog")
	record(now.Add(-3*24*time.Hour), "2.2.2.2", "/")
	record(now.Add(-30*24*time.Hour), "3.3.3.3", "/")
	tr.now = func() time.Time { return now }

	if err := tr.RecordContact(ctx, "c1", true, now); err != nil {
		t.Fatal(err)
	}
	if err := tr.RecordContact(ctx, "c2", false, now); err != nil {
		t.Fatal(err)
	}

	s, err := tr.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if s.TotalVisitors != 4 || s.UniqueVisitors != 3 {
		t.Errorf("total=%d unique=%d", s.TotalVisitors, s.UniqueVisitors)
	}
	if s.VisitorsToday != 2 || s.VisitorsThisWeek != 3 {
		t.Errorf("today=%d week=%d", s.VisitorsToday, s.VisitorsThisWeek)
	}
	if len(s.TopPaths) != 2 || s.TopPaths[0] != (PathStat{"/", 3}) {
		t.Errorf("top paths = %+v", s.TopPaths)
	}
	if len(s.RecentVisitors) != 4 || s.RecentVisitors[0].Path != "/" || !s.RecentVisitors[0].Timestamp.Equal(now.Add(-time.Hour)) {
		t.Errorf("recent = %+v", s.RecentVisitors)
	}
	if s.ContactSent != 1 || s.ContactFailed != 1 {
		t.Errorf("contact sent=%d failed=%d", s.ContactSent, s.ContactFailed)
	}
}

func TestCleanup(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	tr := newTracker(t, now.AddDate(-2, 0, 0))
	ctx := context.Background()

	if err := tr.Record(ctx, Visit{IP: "1.1.1.1", Path: "/"}); err != nil {
		t.Fatal(err)
	}
	tr.now = func() time.Time { return now }
	if err := tr.Record(ctx, Visit{IP: "1.1.1.1", Path: "/"}); err != nil {
		t.Fatal(err)
	}

	n, err := tr.Cleanup(ctx)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if n != 1 {
		t.Errorf("removed %d rows, want 1", n)
	}
}

func TestTracked(t *testing.T) {
	tests := []struct {
		path, dnt string
		want      bool
	}{
		{"/", "", true},
		{"/blog/x", "0", true},
		{"/", "1", false},
		{"/static/css/site.css", "", false},
		{"/admin/stats", "", false},
		{"/favicon.ico", "", false},
		{"/healthz", "", false},
	}
	for _, tt := range tests {
		if got := Tracked(tt.path, tt.dnt); got != tt.want {
			t.Errorf("Tracked(%q, %q) = %v", tt.path, tt.dnt, got)
		}
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tr := newTracker(t, time.Now())

	r := gin.New()
	r.Use(tr.Middleware())
	r.GET("/*any", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/*any", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(method, path, dnt string) {
		req := httptest.NewRequest(method, path, nil)
		if dnt != "" {
			req.Header.Set("DNT", dnt)
		}
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
	send("GET", "/", "")
	send("GET", "/blog", "")
	send("GET", "/", "1")
	send("GET", "/static/app.css", "")
	send("POST", "/contact", "")
	tr.Close()

	s, err := tr.Stats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if s.TotalVisitors != 2 {
		t.Errorf("tracked %d visits, want 2", s.TotalVisitors)
	}
}
