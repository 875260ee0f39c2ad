package updater

import (
	"bytes"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestProgressWriter_ThrottlesAndFinishes(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	var reports []Progress

	pw := newProgressWriter(new(bytes.Buffer), 1000, time.Second, func(p Progress) {
		reports = append(reports, p)
	})
	pw.now = clock.now
	pw.started, pw.reported = clock.t, clock.t

	clock.advance(100 * time.Millisecond)
	pw.Write(make([]byte, 100))
	if len(reports) != 0 {
		t.Fatalf("reported %v before the interval elapsed", reports)
	}

	clock.advance(900 * time.Millisecond)
	pw.Write(make([]byte, 400))
	if len(reports) != 1 {
		t.Fatalf("got %d reports after interval, want 1", len(reports))
	}
	want := Progress{BytesPerSecond: 500, Percent: 50, Transferred: 500, Total: 1000}
	if reports[0] != want {
		t.Errorf("report = %+v, want %+v", reports[0], want)
	}

	clock.advance(time.Second)
	pw.Write(make([]byte, 500))
	pw.Finish()

	last := reports[len(reports)-1]
	if last.Transferred != 1000 || last.Percent != 100 {
		t.Errorf("final report = %+v, want complete transfer", last)
	}
}

func TestProgressWriter_UnknownTotal(t *testing.T) {
	var got Progress
	pw := newProgressWriter(new(bytes.Buffer), -1, time.Hour, func(p Progress) { got = p })

	pw.Write([]byte("abc"))
	pw.Finish()

	if got.Transferred != 3 || got.Percent != 0 || got.Total != -1 {
		t.Errorf("report = %+v, want 3 bytes with no percentage", got)
	}
}
