package updater

import (
	"io"
	"time"
)

// progressWriter counts bytes written and reports throttled Progress.
type progressWriter struct {
	writer   io.Writer
	total    int64
	written  int64
	interval time.Duration
	started  time.Time
	reported time.Time
	onUpdate func(Progress)
	now      func() time.Time
}

func newProgressWriter(w io.Writer, total int64, interval time.Duration, onUpdate func(Progress)) *progressWriter {
	now := time.Now
	start := now()
	return &progressWriter{
		writer:   w,
		total:    total,
		interval: interval,
		started:  start,
		reported: start,
		onUpdate: onUpdate,
		now:      now,
	}
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.writer.Write(p)
	pw.written += int64(n)

	if t := pw.now(); t.Sub(pw.reported) >= pw.interval {
		pw.reported = t
		pw.report(t)
	}
	return n, err
}

// Finish reports the final state.
func (pw *progressWriter) Finish() {
	pw.report(pw.now())
}

func (pw *progressWriter) report(t time.Time) {
	if pw.onUpdate == nil {
		return
	}
	pw.onUpdate(pw.snapshot(t))
}

func (pw *progressWriter) snapshot(t time.Time) Progress {
	p := Progress{Transferred: pw.written, Total: pw.total}

	if elapsed := t.Sub(pw.started).Seconds(); elapsed > 0 {
		p.BytesPerSecond = int64(float64(pw.written) / elapsed)
	}
	if pw.total > 0 {
		p.Percent = float64(pw.written) / float64(pw.total) * 100
	}
	return p
}
