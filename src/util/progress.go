package util

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/docker/go-units"
	"github.com/schollz/progressbar/v3"
)

const (
	progressPrefixWidth = 52
	progressBarWidth    = 32
)

// ProgressLogger tracks and renders progress for row and byte counts against a
// byte target.
type ProgressLogger struct {
	targetBytes int64
	action      string
	interval    time.Duration
	rows        atomic.Int64
	bytes       atomic.Int64
	done        chan struct{}
	bar         *progressbar.ProgressBar
}

// NewProgressLogger creates and starts a progress logger. A non-positive target
// disables rendering; counters still work.
func NewProgressLogger(targetBytes int64, action string, interval time.Duration) *ProgressLogger {
	p := &ProgressLogger{
		targetBytes: targetBytes,
		action:      action,
		interval:    interval,
		done:        make(chan struct{}),
	}
	p.start()
	return p
}

// UpdateBytes increments the byte counter.
func (p *ProgressLogger) UpdateBytes(delta int64) {
	if delta == 0 {
		return
	}
	p.bytes.Add(delta)
}

// UpdateRows increments the row counter.
func (p *ProgressLogger) UpdateRows(delta int64) {
	if delta == 0 {
		return
	}
	p.rows.Add(delta)
}

// Snapshot returns the current row and byte counts.
func (p *ProgressLogger) Snapshot() (int64, int64) {
	return p.rows.Load(), p.bytes.Load()
}

// Finish stops the render goroutine and completes the bar.
func (p *ProgressLogger) Finish() {
	select {
	case <-p.done:
	default:
		close(p.done)
	}
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

func (p *ProgressLogger) start() {
	if p.targetBytes <= 0 {
		return
	}

	p.bar = NewByteProgressBar(p.targetBytes, p.action)

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		prevBytes := p.bytes.Load()
		prevRows := p.rows.Load()
		prevTime := time.Now()
		lastDesc := ""

		for {
			select {
			case <-p.done:
				return
			case <-ticker.C:
			}

			curBytes := p.bytes.Load()
			curRows := p.rows.Load()
			now := time.Now()
			elapsed := now.Sub(prevTime).Seconds()

			bytesPerSec := progressRate(curBytes-prevBytes, elapsed)
			rowsPerSec := progressRate(curRows-prevRows, elapsed)
			desc := progressDescription(p.action, curRows, bytesPerSec, rowsPerSec)
			if desc != lastDesc {
				p.bar.Describe(desc)
				lastDesc = desc
			}
			_ = p.bar.Set64(min(curBytes, p.targetBytes))

			prevBytes = curBytes
			prevRows = curRows
			prevTime = now

			if curBytes >= p.targetBytes {
				_ = p.bar.Finish()
				return
			}
		}
	}()
}

func progressRate(delta int64, elapsedSeconds float64) float64 {
	if elapsedSeconds <= 0 {
		return 0
	}
	return float64(delta) / elapsedSeconds
}

// NewByteProgressBar creates a themed progress bar for byte-targeted work.
func NewByteProgressBar(targetBytes int64, action string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		targetBytes,
		progressbar.OptionSetWriter(os.Stdout),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetDescription(progressDescription(action, 0, 0, 0)),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetWidth(progressBarWidth),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stdout)
		}),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[light_magenta]━",
			SaucerHead:    "[light_magenta]╸",
			SaucerPadding: "[dark_gray]━",
			BarStart:      "",
			BarEnd:        "[reset]",
		}),
	)
}

func progressDescription(action string, rows int64, bytesPerSec float64, rowsPerSec float64) string {
	prefix := fmt.Sprintf(
		"%s %d rows (%s/s, %.0f rows/s)",
		action,
		rows,
		units.BytesSize(bytesPerSec),
		rowsPerSec,
	)
	return padOrTrim(prefix, progressPrefixWidth) + " "
}

func padOrTrim(s string, width int) string {
	if width <= 0 {
		return s
	}
	if len(s) > width {
		if width <= 3 {
			return s[:width]
		}
		return s[:width-3] + "..."
	}
	if len(s) < width {
		return s + strings.Repeat(" ", width-len(s))
	}
	return s
}
