// Package sender provides an asynchronous outbound dispatcher for Telegram
// sends: handlers enqueue work and return immediately while a small worker
// pool performs API calls with bounded retries.
package sender

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"quizbot/core/logger"
	"quizbot/core/telegram/netutil"
)

var (
	// ErrQueueFull is returned by Enqueue when the outbound queue is saturated.
	ErrQueueFull = errors.New("sender: queue full")
	// ErrQueueClosed is returned by Enqueue after Close.
	ErrQueueClosed = errors.New("sender: queue closed")
)

var tokenRe = regexp.MustCompile(`bot\d+:[\w-]+`)

// Options tunes the dispatcher pool.
type Options struct {
	Workers    int
	QueueSize  int
	MaxRetries int
	RetryDelay time.Duration
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = 2
	}
	if o.QueueSize <= 0 {
		o.QueueSize = 128
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = 3
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = 500 * time.Millisecond
	}
	return o
}

// Task is a unit of outbound work. The context carries RID metadata for logs.
type Task struct {
	Ctx  context.Context
	Name string
	Do   func() error
}

// Dispatcher owns the queue and worker pool.
type Dispatcher struct {
	opts  Options
	queue chan Task

	closeOnce sync.Once
	closed    chan struct{}
	wg        sync.WaitGroup
}

// NewDispatcher starts the worker pool immediately.
func NewDispatcher(opts Options) *Dispatcher {
	opts = opts.withDefaults()
	d := &Dispatcher{
		opts:   opts,
		queue:  make(chan Task, opts.QueueSize),
		closed: make(chan struct{}),
	}
	for i := 0; i < opts.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// Enqueue hands a task to the pool without blocking.
func (d *Dispatcher) Enqueue(t Task) error {
	if t.Do == nil {
		return nil
	}
	if t.Ctx == nil {
		t.Ctx = context.Background()
	}
	select {
	case <-d.closed:
		return ErrQueueClosed
	default:
	}
	select {
	case d.queue <- t:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops intake and waits for in-flight tasks to drain.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.closed)
		close(d.queue)
	})
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for t := range d.queue {
		d.run(t)
	}
}

func (d *Dispatcher) run(t Task) {
	start := time.Now()
	var err error
	for attempt := 1; attempt <= d.opts.MaxRetries; attempt++ {
		err = t.Do()
		if err == nil {
			break
		}
		if attempt == d.opts.MaxRetries || !netutil.ShouldRetry(err) {
			break
		}
		logger.LogEvent(t.Ctx, logger.TG, slog.LevelWarn, "send.retry",
			slog.String("op", t.Name),
			slog.Int("attempts", attempt),
			slog.String("err", sanitizeErrorMessage(err)),
		)
		select {
		case <-d.closed:
		case <-time.After(d.opts.RetryDelay * time.Duration(attempt)):
		}
	}
	if err != nil {
		logger.LogEvent(t.Ctx, logger.TG, slog.LevelError, "send.fail",
			slog.String("op", t.Name),
			slog.Duration("duration", logger.Took(start)),
			slog.String("err", sanitizeErrorMessage(err)),
		)
		return
	}
	if logger.ShouldSampleDebug() {
		logger.LogEvent(t.Ctx, logger.TG, slog.LevelDebug, "send.ok",
			slog.String("op", t.Name),
			slog.Duration("duration", logger.Took(start)),
		)
	}
}

// sanitizeErrorMessage strips the bot token from API error strings.
func sanitizeErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	return tokenRe.ReplaceAllString(err.Error(), "bot<redacted>")
}
