package scraping

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"bookhub/internal/events"
	"bookhub/internal/scraper"
	"bookhub/pkg/datastore"
)

var ErrRunInProgress = errors.New("scraping already in progress")

// CooldownError reports that the last completed run is too recent.
type CooldownError struct {
	LastExecution time.Time
	NextAllowed   time.Time
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("scraping was already executed recently; next run allowed at %s",
		e.NextAllowed.Format(time.RFC3339Nano))
}

// RetryAfter is the remaining wait relative to now, rounded up to whole seconds.
func (e *CooldownError) RetryAfter(now time.Time) time.Duration {
	d := e.NextAllowed.Sub(now)
	if d <= 0 {
		return 0
	}
	return (d + time.Second - 1).Truncate(time.Second)
}

type Runner interface {
	Run(ctx context.Context) (*scraper.Result, error)
}

type Saver interface {
	Save(ctx context.Context, res *scraper.Result) error
}

type Publisher interface {
	Publish(ev events.ScrapeEvent)
}

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
)

// Summary describes a completed run.
type Summary struct {
	TriggeredBy     string
	TotalBooks      int
	TotalCategories int
	StartedAt       time.Time
	CompletedAt     time.Time
}

func (s Summary) Duration() time.Duration { return s.CompletedAt.Sub(s.StartedAt) }

// Status is a point-in-time view of the coordinator.
type Status struct {
	State         State      `json:"state"`
	LastExecution *time.Time `json:"last_execution"`
	NextAllowed   *time.Time `json:"next_allowed_execution"`
}

// Coordinator gates scrape runs behind a cooldown measured from the books
// file's modification time and allows at most one run at a time.
type Coordinator struct {
	Runner    Runner
	Saver     Saver
	Publisher Publisher
	BooksPath string
	Cooldown  time.Duration

	now func() time.Time

	mu      sync.Mutex
	running bool
}

func NewCoordinator(runner Runner, saver Saver, booksPath string, cooldown time.Duration) *Coordinator {
	return &Coordinator{
		Runner:    runner,
		Saver:     saver,
		BooksPath: booksPath,
		Cooldown:  cooldown,
		now:       time.Now,
	}
}

func (c *Coordinator) Now() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

type outcome struct {
	summary *Summary
	err     error
}

// Trigger starts a run on its own goroutine and waits for it. If ctx ends
// first Trigger returns ctx.Err() while the run carries on to completion.
func (c *Coordinator) Trigger(ctx context.Context, initiator string) (*Summary, error) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return nil, ErrRunInProgress
	}
	if err := c.checkCooldown(); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.running = true
	c.mu.Unlock()

	slog.InfoContext(ctx, "scraping triggered", "by", initiator)

	done := make(chan outcome, 1)
	go c.run(context.WithoutCancel(ctx), initiator, done)

	select {
	case out := <-done:
		return out.summary, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Coordinator) run(ctx context.Context, initiator string, done chan<- outcome) {
	started := c.Now()
	var out outcome

	defer func() {
		if r := recover(); r != nil {
			out = outcome{err: fmt.Errorf("scraping run panicked: %v", r)}
		}

		c.mu.Lock()
		c.running = false
		c.mu.Unlock()

		if out.err != nil {
			slog.ErrorContext(ctx, "scraping failed", "by", initiator, "err", out.err)
			c.publish(events.ScrapeEvent{Type: events.ScrapeFailed, TriggeredBy: initiator, Error: out.err.Error(), At: c.Now()})
		} else {
			s := out.summary
			slog.InfoContext(ctx, "scraping completed", "by", initiator,
				"books", s.TotalBooks, "categories", s.TotalCategories, "elapsed", s.Duration())
			c.publish(events.ScrapeEvent{Type: events.ScrapeCompleted, TriggeredBy: initiator,
				TotalBooks: s.TotalBooks, TotalCategories: s.TotalCategories, At: s.CompletedAt})
		}
		done <- out
	}()

	c.publish(events.ScrapeEvent{Type: events.ScrapeStarted, TriggeredBy: initiator, At: started})

	res, err := c.Runner.Run(ctx)
	if err != nil {
		out.err = fmt.Errorf("scrape: %w", err)
		return
	}
	if err := c.Saver.Save(ctx, res); err != nil {
		out.err = fmt.Errorf("persist: %w", err)
		return
	}

	out.summary = &Summary{
		TriggeredBy:     initiator,
		TotalBooks:      len(res.Books),
		TotalCategories: len(res.Categories),
		StartedAt:       started,
		CompletedAt:     c.Now(),
	}
}

func (c *Coordinator) publish(ev events.ScrapeEvent) {
	if c.Publisher != nil {
		c.Publisher.Publish(ev)
	}
}

// checkCooldown must be called with mu held.
func (c *Coordinator) checkCooldown() error {
	last, ok, err := datastore.ModTime(c.BooksPath)
	if err != nil {
		return fmt.Errorf("read last execution: %w", err)
	}
	if !ok {
		return nil
	}
	next := last.Add(c.Cooldown)
	if c.Now().Before(next) {
		return &CooldownError{LastExecution: last, NextAllowed: next}
	}
	return nil
}

func (c *Coordinator) Status() (Status, error) {
	c.mu.Lock()
	st := Status{State: StateIdle}
	if c.running {
		st.State = StateRunning
	}
	c.mu.Unlock()

	last, ok, err := datastore.ModTime(c.BooksPath)
	if err != nil {
		return Status{}, fmt.Errorf("read last execution: %w", err)
	}
	if ok {
		next := last.Add(c.Cooldown)
		st.LastExecution = &last
		st.NextAllowed = &next
	}
	return st, nil
}
