package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceSentinel/internal/model"
)

type fakeRunner struct {
	mu     sync.Mutex
	calls  int
	err    error
	latest *model.RunSummary
}

func (f *fakeRunner) Run(ctx context.Context) (*model.RunSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	f.latest = &model.RunSummary{
		RunID:        "run-1",
		FinishedAt:   time.Now(),
		ProfitBefore: 10,
		ProfitAfter:  12,
		Recommendations: []model.Recommendation{
			{ProductName: "Wood Sunglasses", CurrentPrice: 24.99, RecommendedPrice: 29.49},
		},
	}
	return f.latest, nil
}

func (f *fakeRunner) Latest() *model.RunSummary {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest
}

func (f *fakeRunner) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type captureNotifier struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (c *captureNotifier) Send(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, text)
	return c.err
}

func (c *captureNotifier) SendWithRetry(_ context.Context, text string, _ int) error {
	return c.Send(text)
}

func (c *captureNotifier) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.sent...)
}

func TestHandleCommand(t *testing.T) {
	runner := &fakeRunner{}
	n := &captureNotifier{}
	s := NewScheduler(context.Background(), runner, n)

	assert.Equal(t, "No pricing run has completed yet.", s.HandleCommand("/last"))
	assert.Contains(t, s.HandleCommand("hello"), "/run")

	assert.Empty(t, s.HandleCommand("/run"))
	assert.Equal(t, 1, runner.Calls())
	require.Len(t, n.Messages(), 1)
	assert.Contains(t, n.Messages()[0], "Wood Sunglasses: €24.99 → €29.49")

	last := s.HandleCommand("/last")
	assert.Contains(t, last, "Products priced: 1")
	assert.Contains(t, last, "(+€2.00)")
}

func TestRunNow_Failure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("read overview: no such file")}
	n := &captureNotifier{}
	s := NewScheduler(context.Background(), runner, n)

	_, err := s.RunNow()
	require.Error(t, err)
	require.Len(t, n.Messages(), 1)
	assert.True(t, strings.HasPrefix(n.Messages()[0], "❌"))
}

func TestRunNow_NotifyErrorIsNotFatal(t *testing.T) {
	s := NewScheduler(context.Background(), &fakeRunner{}, &captureNotifier{err: errors.New("telegram down")})
	summary, err := s.RunNow()
	require.NoError(t, err)
	assert.Equal(t, "run-1", summary.RunID)
}

func TestRegister(t *testing.T) {
	s := NewScheduler(context.Background(), &fakeRunner{}, nil)
	assert.Error(t, s.Register("not a cron"))
	// Five fields are rejected because the parser expects seconds.
	assert.Error(t, s.Register("0 6 * * 1"))
	require.NoError(t, s.Register("0 0 6 * * 1"))
	assert.Len(t, s.Cron.Entries(), 1)
}

func TestScheduledRun(t *testing.T) {
	runner := &fakeRunner{}
	s := NewScheduler(context.Background(), runner, &captureNotifier{})
	require.NoError(t, s.Register("* * * * * *"))
	s.Start()
	assert.Eventually(t, func() bool { return runner.Calls() > 0 }, 3*time.Second, 20*time.Millisecond)
	s.Stop()
}
