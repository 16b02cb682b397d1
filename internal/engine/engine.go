// Package engine formats batches of independent rules on a worker pool, for
// list views that show many rules at once.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gyaneshwarpardhi/automation/internal/automation"
	"github.com/gyaneshwarpardhi/automation/internal/metrics"
)

// Conf holds tunable concurrency settings.
type Conf struct {
	Workers    int
	QueueDepth int
	Timeout    time.Duration
}

// ItemResult is the outcome of formatting one rule of a batch.
type ItemResult struct {
	Index int                  `json:"index"`
	Rule  *automation.RuleView `json:"rule,omitempty"`
	Error string               `json:"error,omitempty"`
}

type formatWork struct {
	index   int
	rule    *automation.Rule
	editor  *automation.Editor
	resultC chan<- *ItemResult
}

// Batcher fans rules out over a worker pool. Each rule is handled by exactly
// one worker; rules must not be shared between items of a batch.
type Batcher struct {
	pool *workerPool[*formatWork]
	conf Conf
}

// New starts a Batcher. Workers stop when ctx is cancelled or Shutdown is called.
func New(ctx context.Context, conf Conf) *Batcher {
	if conf.Workers <= 0 {
		conf.Workers = 8
	}
	if conf.QueueDepth <= 0 {
		conf.QueueDepth = conf.Workers * 64
	}
	if conf.Timeout <= 0 {
		conf.Timeout = 5 * time.Second
	}
	b := &Batcher{conf: conf}
	b.pool = newWorkerPool[*formatWork](ctx, conf.Workers, conf.QueueDepth, func(_ context.Context, w *formatWork) {
		w.resultC <- format(w)
	})
	return b
}

// format runs one item. A panic is reported as the item's error so that the
// batch, and the worker, survive it.
func format(w *formatWork) (res *ItemResult) {
	res = &ItemResult{Index: w.index}
	defer func() {
		if p := recover(); p != nil {
			slog.Error("rule format panicked", "index", w.index, "panic", p)
			res.Rule = nil
			res.Error = fmt.Sprintf("internal error formatting rule: %v", p)
		}
	}()
	if w.rule == nil {
		res.Error = "rule is null"
		return res
	}
	view, err := w.editor.Format(w.rule)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Rule = view
	return res
}

// FormatAll formats rules with ed and returns one result per rule, in input
// order. Rules that do not fit in the queue are reported as failed items.
func (b *Batcher) FormatAll(ctx context.Context, ed *automation.Editor, rules []*automation.Rule) ([]*ItemResult, error) {
	results := make([]*ItemResult, len(rules))
	resultC := make(chan *ItemResult, len(rules))

	pending := 0
	for i, r := range rules {
		w := &formatWork{index: i, rule: r, editor: ed, resultC: resultC}
		if !b.pool.Submit(w) {
			results[i] = &ItemResult{Index: i, Error: fmt.Sprintf("format queue full (capacity %d)", b.conf.QueueDepth)}
			continue
		}
		pending++
	}
	metrics.BatchQueueUtilization.Set(b.QueueUtilization())

	timeout := time.NewTimer(b.conf.Timeout)
	defer timeout.Stop()
	for ; pending > 0; pending-- {
		select {
		case res := <-resultC:
			results[res.Index] = res
		case <-timeout.C:
			return nil, fmt.Errorf("batch format timeout after %v", b.conf.Timeout)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return results, nil
}

// QueueUtilization returns queue used / capacity (0–1).
func (b *Batcher) QueueUtilization() float64 {
	if b.pool.QueueCap() == 0 {
		return 0
	}
	return float64(b.pool.QueueLen()) / float64(b.pool.QueueCap())
}

// Shutdown drains the pool gracefully.
func (b *Batcher) Shutdown() {
	b.pool.Drain()
}
