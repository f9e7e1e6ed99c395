// Package jobs provides a minimal work-group abstraction for fanning out
// background tasks and waiting for them to drain.
package jobs

import (
	"golang.org/x/sync/errgroup"
)

// Context is a schedulable group of background tasks. Work scheduled through
// Run executes on its own goroutine, bounded by the worker limit when one is
// set. A Context must not be reused after Wait returns if more work will be
// scheduled concurrently with that Wait.
type Context struct {
	grp errgroup.Group
}

// NewContext returns a Context that runs at most workers tasks at once.
// workers <= 0 means unlimited.
func NewContext(workers int) *Context {
	c := &Context{}
	if workers > 0 {
		c.grp.SetLimit(workers)
	}
	return c
}

// Run schedules fn onto the group. It blocks only when the worker limit is
// saturated.
func (c *Context) Run(fn func()) {
	c.grp.Go(func() error {
		fn()
		return nil
	})
}

// Wait blocks until every task scheduled so far has finished.
func (c *Context) Wait() {
	_ = c.grp.Wait()
}
