package state

import (
	"time"
)

func (e *Env) repeatedTask(fun func() error, delay time.Duration) {
	defer e.tasks.Done()
	ticker := time.NewTicker(delay)
	defer ticker.Stop()
	for {
		select {
		case <-e.Context.Done():
			return
		case <-ticker.C:
			err := fun()
			if err != nil {
				e.Log.Error("error occurred during repeated task", "error", err)
			}
		}
	}
}

// RepeatTask runs fun on its own goroutine every delay until the context is cancelled. Runs are
// fixed-rate, a slow run does not push back the next one.
func (e *Env) RepeatTask(fun func() error, delay time.Duration) {
	e.tasks.Add(1)
	go e.repeatedTask(fun, delay)
}

// WaitTasks blocks until every repeated task has observed cancellation
func (e *Env) WaitTasks() {
	e.tasks.Wait()
}
