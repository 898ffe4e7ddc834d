// Package view holds the request lifecycle state for one user workflow.
//
// Every workflow moves Idle -> Loading -> Succeeded or Failed. Each attempt
// gets a token from Begin; a completion only becomes visible if its token is
// still the newest one issued, so the result of an abandoned attempt is
// never rendered and the most recent user intent always wins. Closing a
// workflow invalidates every outstanding token.
package view

import "sync"

type Phase int

const (
	Idle Phase = iota
	Loading
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Token identifies one attempt. Tokens are only meaningful to the workflow
// that issued them.
type Token struct {
	seq uint64
}

// Workflow is the state machine for one view. Views never share a Workflow;
// the zero value is ready to use.
type Workflow[T any] struct {
	mu     sync.Mutex
	phase  Phase
	seq    uint64
	closed bool
	result T
	err    error
}

// Begin starts a new attempt, superseding any attempt still in flight, and
// disables the workflow's controls until the attempt completes.
func (w *Workflow[T]) Begin() Token {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.seq++
	w.phase = Loading
	return Token{seq: w.seq}
}

// Complete records the outcome of the attempt identified by t. It reports
// whether the outcome was applied: stale tokens and tokens of a closed
// workflow are dropped without touching visible state.
func (w *Workflow[T]) Complete(t Token, result T, err error) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || t.seq != w.seq {
		return false
	}
	if err != nil {
		var zero T
		w.phase = Failed
		w.result = zero
		w.err = err
		return true
	}
	w.phase = Succeeded
	w.result = result
	w.err = nil
	return true
}

// Close marks the view as torn down. Outstanding attempts may still finish,
// but their results are ignored.
func (w *Workflow[T]) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.phase = Idle
}

func (w *Workflow[T]) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// Busy reports whether the triggering control should be disabled. Both
// success and failure re-enable the control; a failed attempt must leave
// the user free to retry.
func (w *Workflow[T]) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase == Loading
}

// Result returns the last applied outcome.
func (w *Workflow[T]) Result() (T, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result, w.err
}

// Run drives fn through one full attempt on w and returns its outcome. If
// the attempt was superseded or the workflow closed while fn ran, the
// outcome is reported but not applied to visible state.
func Run[T any](w *Workflow[T], fn func() (T, error)) (T, error) {
	t := w.Begin()
	result, err := fn()
	w.Complete(t, result, err)
	return result, err
}
