package hook

import (
	"sync"

	"inputhook/internal/event"
	"inputhook/internal/hookerr"
)

// Runner drives an Engine from a dedicated goroutine, for callers that cannot hand
// their own thread to the capture loop.
type Runner struct {
	engine   *Engine
	dispatch Dispatch

	mu   sync.Mutex
	done chan struct{}
	err  error
}

// NewRunner returns a Runner that starts engine with dispatch.
func NewRunner(engine *Engine, dispatch Dispatch) *Runner {
	return &Runner{engine: engine, dispatch: dispatch}
}

// Start launches capture and returns once HookEnabled has been delivered, or with the
// error that ended the attempt.
func (r *Runner) Start() error {
	r.mu.Lock()
	if r.done != nil {
		select {
		case <-r.done:
		default:
			r.mu.Unlock()
			return hookerr.ErrAlreadyRunning
		}
	}
	done := make(chan struct{})
	r.done = done
	r.err = nil
	r.mu.Unlock()

	enabled := make(chan struct{})
	var once sync.Once
	go func() {
		err := r.engine.Start(func(ev event.InputEvent) {
			if ev.Kind() == event.HookEnabled {
				once.Do(func() { close(enabled) })
			}
			r.dispatch(ev)
		})
		r.mu.Lock()
		r.err = err
		r.mu.Unlock()
		close(done)
	}()

	select {
	case <-enabled:
		return nil
	case <-done:
		return r.Err()
	}
}

// Stop ends capture and waits for the capture goroutine to exit.
func (r *Runner) Stop() error {
	err := r.engine.Stop()
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done != nil {
		<-done
	}
	return err
}

// State returns the engine's lifecycle state.
func (r *Runner) State() State {
	return r.engine.State()
}

// Done is closed when the current capture goroutine exits. It is nil before the first Start.
func (r *Runner) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// Err returns the result of the last finished capture.
func (r *Runner) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
