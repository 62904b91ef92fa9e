// Package hook provides global system-wide keyboard and mouse capture.
//
// An Engine drives one native capture session at a time. The goroutine that calls
// Start becomes the capture thread: it is locked to its OS thread, pumps the native
// event source and invokes the dispatch consumer synchronously for every event until
// Stop is called from another goroutine.
package hook

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"inputhook/internal/event"
	"inputhook/internal/hookerr"
	"inputhook/internal/logging"
)

// State is the lifecycle state of an Engine.
type State uint32

const (
	Idle State = iota
	Starting
	Running
	Stopping
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	default:
		return fmt.Sprintf("state(%d)", uint32(s))
	}
}

// Dispatch receives captured events on the capture thread. It must return quickly and
// must not call Start or Stop on the engine that invoked it.
type Dispatch func(event.InputEvent)

// Session is an acquired native capture context.
type Session interface {
	// Run pumps the native event source on the calling thread and hands every
	// translated event to emit, in the order the OS delivered them. It returns nil
	// after Interrupt, or an error on an unrecoverable platform fault. If Interrupt
	// was called before Run, Run returns without waiting for input, and nothing the
	// early Interrupt left behind survives Close.
	Run(emit func(event.InputEvent)) error
	// Interrupt asks a running or about-to-run Run to return. Safe from any goroutine.
	Interrupt() error
	// Modifiers reports the current modifier mask.
	Modifiers() event.Mask
	// Close releases the capture context. Called on the capture thread after Run returns.
	Close() error
}

// Backend acquires capture sessions. Open is called on the capture thread.
type Backend interface {
	Open() (Session, error)
}

// Engine is the lifecycle state machine around a Backend.
type Engine struct {
	backend Backend

	mu            sync.Mutex
	state         State
	session       Session
	stopRequested bool
	done          chan struct{}
}

// NewEngine creates an idle engine that acquires sessions from backend.
func NewEngine(backend Backend) *Engine {
	return &Engine{backend: backend}
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Start acquires a capture session and blocks delivering events to dispatch until Stop
// is called or the session fails. It fails with hookerr.ErrAlreadyRunning unless the
// engine is Idle, and with the platform's *hookerr.Error if acquisition fails, in
// which case dispatch is never invoked.
func (e *Engine) Start(dispatch Dispatch) error {
	if dispatch == nil {
		return errors.New("hook: nil dispatch")
	}

	e.mu.Lock()
	if e.state != Idle {
		e.mu.Unlock()
		return hookerr.ErrAlreadyRunning
	}
	e.state = Starting
	e.stopRequested = false
	done := make(chan struct{})
	e.done = done
	e.mu.Unlock()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	defer func() {
		e.mu.Lock()
		e.state = Idle
		e.session = nil
		e.done = nil
		e.mu.Unlock()
		close(done)
	}()

	session, err := e.backend.Open()
	if err != nil {
		logging.Errorf("hook: failed to acquire capture context: %v", err)
		return err
	}

	e.mu.Lock()
	if e.stopRequested {
		e.mu.Unlock()
		logging.Debugf("hook: stop requested during startup, releasing capture context")
		if err := session.Close(); err != nil {
			logging.Warnf("hook: failed to release capture context: %v", err)
		}
		return nil
	}
	e.session = session
	e.state = Running
	e.mu.Unlock()

	logging.Infof("hook: capture running")
	deliver(dispatch, event.NewHookEnabled(event.Now(), session.Modifiers()))

	runErr := session.Run(func(ev event.InputEvent) {
		deliver(dispatch, ev)
	})
	if runErr != nil {
		logging.Errorf("hook: capture failed: %v", runErr)
	}

	e.mu.Lock()
	e.state = Stopping
	e.mu.Unlock()

	deliver(dispatch, event.NewHookDisabled(event.Now(), session.Modifiers()))

	closeErr := session.Close()
	if closeErr != nil {
		logging.Errorf("hook: failed to release capture context: %v", closeErr)
	}
	logging.Infof("hook: capture stopped")

	if runErr != nil {
		return runErr
	}
	return closeErr
}

// Stop ends capture and waits until the capture context is released. It is a no-op on
// an Idle engine. A Stop issued while the engine is Starting is honored as soon as
// acquisition completes. Stop must not be called from the dispatch consumer.
func (e *Engine) Stop() error {
	e.mu.Lock()
	var session Session
	switch e.state {
	case Idle:
		e.mu.Unlock()
		return nil
	case Starting:
		e.stopRequested = true
	case Running:
		e.state = Stopping
		session = e.session
	case Stopping:
		session = e.session
	}
	done := e.done
	e.mu.Unlock()

	if session != nil {
		if err := session.Interrupt(); err != nil {
			return fmt.Errorf("hook: interrupt capture: %w", err)
		}
	}
	<-done
	return nil
}

// deliver invokes dispatch and contains a panic so it cannot unwind through the
// native event loop.
func deliver(dispatch Dispatch, ev event.InputEvent) {
	defer func() {
		if r := recover(); r != nil {
			logging.Errorf("hook: dispatch panicked on %s: %v", ev.Kind(), r)
		}
	}()
	dispatch(ev)
}
