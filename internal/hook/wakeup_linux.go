//go:build linux

package hook

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// wakeup is a latch backed by a pipe: once signaled, every wait returns at once. It
// lets another goroutine end a poll on the display connection.
type wakeup struct {
	mu       sync.Mutex
	r, w     int
	signaled bool
	closed   bool
}

func newWakeup() (*wakeup, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_CLOEXEC|unix.O_NONBLOCK); err != nil {
		return nil, fmt.Errorf("create wakeup pipe: %w", err)
	}
	return &wakeup{r: fds[0], w: fds[1]}, nil
}

// signal releases current and future waits. Safe from any goroutine, idempotent and a
// no-op after close.
func (w *wakeup) signal() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.signaled || w.closed {
		return nil
	}
	if _, err := unix.Write(w.w, []byte{1}); err != nil {
		return fmt.Errorf("signal wakeup: %w", err)
	}
	w.signaled = true
	return nil
}

// isSignaled reports whether signal has been called.
func (w *wakeup) isSignaled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.signaled
}

// wait blocks until fd is readable (true) or the latch is signaled (false).
func (w *wakeup) wait(fd int) (bool, error) {
	fds := []unix.PollFd{
		{Fd: int32(w.r), Events: unix.POLLIN},
		{Fd: int32(fd), Events: unix.POLLIN},
	}
	for {
		_, err := unix.Poll(fds, -1)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("poll: %w", err)
		}
		switch {
		case fds[0].Revents != 0:
			return false, nil
		case fds[1].Revents&unix.POLLIN != 0:
			return true, nil
		case fds[1].Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0:
			return false, fmt.Errorf("connection closed (revents 0x%x)", fds[1].Revents)
		}
	}
}

func (w *wakeup) close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return errors.Join(unix.Close(w.r), unix.Close(w.w))
}
