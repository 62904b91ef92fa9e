//go:build linux

package hook

import (
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func pipeFds(t *testing.T) (int, int) {
	t.Helper()
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_CLOEXEC); err != nil {
		t.Fatalf("pipe: %v", err)
	}
	t.Cleanup(func() {
		unix.Close(fds[0])
		unix.Close(fds[1])
	})
	return fds[0], fds[1]
}

func waitAsync(w *wakeup, fd int) <-chan bool {
	ch := make(chan bool, 1)
	go func() {
		ready, err := w.wait(fd)
		ch <- ready && err == nil
	}()
	return ch
}

func TestWakeupSignalBeforeWait(t *testing.T) {
	w, err := newWakeup()
	if err != nil {
		t.Fatalf("newWakeup() error = %v", err)
	}
	defer w.close()
	idle, _ := pipeFds(t)

	if err := w.signal(); err != nil {
		t.Fatalf("signal() error = %v", err)
	}
	if !w.isSignaled() {
		t.Errorf("Expected latch to report signaled")
	}
	for i := 0; i < 2; i++ {
		select {
		case ready := <-waitAsync(w, idle):
			if ready {
				t.Errorf("Expected wait to report the latch, not the fd")
			}
		case <-time.After(time.Second):
			t.Fatalf("wait blocked after an earlier signal")
		}
	}
}

func TestWakeupSignalReleasesBlockedWait(t *testing.T) {
	w, err := newWakeup()
	if err != nil {
		t.Fatalf("newWakeup() error = %v", err)
	}
	defer w.close()
	idle, _ := pipeFds(t)

	done := waitAsync(w, idle)
	select {
	case <-done:
		t.Fatalf("wait returned before any signal")
	case <-time.After(50 * time.Millisecond):
	}
	w.signal()
	select {
	case ready := <-done:
		if ready {
			t.Errorf("Expected wait to report the latch")
		}
	case <-time.After(time.Second):
		t.Fatalf("signal did not release wait")
	}
}

func TestWakeupReportsReadableFd(t *testing.T) {
	w, err := newWakeup()
	if err != nil {
		t.Fatalf("newWakeup() error = %v", err)
	}
	defer w.close()
	r, wr := pipeFds(t)

	if _, err := unix.Write(wr, []byte{1}); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case ready := <-waitAsync(w, r):
		if !ready {
			t.Errorf("Expected wait to report the readable fd")
		}
	case <-time.After(time.Second):
		t.Fatalf("wait did not see the readable fd")
	}
}

func TestWakeupSignalAfterCloseIsNoop(t *testing.T) {
	w, err := newWakeup()
	if err != nil {
		t.Fatalf("newWakeup() error = %v", err)
	}
	if err := w.close(); err != nil {
		t.Fatalf("close() error = %v", err)
	}
	if err := w.signal(); err != nil {
		t.Errorf("signal() after close error = %v", err)
	}
	if err := w.close(); err != nil {
		t.Errorf("second close() error = %v", err)
	}
}
