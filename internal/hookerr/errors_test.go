package hookerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeValues(t *testing.T) {
	cases := []struct {
		code Code
		want uint8
	}{
		{Success, 0x00},
		{Failure, 0x01},
		{OutOfMemory, 0x02},
		{XOpenDisplay, 0x20},
		{XRecordGetContext, 0x25},
		{SetWindowsHookEx, 0x30},
		{GetModuleHandle, 0x31},
		{AXAPIDisabled, 0x40},
		{CreateObserver, 0x44},
	}
	for _, c := range cases {
		if uint8(c.code) != c.want {
			t.Errorf("Expected %s to be 0x%02X, got 0x%02X", c.code, c.want, uint8(c.code))
		}
	}
	if got := Code(0x99).String(); got != "unknown status 0x99" {
		t.Errorf("unexpected name for unknown code: %q", got)
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := fmt.Errorf("start: %w", New(SetWindowsHookEx, "install keyboard hook", errors.New("access denied")))

	if !errors.Is(err, &Error{Code: SetWindowsHookEx}) {
		t.Errorf("expected %v to match its code", err)
	}
	if !errors.Is(err, &Error{Code: SetWindowsHookEx, Op: "install keyboard hook"}) {
		t.Errorf("expected %v to match its code and op", err)
	}
	if errors.Is(err, &Error{Code: SetWindowsHookEx, Op: "install mouse hook"}) {
		t.Errorf("expected a different op not to match")
	}
	if errors.Is(err, ErrOutOfMemory) {
		t.Errorf("expected a different code not to match")
	}
	if !errors.Is(New(OutOfMemory, "alloc range", nil), ErrOutOfMemory) {
		t.Errorf("expected OutOfMemory errors to match ErrOutOfMemory")
	}
}

func TestCodeOf(t *testing.T) {
	cases := []struct {
		err  error
		want Code
	}{
		{nil, Success},
		{errors.New("plain"), Failure},
		{fmt.Errorf("wrapped: %w", New(AXAPIDisabled, "start", nil)), AXAPIDisabled},
		{ErrAlreadyRunning, Failure},
	}
	for _, c := range cases {
		if got := CodeOf(c.err); got != c.want {
			t.Errorf("CodeOf(%v) = %s, want %s", c.err, got, c.want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	err := New(XOpenDisplay, "open display", errors.New("no DISPLAY"))
	want := "open display: failed to open X display: no DISPLAY"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
