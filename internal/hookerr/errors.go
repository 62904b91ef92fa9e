// Package hookerr defines the status codes and error taxonomy shared by the hook engine,
// the injector and the read-only platform queries.
package hookerr

import (
	"errors"
	"fmt"
)

// Code is a status code as reported across the engine boundary. Values are fixed.
type Code uint8

const (
	Success     Code = 0x00
	Failure     Code = 0x01
	OutOfMemory Code = 0x02

	// X11
	XOpenDisplay         Code = 0x20
	XRecordNotFound      Code = 0x21
	XRecordAllocRange    Code = 0x22
	XRecordCreateContext Code = 0x23
	XRecordEnableContext Code = 0x24
	XRecordGetContext    Code = 0x25

	// Windows
	SetWindowsHookEx Code = 0x30
	GetModuleHandle  Code = 0x31

	// Darwin
	AXAPIDisabled       Code = 0x40
	CreateEventPort     Code = 0x41
	CreateRunLoopSource Code = 0x42
	GetRunLoop          Code = 0x43
	CreateObserver      Code = 0x44
)

var codeNames = map[Code]string{
	Success:              "success",
	Failure:              "failure",
	OutOfMemory:          "out of memory",
	XOpenDisplay:         "failed to open X display",
	XRecordNotFound:      "X RECORD extension not found",
	XRecordAllocRange:    "failed to allocate X RECORD range",
	XRecordCreateContext: "failed to create X RECORD context",
	XRecordEnableContext: "failed to enable X RECORD context",
	XRecordGetContext:    "failed to get X RECORD context",
	SetWindowsHookEx:     "failed to install Windows hook",
	GetModuleHandle:      "failed to get module handle",
	AXAPIDisabled:        "accessibility API is disabled",
	CreateEventPort:      "failed to create event tap port",
	CreateRunLoopSource:  "failed to create run loop source",
	GetRunLoop:           "failed to get run loop",
	CreateObserver:       "failed to create run loop observer",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("unknown status 0x%02X", uint8(c))
}

// Error is a HookError: a failure with a status code, the operation that produced it
// and, optionally, the underlying platform error.
type Error struct {
	Code Code
	Op   string
	Err  error
}

// New returns a *Error for op with the given code.
func New(code Code, op string, err error) *Error {
	return &Error{Code: code, Op: op, Err: err}
}

func (e *Error) Error() string {
	msg := e.Code.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a code-only *Error (no wrapped error) with the same
// code, and the same Op when target names one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Err != nil {
		return false
	}
	return t.Code == e.Code && (t.Op == "" || t.Op == e.Op)
}

var (
	// ErrOutOfMemory is returned when resources run out while acquiring a capture context.
	ErrOutOfMemory = &Error{Code: OutOfMemory}

	// ErrAlreadyRunning is returned by Start when the engine is not idle.
	ErrAlreadyRunning = &Error{Code: Failure, Op: "start", Err: errors.New("hook is already running")}

	// ErrPlatformQueryFailed is returned when a read-only platform query cannot complete.
	ErrPlatformQueryFailed = errors.New("platform query failed")

	// ErrWrongVariant is returned when a payload is read under an incompatible event kind.
	ErrWrongVariant = errors.New("payload accessed under wrong event kind")

	// ErrUnsupportedPlatform is returned by every operation on a platform without a backend.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// CodeOf extracts the status code carried by err. A nil error is Success and an
// error without a code is Failure.
func CodeOf(err error) Code {
	if err == nil {
		return Success
	}
	var he *Error
	if errors.As(err, &he) {
		return he.Code
	}
	return Failure
}
