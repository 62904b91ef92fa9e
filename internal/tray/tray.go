// Package tray provides a system tray capture toggle using getlantern/systray.
package tray

import (
	"encoding/binary"
	"sync"

	"github.com/getlantern/systray"

	"inputhook/internal/hook"
	"inputhook/internal/logging"
)

// Controller starts and stops capture. hook.Runner satisfies it.
type Controller interface {
	Start() error
	Stop() error
	State() hook.State
}

// Tray manages the system tray icon and menu
type Tray struct {
	ctl    Controller
	onQuit func()

	mu     sync.Mutex
	status *systray.MenuItem
	toggle *systray.MenuItem
	quitCh chan struct{}
}

// New creates a tray bound to ctl. onQuit runs when the user picks Quit.
func New(ctl Controller, onQuit func()) *Tray {
	return &Tray{
		ctl:    ctl,
		onQuit: onQuit,
		quitCh: make(chan struct{}),
	}
}

// Run starts the tray event loop (blocks). On macOS it must be called from the main goroutine.
func (t *Tray) Run() {
	systray.Run(t.setupMenu, func() { close(t.quitCh) })
}

// Stop stops the tray
func (t *Tray) Stop() {
	systray.Quit()
}

// setupMenu is called when systray is ready
func (t *Tray) setupMenu() {
	systray.SetTitle("inputhook")
	systray.SetTooltip("Global input capture")
	systray.SetIcon(getIcon())

	t.mu.Lock()
	t.status = systray.AddMenuItem("", "")
	t.status.Disable()
	t.toggle = systray.AddMenuItem("", "")
	t.mu.Unlock()
	systray.AddSeparator()
	quit := systray.AddMenuItem("Quit", "Stop capture and exit")
	t.Refresh()

	// Handle clicks in goroutine
	go func() {
		for {
			select {
			case <-t.toggle.ClickedCh:
				t.toggleCapture()
			case <-quit.ClickedCh:
				if t.onQuit != nil {
					t.onQuit()
				}
				return
			case <-t.quitCh:
				return
			}
		}
	}()
}

func (t *Tray) toggleCapture() {
	var err error
	if t.ctl.State() == hook.Idle {
		err = t.ctl.Start()
	} else {
		err = t.ctl.Stop()
	}
	if err != nil {
		logging.Errorf("tray: capture toggle failed: %v", err)
	}
	t.Refresh()
}

// Refresh updates the menu to the controller's current state. Safe before the tray is ready.
func (t *Tray) Refresh() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status == nil {
		return
	}
	status, action := labels(t.ctl.State())
	t.status.SetTitle(status)
	t.toggle.SetTitle(action)
}

func labels(state hook.State) (status, action string) {
	status = "Capture: " + state.String()
	if state == hook.Idle {
		return status, "Start capture"
	}
	return status, "Stop capture"
}

// getIcon returns a 16x16 32-bit ICO: a dark key cap with a light face.
func getIcon() []byte {
	const (
		size       = 16
		pixelBytes = size * size * 4
		maskBytes  = size * 4 // 1bpp AND mask, rows padded to 32 bits
		headerSize = 40
		offset     = 6 + 16
	)
	icon := make([]byte, offset+headerSize+pixelBytes+maskBytes)

	// ICO Header
	copy(icon[0:6], []byte{0x00, 0x00, 0x01, 0x00, 0x01, 0x00})
	// Icon Directory
	icon[6], icon[7] = size, size
	binary.LittleEndian.PutUint16(icon[10:12], 1)
	binary.LittleEndian.PutUint16(icon[12:14], 32)
	binary.LittleEndian.PutUint32(icon[14:18], headerSize+pixelBytes+maskBytes)
	binary.LittleEndian.PutUint32(icon[18:22], offset)

	// DIB Header
	dib := icon[offset : offset+headerSize]
	binary.LittleEndian.PutUint32(dib[0:4], headerSize)
	binary.LittleEndian.PutUint32(dib[4:8], size)
	binary.LittleEndian.PutUint32(dib[8:12], size*2) // XOR + AND mask
	binary.LittleEndian.PutUint16(dib[12:14], 1)
	binary.LittleEndian.PutUint16(dib[14:16], 32)
	binary.LittleEndian.PutUint32(dib[20:24], pixelBytes)

	// Pixels, BGRA
	pixels := icon[offset+headerSize : offset+headerSize+pixelBytes]
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x < 1 || x > 14 || y < 1 || y > 14 {
				continue
			}
			p := pixels[(y*size+x)*4:]
			shade := byte(0x40)
			if x >= 3 && x <= 12 && y >= 4 && y <= 13 {
				shade = 0xE0
			}
			p[0], p[1], p[2], p[3] = shade, shade, shade, 0xFF
		}
	}
	return icon
}
