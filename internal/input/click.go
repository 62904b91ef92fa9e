package input

import "time"

// DefaultMultiClickInterval is used when the platform interval cannot be read.
const DefaultMultiClickInterval = 500 * time.Millisecond

// ClickCounter synthesizes click counts and clicked events from button presses and
// releases. It belongs to a single capture thread and is not safe for concurrent use.
type ClickCounter struct {
	// Interval is the longest gap between presses of one button that still counts as a
	// multi-click.
	Interval time.Duration

	button uint16
	count  uint16
	last   uint64
	x, y   int16
	moved  bool
}

// NewClickCounter returns a counter using interval, or DefaultMultiClickInterval when
// interval is not positive.
func NewClickCounter(interval time.Duration) *ClickCounter {
	if interval <= 0 {
		interval = DefaultMultiClickInterval
	}
	return &ClickCounter{Interval: interval}
}

// Press records a button press at time t (milliseconds) and returns the click count:
// 1 for a fresh click, incremented for a repeat of the same button within Interval.
func (c *ClickCounter) Press(button uint16, t uint64, x, y int16) uint16 {
	interval := uint64(c.Interval / time.Millisecond)
	if c.count > 0 && !c.moved && button == c.button && t >= c.last && t-c.last <= interval {
		if c.count < ^uint16(0) {
			c.count++
		}
	} else {
		c.count = 1
	}
	c.button = button
	c.last = t
	c.x, c.y = x, y
	c.moved = false
	return c.count
}

// Release records a button release and returns the press's click count and whether
// the release completes a click: same button, no pointer motion since the press.
func (c *ClickCounter) Release(button uint16, x, y int16) (uint16, bool) {
	clicked := c.count > 0 && button == c.button && !c.moved && x == c.x && y == c.y
	return c.count, clicked
}

// Move records pointer motion. Motion away from the press position ends the
// multi-click sequence; the next press counts 1.
func (c *ClickCounter) Move(x, y int16) {
	if c.count > 0 && (x != c.x || y != c.y) {
		c.moved = true
	}
}

// Count returns the click count motion events report: 0 once the pointer has moved
// away from the last press.
func (c *ClickCounter) Count() uint16 {
	if c.moved {
		return 0
	}
	return c.count
}
