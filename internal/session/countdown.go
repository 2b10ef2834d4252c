package session

// Timer is the countdown owned by the active run.
type Timer interface {
	// Start begins a countdown of seconds, replacing any running one.
	// onTick receives the remaining seconds after each elapsed second and
	// onExpire fires once when the countdown reaches zero.
	Start(seconds int, onTick func(remaining int), onExpire func())
	// Cancel stops the countdown. Pending ticks become no-ops.
	Cancel()
}

// Countdown is a Timer advanced by explicit one-second steps. It does not
// schedule anything itself: the caller delivers ticks tagged with the
// generation that was current when they were scheduled, and ticks from a
// cancelled or replaced countdown are ignored. Not safe for concurrent use.
type Countdown struct {
	gen       uint64
	remaining int
	running   bool
	onTick    func(int)
	onExpire  func()
}

var _ Timer = (*Countdown)(nil)

// NewCountdown returns a stopped countdown.
func NewCountdown() *Countdown {
	return &Countdown{}
}

func (c *Countdown) Start(seconds int, onTick func(int), onExpire func()) {
	c.gen++
	c.remaining = seconds
	c.running = seconds > 0
	c.onTick = onTick
	c.onExpire = onExpire
}

func (c *Countdown) Cancel() {
	c.gen++
	c.running = false
	c.onTick = nil
	c.onExpire = nil
}

// Advance applies one elapsed second for generation gen. It reports whether
// the countdown is still running afterwards, i.e. whether another tick
// should be scheduled.
func (c *Countdown) Advance(gen uint64) bool {
	if gen != c.gen || !c.running {
		return false
	}

	c.remaining--
	if c.onTick != nil {
		c.onTick(c.remaining)
	}
	if gen != c.gen {
		// onTick cancelled or restarted the countdown.
		return false
	}

	if c.remaining <= 0 {
		c.running = false
		expire := c.onExpire
		c.onExpire = nil
		if expire != nil {
			expire()
		}
		return false
	}
	return true
}

// Generation identifies the current countdown. Ticks carry it back to Advance.
func (c *Countdown) Generation() uint64 { return c.gen }

// Running reports whether the countdown is ticking.
func (c *Countdown) Running() bool { return c.running }

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int { return c.remaining }
