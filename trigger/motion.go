package trigger

// Phase is the motion handshake state.
type Phase int

const (
	// Idle: no motion is playing.
	Idle Phase = iota
	// PreparingMotion: the renderer is about to start a motion and waits
	// for the popup to be aligned against its final rect.
	PreparingMotion
	// Moving: the motion is playing; alignment is gated until MotionDone.
	Moving
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case PreparingMotion:
		return "preparing"
	case Moving:
		return "moving"
	default:
		return "unknown"
	}
}

// Prepare is called by the renderer before an enter or leave motion starts.
// The popup is aligned once and then resume is called; the motion may start
// from that point on.
func (p *Popup) Prepare(resume func()) {
	if p.closed {
		return
	}
	p.phase = PreparingMotion
	p.trace.Event("prepare")

	p.loop.Force()

	p.phase = Moving
	if resume != nil {
		resume()
	}
}

// MotionDone is called by the renderer when a motion has finished. visible
// is the final visibility.
func (p *Popup) MotionDone(visible bool) {
	if p.closed {
		return
	}
	p.afterMotion(visible)
}

// Phase returns the motion handshake state.
func (p *Popup) Phase() Phase {
	return p.phase
}

// InMotion reports whether alignment is currently gated by a motion.
func (p *Popup) InMotion() bool {
	return p.inMotion
}

func (p *Popup) startMotion() {
	p.inMotion = true
	p.phase = Idle
	p.loop.SetInMotion(true)
}

func (p *Popup) afterMotion(visible bool) {
	p.inMotion = false
	p.phase = Idle
	p.loop.SetInMotion(false)
	p.loop.Force()
	p.trace.Event("motion done", visible)

	if p.opts.AfterOpenChange != nil {
		p.opts.AfterOpenChange(visible)
	}
}
