package effects

// Animation is a frame counter over Frames images shown FrameDuration ticks
// each. A non-looping animation stops on its last tick and reports Done.
type Animation struct {
	Frames        int
	FrameDuration int
	Loop          bool

	Tick int
	Done bool
}

func NewAnimation(frames, frameDuration int, loop bool) Animation {
	return Animation{Frames: max(1, frames), FrameDuration: max(1, frameDuration), Loop: loop}
}

func (a *Animation) length() int { return a.Frames * a.FrameDuration }

func (a *Animation) Update() {
	if a.Loop {
		a.Tick = (a.Tick + 1) % a.length()
		return
	}
	a.Tick = min(a.Tick+1, a.length()-1)
	if a.Tick >= a.length()-1 {
		a.Done = true
	}
}

// Image is the index of the frame currently shown.
func (a Animation) Image() int {
	return a.Tick / a.FrameDuration
}
