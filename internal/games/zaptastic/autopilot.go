package zaptastic

import "math"

// Autopilot produces inputs for headless runs: it steers toward the nearest
// enemy ahead of the player and fires whenever one is roughly in line.
type Autopilot struct {
	step  float64 // maximum displacement per frame
	fired bool
}

// NewAutopilot creates an autopilot that moves at most step units a frame.
func NewAutopilot(step float64) *Autopilot {
	return &Autopilot{step: step}
}

// Next returns the input for the upcoming frame.
func (ap *Autopilot) Next(s *Simulation) Input {
	if !s.Player().Alive {
		return Input{}
	}

	me := s.PlayerPosition()
	target, found := 0.0, false
	best := math.Inf(1)
	s.Each(func(_ Handle, a *Actor) {
		if a.Kind != KindEnemy || a.Pos.X < me.X {
			return
		}
		if d := a.Pos.X - me.X; d < best {
			best, target, found = d, a.Pos.Y, true
		}
	})

	var in Input
	if found {
		dy := target - me.Y
		in.VerticalDisplacement = math.Max(-ap.step, math.Min(ap.step, dy))
		aligned := math.Abs(dy) <= s.Config().Enemies.Height
		// Release between shots so fire stays edge-triggered
		in.Fire = aligned && !ap.fired
	}
	ap.fired = in.Fire
	return in
}
