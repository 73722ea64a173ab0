package game

import "github.com/Garsondee/Soccer-Sense/internal/fsm"

// Telegram messages exchanged between players.
const (
	// MsgReceiveBall tells a player a pass is on its way. Data: Vec2 target.
	MsgReceiveBall fsm.Message = "receive_ball"
	// MsgPassToMe asks the controlling player for the ball. Data: *Player requester.
	MsgPassToMe fsm.Message = "pass_to_me"
	// MsgSupportAttacker asks a player to move to the best supporting spot.
	MsgSupportAttacker fsm.Message = "support_attacker"
	// MsgGoHome sends a player back to its default region.
	MsgGoHome fsm.Message = "go_home"
	// MsgWait parks a player where it stands.
	MsgWait fsm.Message = "wait"
)

// Regulator gates an action to a fixed rate measured in simulation ticks.
type Regulator struct {
	interval int
	next     int
}

// NewRegulator allows perSecond actions per simulated second at the given
// tick rate. The first call to Ready always succeeds.
func NewRegulator(perSecond float64, ticksPerSecond int) *Regulator {
	interval := 1
	if perSecond > 0 {
		interval = int(float64(ticksPerSecond)/perSecond + 0.5)
		if interval < 1 {
			interval = 1
		}
	}
	return &Regulator{interval: interval}
}

// Ready reports whether the action may run at tick, and if so arms the next window.
func (r *Regulator) Ready(tick int) bool {
	if tick < r.next {
		return false
	}
	r.next = tick + r.interval
	return true
}

// Reset makes the next Ready call succeed.
func (r *Regulator) Reset() { r.next = 0 }
