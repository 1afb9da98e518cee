package app

import "github.com/dkeye/Meet/internal/domain"

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	DropFrame
	KickMember
)

func (a BackpressureAction) String() string {
	switch a {
	case DropFrame:
		return "drop_frame"
	case KickMember:
		return "kick_member"
	default:
		return "no_action"
	}
}

// Policy decides what happens to a connection whose send queue is full.
type Policy interface {
	OnBackPressure(id domain.ConnID, dropped int) BackpressureAction
}

// SimplePolicy kicks a connection once it has dropped MaxDrops frames in a
// row. A zero MaxDrops kicks on the first overflow.
type SimplePolicy struct {
	MaxDrops int
}

func (p SimplePolicy) OnBackPressure(_ domain.ConnID, dropped int) BackpressureAction {
	if dropped > p.MaxDrops {
		return KickMember
	}
	return DropFrame
}
