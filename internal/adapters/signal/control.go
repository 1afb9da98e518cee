package signal

import (
	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
)

// handlePing answers the application-level keepalive.
func (ctl *SignalWSController) handlePing(id domain.ConnID) {
	ctl.Hub.Send(id, core.EventPong, nil)
}
