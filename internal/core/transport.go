package core

import "github.com/dkeye/Meet/internal/domain"

//go:generate mockgen -destination=mocks/transport_mock.go -package=mocks . Transport

// Transport is the delivery capability the adapter exposes to the core.
// Delivery is fire-and-forget: implementations must not block and must not
// call back into the orchestrator synchronously.
type Transport interface {
	Send(to domain.ConnID, event string, payload any)
	Broadcast(to []domain.ConnID, event string, payload any)
}
