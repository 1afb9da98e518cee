package core

import "github.com/dkeye/Meet/internal/domain"

// RoomInfo is a read-only view for APIs (no transport fields).
type RoomInfo struct {
	ID           domain.RoomID `json:"id"`
	Participants int           `json:"participants"`
	Waiting      int           `json:"waiting"`
	HasHost      bool          `json:"hasHost"`
}
