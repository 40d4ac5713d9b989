package request

import (
	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	SlotID uuid.UUID `json:"slot_id" binding:"required"`
}

// ReasonRequest carries the mandatory explanation for reject and
// admin-delete transitions. Blank-ness is checked in the domain, not here,
// so the caller gets the typed error.
type ReasonRequest struct {
	Reason string `json:"reason"`
}
