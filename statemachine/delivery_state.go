package statemachine

import (
	"github.com/racsaibot-coder/rich-aroma-os/apperr"
	"github.com/racsaibot-coder/rich-aroma-os/models"
)

// Transition defines a valid delivery-status change
type Transition struct {
	From models.DeliveryStatus `json:"from"`
	To   models.DeliveryStatus `json:"to"`
}

// validTransitions is the authoritative courier state machine definition.
// Claiming and staff assignment move pending → assigned; after that the
// driver advances the order one step at a time.
var validTransitions = []Transition{
	{From: models.DeliveryPending, To: models.DeliveryAssigned},
	{From: models.DeliveryAssigned, To: models.DeliveryOnRoute},
	{From: models.DeliveryOnRoute, To: models.DeliveryDone},
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool)
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.DeliveryStatus) []models.DeliveryStatus {
	var nexts []models.DeliveryStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition checks whether a delivery order can move between two states
func CanTransition(from, to models.DeliveryStatus) error {
	if transitionMap[Transition{From: from, To: to}] {
		return nil
	}
	return apperr.Newf(apperr.Conflict,
		"invalid delivery transition: %s -> %s (valid from %s: %s)",
		from, to, from, describeValidFrom(from))
}

func describeValidFrom(status models.DeliveryStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
