package engine

import "github.com/DoyleJ11/bracket-backend/internal/catalog"

func NewDefaultState() State {
	s, err := NewState(DefaultRules(), catalog.Default())
	if err != nil {
		panic(err) // default rules and roster are static
	}
	return s
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

func DerivePhase(currentRound, rounds int) Phase {
	if currentRound <= 0 {
		return PhaseGroupStage
	} else if currentRound > rounds {
		return PhaseDone
	}
	return PhaseBracket
}
