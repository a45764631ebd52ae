package engine

import (
	"github.com/hupe1980/interviewmesh/core"
)

const (
	// DefaultMaxQuestions is the question budget for a session.
	DefaultMaxQuestions = 10
	// DefaultMaxHallucinations is the fabricated-claim budget for a session.
	DefaultMaxHallucinations = 5
)

// Decision is the outcome of a termination-policy evaluation.
type Decision struct {
	Finish bool
	Reason string
}

// EvaluatePolicy decides whether the interview must end. It is a pure
// function of the state and the configured limits.
//
// Budget checks come before the finished flag so that a session that hits a
// limit in the same cycle an agent flagged it still reports the limit when
// the flag carries no reason of its own. Finish on ConversationState is
// monotonic, so an already-set reason is never overwritten by the caller.
func EvaluatePolicy(state *core.ConversationState, maxQuestions, maxHallucinations int) Decision {
	if state.QuestionsAsked >= maxQuestions {
		return Decision{Finish: true, Reason: core.StopQuestionsExhausted}
	}

	if len(state.DetectedHallucinations) >= maxHallucinations {
		return Decision{Finish: true, Reason: core.StopTooManyHallucinations}
	}

	if state.IsFinished {
		return Decision{Finish: true, Reason: state.StopReason}
	}

	return Decision{}
}
