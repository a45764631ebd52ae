package engine

// Phase identifies a state of the interview machine.
type Phase int

const (
	// PhaseStart opens the interview: greeting and role validation.
	PhaseStart Phase = iota
	// PhaseUserInput waits for the candidate, then forks the analysis.
	PhaseUserInput
	// PhaseInterviewerResponse produces the next interviewer turn.
	PhaseInterviewerResponse
	// PhaseEvaluation produces the final feedback.
	PhaseEvaluation
	// PhaseTerminated is the terminal state.
	PhaseTerminated
)

// String implements the fmt.Stringer interface.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseUserInput:
		return "user_input"
	case PhaseInterviewerResponse:
		return "interviewer_response"
	case PhaseEvaluation:
		return "evaluation"
	case PhaseTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
