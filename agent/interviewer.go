package agent

import (
	"context"

	"github.com/hupe1980/interviewmesh/core"
	"github.com/hupe1980/interviewmesh/model"
	"github.com/hupe1980/interviewmesh/schema"
)

// Interviewer is the only agent visible to the candidate. It opens the
// interview (validating the requested role along the way) and turns mentor
// verdicts into the next question.
type Interviewer struct {
	Base
}

// NewInterviewer creates the candidate-facing agent.
func NewInterviewer(llm model.Model, optFns ...func(o *Options)) *Interviewer {
	return &Interviewer{Base: NewBase("Interviewer", llm, optFns...)}
}

// Greet produces the opening message and the role-validity verdict.
func (a *Interviewer) Greet(ctx context.Context, snap core.Snapshot) (schema.Greeting, error) {
	messages := []model.Message{
		model.SystemMessage(interviewerPersona(snap.Role, snap.Grade)),
		model.SystemMessage(candidateContext(snap)),
		model.UserMessage(greetingInstruction(snap.Role, snap.Grade)),
	}
	return resolve[schema.Greeting](ctx, &a.Base, messages, schema.GreetingSchema())
}

// Respond produces the next candidate-facing message from the mentor's
// analysis and calibration of the just-answered question.
func (a *Interviewer) Respond(ctx context.Context, snap core.Snapshot, analysis schema.MentorAnalysis, calibration schema.CalibrationResult) (schema.InterviewerReply, error) {
	messages := make([]model.Message, 0, 2*len(snap.RecentTurns)+2)
	messages = append(messages, model.SystemMessage(interviewerPersona(snap.Role, snap.Grade)))
	messages = append(messages, historyMessages(snap.RecentTurns)...)
	messages = append(messages, model.UserMessage(responseInstruction(
		analysis.InstructionToInterviewer,
		analysis.FactualErrors,
		analysis.CorrectInfo,
		calibration.DifficultyLevel,
		calibration.TopicRecommendation,
		calibration.ShouldGiveHint,
		snap.TopicsCovered,
	)))
	return resolve[schema.InterviewerReply](ctx, &a.Base, messages, schema.ReplySchema())
}
