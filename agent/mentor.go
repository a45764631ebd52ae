package agent

import (
	"context"

	"github.com/hupe1980/interviewmesh/core"
	"github.com/hupe1980/interviewmesh/model"
	"github.com/hupe1980/interviewmesh/schema"
)

// Mentor is the hidden observer and calibrator. One call analyzes the last
// answer and steers the next question; the combined report is split into its
// typed halves by the engine merge step.
type Mentor struct {
	Base
}

// NewMentor creates the hidden analysis agent.
func NewMentor(llm model.Model, optFns ...func(o *Options)) *Mentor {
	return &Mentor{Base: NewBase("Mentor", llm, optFns...)}
}

// Analyze classifies the candidate's current answer against the recent
// history and calibrates the next question.
func (a *Mentor) Analyze(ctx context.Context, snap core.Snapshot) (schema.AnalystReport, error) {
	messages := make([]model.Message, 0, 2*len(snap.RecentTurns)+2)
	messages = append(messages, model.SystemMessage(mentorPersona(snap.Role, snap.Grade)))
	messages = append(messages, historyMessages(snap.RecentTurns)...)
	messages = append(messages, model.UserMessage(analyzeInstruction(snap.CurrentDifficulty, snap.TopicsCovered)))
	return resolve[schema.AnalystReport](ctx, &a.Base, messages, schema.AnalystReportSchema())
}
