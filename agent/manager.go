package agent

import (
	"context"

	"github.com/hupe1980/interviewmesh/core"
	"github.com/hupe1980/interviewmesh/model"
	"github.com/hupe1980/interviewmesh/schema"
)

// Manager writes the final hiring report. Unlike the analysis agents it sees
// the complete turn history, not a bounded window.
type Manager struct {
	Base
}

// NewManager creates the evaluation agent.
func NewManager(llm model.Model, optFns ...func(o *Options)) *Manager {
	return &Manager{Base: NewBase("Manager", llm, optFns...)}
}

// Feedback produces the final report over the whole interview.
func (a *Manager) Feedback(ctx context.Context, state *core.ConversationState) (schema.FinalFeedback, error) {
	turns := make([]core.Turn, 0, len(state.Turns))
	for _, t := range state.Turns {
		turns = append(turns, *t)
	}

	messages := make([]model.Message, 0, 2*len(turns)+3)
	messages = append(messages, model.SystemMessage(managerPersona(state.Role, state.Grade)))
	messages = append(messages, model.SystemMessage(candidateContext(state.Snapshot())))
	messages = append(messages, model.SystemMessage(interviewStats(state)))
	messages = append(messages, historyMessages(turns)...)
	messages = append(messages, model.UserMessage(feedbackInstruction()))
	return resolve[schema.FinalFeedback](ctx, &a.Base, messages, schema.FinalFeedbackSchema())
}
