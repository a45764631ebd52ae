package agent

import (
	"context"

	"github.com/hupe1980/interviewmesh/core"
	"github.com/hupe1980/interviewmesh/model"
	"github.com/hupe1980/interviewmesh/schema"
)

// VibeMaster watches the candidate's messages for stop intent and emotional
// signals. It is the one agent whose failure never aborts a run: exhausted
// resolution yields the conservative "keep going" default instead.
type VibeMaster struct {
	Base
}

// NewVibeMaster creates the intent classification agent.
func NewVibeMaster(llm model.Model, optFns ...func(o *Options)) *VibeMaster {
	return &VibeMaster{Base: NewBase("VibeMaster", llm, optFns...)}
}

// Classify determines whether the candidate wants to stop.
func (a *VibeMaster) Classify(ctx context.Context, snap core.Snapshot) (schema.UserIntent, error) {
	messages := make([]model.Message, 0, 2*len(snap.RecentTurns)+2)
	messages = append(messages, model.SystemMessage(vibePersona()))
	messages = append(messages, historyMessages(snap.RecentTurns)...)
	messages = append(messages, model.UserMessage(vibeInstruction(snap.CurrentUserMessage)))
	return resolveWithDefault(ctx, &a.Base, messages, schema.UserIntentSchema(), schema.DefaultUserIntent())
}
