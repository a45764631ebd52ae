package core

// SnapshotTurns is how many recent turns a Snapshot carries. Analysis agents
// only ever see this bounded window; the evaluator works from the full state.
const SnapshotTurns = 3

// Snapshot is an immutable read-only view of the conversation handed to the
// concurrently running analysis agents during the fork-join step. All slices
// are defensive copies; turns are copied by value so annotations on the live
// state cannot race with a branch that is still reading.
type Snapshot struct {
	Participant string
	Role        string
	Grade       string
	Experience  string

	RecentTurns        []Turn // up to SnapshotTurns most recent turns
	CurrentUserMessage string

	CurrentDifficulty int
	QuestionsAsked    int
	TopicsCovered     []string
}

// Snapshot captures the current read-only view for the fork-join branches.
func (s *ConversationState) Snapshot() Snapshot {
	start := len(s.Turns) - SnapshotTurns
	if start < 0 {
		start = 0
	}
	recent := make([]Turn, 0, len(s.Turns)-start)
	for _, t := range s.Turns[start:] {
		recent = append(recent, *t)
	}
	topics := make([]string, len(s.TopicsCovered))
	copy(topics, s.TopicsCovered)

	return Snapshot{
		Participant:        s.Participant,
		Role:               s.Role,
		Grade:              s.Grade,
		Experience:         s.Experience,
		RecentTurns:        recent,
		CurrentUserMessage: s.CurrentUserMessage,
		CurrentDifficulty:  s.CurrentDifficulty,
		QuestionsAsked:     s.QuestionsAsked,
		TopicsCovered:      topics,
	}
}
