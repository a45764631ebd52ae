// Package core holds the shared interview data model: the mutable
// ConversationState threaded through every engine phase, the Turn and
// QuestionResult records it accumulates, and the immutable Snapshot handed to
// concurrently running analysis agents.
//
// ConversationState is deliberately unsynchronized. Exactly one logical owner
// mutates it at a time; the only concurrent window is the fork-join analysis
// step, which operates on a Snapshot and never touches the state itself.
package core
