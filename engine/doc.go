// Package engine drives the interview: a phase machine that sequences the
// greeting, the user-input cycle with its concurrent analysis fork-join, the
// interviewer's responses, the termination policy, and the final evaluation.
//
// The engine owns the ConversationState for the whole run. The only
// concurrency is the fork-join of the intent classifier and the mentor, both
// of which read an immutable snapshot and return results that the engine
// merges in a fixed order once both have joined.
package engine
