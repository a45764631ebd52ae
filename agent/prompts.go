package agent

import (
	"fmt"
	"strings"

	"github.com/hupe1980/interviewmesh/core"
)

// Persona and instruction builders. Kept deliberately plain: the quality of
// the wording is a product concern, the message layout (persona, candidate
// context, bounded history, task instruction) is the contract the engine
// relies on.

func interviewerPersona(role, grade string) string {
	return fmt.Sprintf(
		"You are a professional technical interviewer conducting an interview for a %s position at %s level. "+
			"You ask one clear question at a time, react briefly to answers, and never reveal internal analysis.",
		role, grade)
}

func mentorPersona(role, grade string) string {
	return fmt.Sprintf(
		"You are a senior %s observing an interview at %s level, hidden from the candidate. "+
			"You classify each answer, list concrete factual errors, and calibrate the difficulty of the next question.",
		role, grade)
}

func vibePersona() string {
	return "You classify the intent and emotional state of an interview candidate from their latest message. " +
		"You only report what the message signals; you never address the candidate."
}

func managerPersona(role, grade string) string {
	return fmt.Sprintf(
		"You are a hiring manager writing the final report for a %s interview at %s level. "+
			"You judge only from the transcript and the interview statistics.",
		role, grade)
}

func candidateContext(snap core.Snapshot) string {
	return fmt.Sprintf("## CANDIDATE\nName: %s\nPosition: %s\nLevel: %s\nExperience: %s",
		snap.Participant, snap.Role, snap.Grade, snap.Experience)
}

func greetingInstruction(role, grade string) string {
	return fmt.Sprintf(
		"Greet the candidate, explain the interview format briefly, and ask the first question for a %s (%s). "+
			"Set is_role_valid to false if %q is not a recognized technical occupation; in that case the response "+
			"politely declines the interview instead of asking a question.",
		role, grade, role)
}

func analyzeInstruction(difficulty int, topics []string) string {
	covered := strings.Join(topics, ", ")
	if covered == "" {
		covered = "none"
	}
	return fmt.Sprintf(
		"Analyze the candidate's last answer. Current difficulty: %d/5. Topics already covered: %s. "+
			"Classify the answer, list factual errors verbatim, recommend the next topic and difficulty, "+
			"and give the interviewer one concrete instruction.",
		difficulty, covered)
}

func responseInstruction(instruction string, factualErrors []string, correctInfo string, difficulty int, topic string, giveHint bool, topics []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mentor verdict on the last answer:\n")
	fmt.Fprintf(&b, "- factual errors: %s\n", orNone(strings.Join(factualErrors, "; ")))
	fmt.Fprintf(&b, "- correct information: %s\n", orNone(correctInfo))
	fmt.Fprintf(&b, "- instruction: %s\n", instruction)
	fmt.Fprintf(&b, "- next difficulty: %d/5, next topic: %s, give a hint: %t\n", difficulty, topic, giveHint)
	fmt.Fprintf(&b, "Topics already covered: %s.\n", orNone(strings.Join(topics, ", ")))
	fmt.Fprintf(&b, "Write the next message to the candidate following the mentor's instruction.")
	return b.String()
}

func vibeInstruction(userMessage string) string {
	return fmt.Sprintf(
		"Classify the candidate's intent from this message. Decide whether they want to stop the interview "+
			"and how they are feeling.\n\nCandidate message: %q", userMessage)
}

func feedbackInstruction() string {
	return "Write the final report: real level, hiring recommendation, confirmed skills, knowledge gaps with " +
		"correct answers, soft-skill ratings, and a study roadmap."
}

func interviewStats(state *core.ConversationState) string {
	return fmt.Sprintf(
		"## INTERVIEW STATISTICS\nQuestions asked: %d\nTopics: %s\nHallucinations: %d\nOff-topic attempts: %d",
		state.QuestionsAsked,
		orNone(strings.Join(state.TopicsCovered, ", ")),
		len(state.DetectedHallucinations),
		state.OffTopicAttempts)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
