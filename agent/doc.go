// Package agent implements the four interview roles: the Interviewer who
// talks to the candidate, the Mentor who silently analyzes answers and
// calibrates difficulty, the VibeMaster who watches for stop intent, and the
// Manager who writes the final report. All four share the same contract:
// build a persona + bounded history + task instruction message sequence, then
// delegate generation to the resolver.
package agent
