// Package model defines the normalized language-model client contract used
// throughout interviewmesh, plus an in-memory scripted implementation for
// tests. Provider adapters live in the openai and anthropic subpackages.
package model
