package conversation

import "strings"

// DefaultTrigger is the substring that ends a conversation.
const DefaultTrigger = "bye"

// ResetPolicy decides when a completed exchange should clear the history.
// Matching is a plain substring check, so "goodbye" ends a conversation
// too. The user input is lowercased before matching; the model reply is
// inspected as generated.
type ResetPolicy struct {
	Trigger string
}

func NewResetPolicy(trigger string) ResetPolicy {
	if trigger == "" {
		trigger = DefaultTrigger
	}
	return ResetPolicy{Trigger: strings.ToLower(trigger)}
}

// Triggered reports whether the exchange contains the trigger substring.
func (p ResetPolicy) Triggered(userInput, reply string) bool {
	return strings.Contains(strings.ToLower(userInput), p.Trigger) ||
		strings.Contains(reply, p.Trigger)
}
