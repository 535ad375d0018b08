// Package prompt composes the message list sent to the model.
package prompt

import "github.com/nurashi/Deskbot/internal/conversation"

// Assemble builds the ordered message list for one model call: the fixed
// system instruction, the prior turns, then the new user message. The
// snapshot is never mutated.
func Assemble(systemInstruction string, snapshot []conversation.Turn, userInput string) []conversation.Turn {
	messages := make([]conversation.Turn, 0, len(snapshot)+2)
	messages = append(messages, conversation.Turn{Role: conversation.RoleSystem, Content: systemInstruction})
	messages = append(messages, snapshot...)
	messages = append(messages, conversation.Turn{Role: conversation.RoleUser, Content: userInput})
	return messages
}
