package conversation

import "sync"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in the conversation, immutable once appended.
// The JSON tags match the chat completions wire format so a Turn can be
// sent to the provider as-is.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// State of the history: Reset while empty, Active once a turn is appended.
type State int

const (
	StateReset State = iota
	StateActive
)

func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "reset"
}

// History is the ordered log of prior turns for one conversation.
// The fixed system instruction is never stored here; it is prepended at
// prompt assembly time. All operations hold an internal mutex so
// concurrent requests cannot corrupt turn ordering.
type History struct {
	mu    sync.Mutex
	turns []Turn
}

func NewHistory() *History {
	return &History{}
}

// Append adds a turn to the end of the log.
func (h *History) Append(t Turn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns, t)
}

// AppendExchange records a completed round trip as a user turn followed by
// the assistant turn, under a single lock so another request cannot
// interleave between the two.
func (h *History) AppendExchange(userInput, reply string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns,
		Turn{Role: RoleUser, Content: userInput},
		Turn{Role: RoleAssistant, Content: reply},
	)
}

// Snapshot returns a copy of the turns in insertion order.
func (h *History) Snapshot() []Turn {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Reset empties the log. Idempotent.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = nil
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns)
}

func (h *History) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.turns) == 0 {
		return StateReset
	}
	return StateActive
}
