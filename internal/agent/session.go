package agent

import (
	"github.com/cloudwego/eino/schema"
)

// Session is an immutable snapshot of one agent conversation: the message
// history plus the number of completed steps. Appending returns a new
// Session; the receiver is never modified. This keeps every loop iteration
// inspectable after the fact and makes the loop trivially testable.
type Session struct {
	messages []*schema.Message
	step     int
}

// NewSession creates a Session seeded with a system prompt and the briefing
func NewSession(systemPrompt, briefing string) Session {
	return Session{
		messages: []*schema.Message{
			{Role: schema.System, Content: systemPrompt},
			{Role: schema.User, Content: briefing},
		},
	}
}

// Messages returns a copy of the message history
func (s Session) Messages() []*schema.Message {
	out := make([]*schema.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Step returns the number of completed steps
func (s Session) Step() int {
	return s.step
}

// WithMessages returns a new Session with the given messages appended
func (s Session) WithMessages(msgs ...*schema.Message) Session {
	combined := make([]*schema.Message, 0, len(s.messages)+len(msgs))
	combined = append(combined, s.messages...)
	combined = append(combined, msgs...)
	return Session{messages: combined, step: s.step}
}

// Advanced returns a new Session with the step counter incremented
func (s Session) Advanced() Session {
	return Session{messages: s.messages, step: s.step + 1}
}
