// This file defines the conversation transcript: the append-only message
// history replayed to the language model on every turn.
package agent

// Transcript owns the ordered sequence of messages forming the full context
// sent to the model on each turn. It is append-only: prior messages are
// never deleted or mutated, and insertion order is the conversation order.
// Every piece of information the model can condition on (user goal, prior
// answers, tool outputs) must pass through an appended message.
type Transcript struct {
	messages []Message
}

// NewTranscript creates a transcript seeded with the provided messages
// (typically a single system message).
func NewTranscript(messages ...Message) *Transcript {
	transcript := &Transcript{}
	transcript.messages = append(transcript.messages, messages...)
	return transcript
}

// Append adds a message to the end of the transcript. It always succeeds.
func (t *Transcript) Append(message Message) {
	t.messages = append(t.messages, message)
}

// Messages returns the full ordered message sequence for submission to the
// model. The returned slice is a copy; mutating it does not affect the
// transcript.
func (t *Transcript) Messages() []Message {
	messages := make([]Message, len(t.messages))
	copy(messages, t.messages)
	return messages
}

// Len returns the number of messages in the transcript.
func (t *Transcript) Len() int {
	return len(t.messages)
}
