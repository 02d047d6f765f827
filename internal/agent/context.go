package agent

import (
	"fmt"
	"strings"
	"time"
)

type Turn struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Charts    []string  `json:"charts,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation keeps the question/answer history of a chat session.
type Conversation struct {
	History  []Turn
	MaxTurns int // 0 keeps everything
}

func NewConversation(maxTurns int) *Conversation {
	return &Conversation{
		History:  []Turn{},
		MaxTurns: maxTurns,
	}
}

func (c *Conversation) Add(question, answer string, charts ...string) {
	c.History = append(c.History, Turn{
		Question:  question,
		Answer:    answer,
		Charts:    charts,
		Timestamp: time.Now(),
	})
	if c.MaxTurns > 0 && len(c.History) > c.MaxTurns {
		c.History = c.History[len(c.History)-c.MaxTurns:]
	}
}

// Transcript renders the history for inclusion in a prompt.
func (c *Conversation) Transcript() string {
	if len(c.History) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Conversation so far:\n\n")

	for _, turn := range c.History {
		sb.WriteString(fmt.Sprintf("User: %s\nAnalyst: %s\n\n", turn.Question, turn.Answer))
	}

	return sb.String()
}

func (c *Conversation) LastAnswer() string {
	if len(c.History) == 0 {
		return ""
	}
	return c.History[len(c.History)-1].Answer
}

// Restore replaces the history with turns, keeping at most MaxTurns.
func (c *Conversation) Restore(turns []Turn) {
	c.History = append([]Turn{}, turns...)
	if c.MaxTurns > 0 && len(c.History) > c.MaxTurns {
		c.History = c.History[len(c.History)-c.MaxTurns:]
	}
}

func (c *Conversation) Clear() {
	c.History = []Turn{}
}
