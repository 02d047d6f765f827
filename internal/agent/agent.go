package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"Finsight/internal/logging"
	"Finsight/internal/tools"

	"go.uber.org/zap"
)

const (
	maxRetries       = 3
	DefaultMaxRounds = 5
)

// Instructions define the analyst persona and how it must use its tools.
var Instructions = []string{
	"You are an expert Financial Data Analyst.",
	"Your job is to help users analyse a table of financial transactions called `df`.",
	"To answer questions you MUST use the `analyze_data` tool, writing the appropriate expression.",
	"NEVER answer from general knowledge. Your answer MUST be the result of running the tool.",
	"If the user asks for a chart, use the `generate_chart` tool.",
	"If an expression you wrote returns an error, read the error and try again with a corrected expression.",
	"Be clear and direct in your final answer to the user.",
	"When presenting numbers such as sums or averages, format them clearly (e.g. 'Total revenue was $15,000.00').",
}

// Answer is the outcome of one question.
type Answer struct {
	Text   string
	Charts []string
	Rounds int
}

// Analyst answers questions by letting an LLM call the registered tools.
type Analyst struct {
	Client       LLMClient
	Tools        *tools.Registry
	Conversation *Conversation
	MaxRounds    int
	Backoff      time.Duration
	Log          *zap.Logger
}

func NewAnalyst(client LLMClient, registry *tools.Registry, log *zap.Logger) *Analyst {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyst{
		Client:       client,
		Tools:        registry,
		Conversation: NewConversation(20),
		MaxRounds:    DefaultMaxRounds,
		Backoff:      time.Second,
		Log:          log,
	}
}

// Ask runs the tool loop for question until the model answers without
// calling a tool, or MaxRounds tool rounds have run.
func (a *Analyst) Ask(ctx context.Context, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("empty question")
	}

	answer := &Answer{}
	var scratch strings.Builder

	for {
		prompt := a.buildPrompt(question, scratch.String())
		reply, err := a.generate(ctx, prompt)
		if err != nil {
			return nil, err
		}

		if !tools.HasToolCalls(reply) {
			answer.Text = strings.TrimSpace(reply)
			break
		}
		calls := tools.ParseToolCalls(reply)

		if answer.Rounds >= a.maxRounds() {
			a.Log.Warn("tool round limit reached", zap.Int("rounds", answer.Rounds))
			answer.Text = tools.StripToolCalls(reply)
			if answer.Text == "" {
				answer.Text = "I could not finish the analysis within the allowed number of tool calls."
			}
			break
		}

		answer.Rounds++
		a.Log.Debug("tool round",
			zap.Int("round", answer.Rounds),
			zap.Int("calls", len(calls)),
		)

		results := a.Tools.Execute(calls)
		for _, r := range results {
			if path, ok := strings.CutPrefix(r.Output, tools.ChartSavedPrefix); ok {
				answer.Charts = append(answer.Charts, path)
			}
		}

		scratch.WriteString("\n\nAnalyst:\n")
		scratch.WriteString(reply)
		scratch.WriteString(tools.FormatToolResults(results))
	}

	a.Conversation.Add(question, answer.Text, answer.Charts...)
	return answer, nil
}

func (a *Analyst) maxRounds() int {
	if a.MaxRounds <= 0 {
		return DefaultMaxRounds
	}
	return a.MaxRounds
}

// generate calls the model, retrying transient failures with linear back-off.
func (a *Analyst) generate(ctx context.Context, prompt string) (string, error) {
	var response string
	var err error

	attempt := 1
	for ; attempt <= maxRetries; attempt++ {
		response, err = a.Client.Generate(ctx, prompt)
		if err == nil {
			a.Log.Debug("llm reply", zap.String("reply", logging.Truncate(response, 200)))
			return response, nil
		}
		a.Log.Warn("llm call failed", zap.Int("attempt", attempt), zap.Error(err))

		if !retryable(err) || attempt == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(a.Backoff * time.Duration(attempt)):
		}
	}

	return "", fmt.Errorf("analyst failed after %d attempts: %w", min(attempt, maxRetries), err)
}

func (a *Analyst) buildPrompt(question, scratch string) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(Instructions, "\n"))
	sb.WriteString("\n\n")
	sb.WriteString(tools.FormatToolsForPrompt(a.Tools.All()))

	if history := a.Conversation.Transcript(); history != "" {
		sb.WriteString("\n")
		sb.WriteString(history)
	}

	sb.WriteString("\nUser: ")
	sb.WriteString(question)
	sb.WriteString(scratch)
	return sb.String()
}
