package tools

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Tool interface for all executable tools
type Tool interface {
	Name() string
	Description() string
	Execute(input string) (string, error)
}

// Registry holds the tools available to one analyst session
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	log   *zap.Logger
}

// NewRegistry creates a registry holding the given tools. A nil logger
// disables tool call logging.
func NewRegistry(log *zap.Logger, tools ...Tool) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Registry{
		tools: make(map[string]Tool),
		log:   log,
	}
	for _, tool := range tools {
		r.Register(tool)
	}
	return r
}

// Register adds a tool, replacing any tool with the same name
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name()] = tool
}

// Get retrieves a tool by name
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// All returns every registered tool, ordered by name
func (r *Registry) All() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		result = append(result, tool)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result
}

// Names returns all tool names, sorted
func (r *Registry) Names() []string {
	all := r.All()
	names := make([]string, len(all))
	for i, tool := range all {
		names[i] = tool.Name()
	}
	return names
}

// FormatToolsForPrompt creates a description of available tools for the LLM
func FormatToolsForPrompt(tools []Tool) string {
	if len(tools) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("You have access to the following tools:\n\n")
	for _, tool := range tools {
		sb.WriteString(fmt.Sprintf("- **%s**: %s\n", tool.Name(), tool.Description()))
	}
	sb.WriteString("\nTo use a tool, write your response in this format:\n")
	sb.WriteString("```tool:<tool_name>\n<input for the tool>\n```\n")
	sb.WriteString("\nThe tool output will be provided to you for further processing.\n")
	return sb.String()
}
