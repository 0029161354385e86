package ai

// Default system prompts per agent type. Used when config supplies no
// override for a type.
var defaultPrompts = map[string]string{
	"general":    "You are a helpful AI assistant. Provide clear and concise responses to user queries.",
	"coding":     "You are a coding assistant. Help users with programming questions, code reviews, and technical solutions.",
	"creative":   "You are a creative writing assistant. Help users with creative writing, storytelling, and content creation.",
	"analytical": "You are an analytical assistant. Help users analyze data, solve problems, and make informed decisions.",
	"fitness":    "You are a fitness AI assistant specializing in gym equipment alternatives. When users ask about equipment that is unavailable or occupied, provide suitable alternatives based on muscle groups and training goals. Always explain why the alternative is suitable and mention safety tips when relevant.",
}

// PromptSet resolves agent types to system prompts. It is built once at
// startup and never mutated afterwards.
type PromptSet struct {
	prompts map[string]string
}

// NewPromptSet merges config overrides over the built-in defaults. The
// input map is copied, so later changes to it have no effect.
func NewPromptSet(overrides map[string]string) PromptSet {
	prompts := make(map[string]string, len(defaultPrompts)+len(overrides))
	for k, v := range defaultPrompts {
		prompts[k] = v
	}
	for k, v := range overrides {
		if v != "" {
			prompts[k] = v
		}
	}
	return PromptSet{prompts: prompts}
}

// Get returns the prompt for the given agent type, falling back to the
// general prompt when the type is unknown.
func (p PromptSet) Get(agentType string) string {
	if prompt, ok := p.prompts[agentType]; ok {
		return prompt
	}
	return p.prompts["general"]
}
