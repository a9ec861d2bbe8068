package llm

// Provider identifies an upstream provider the dispatcher holds
// credentials for.
type Provider string

const (
	ProviderDeepSeek Provider = "deepseek"
	ProviderOpenAI   Provider = "openai"
)

// Model maps a user-facing model identifier to the provider and API model
// name actually used on the wire. Vendor is the display name shown in the
// model picker; several user-facing entries intentionally route to the same
// underlying API model.
type Model struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Vendor      string   `json:"provider"`
	Description string   `json:"description"`
	MaxTokens   int      `json:"maxTokens"`
	Provider    Provider `json:"-"`
	APIModel    string   `json:"-"`
}

// DefaultModelID is the fallback for unknown model identifiers.
const DefaultModelID = "deepseek-chat"

// modelTable is the fixed registry. Order is the order shown to clients.
var modelTable = []Model{
	{
		ID:          "deepseek-chat",
		Name:        "DeepSeek-V3",
		Vendor:      "DeepSeek",
		Description: "General-purpose conversation model",
		MaxTokens:   8192,
		Provider:    ProviderDeepSeek,
		APIModel:    "deepseek-chat",
	},
	{
		ID:          "deepseek-reasoner",
		Name:        "DeepSeek-R1",
		Vendor:      "DeepSeek",
		Description: "Reasoning model for complex multi-step problems",
		MaxTokens:   8192,
		Provider:    ProviderDeepSeek,
		APIModel:    "deepseek-reasoner",
	},
	{
		ID:          "gpt-5-nano",
		Name:        "GPT-5 Nano",
		Vendor:      "OpenAI",
		Description: "Fast responses for everyday conversation",
		MaxTokens:   4096,
		Provider:    ProviderDeepSeek,
		APIModel:    "deepseek-chat",
	},
	{
		ID:          "gpt-5.2-instant",
		Name:        "GPT-5.2 Instant",
		Vendor:      "OpenAI",
		Description: "Balanced speed and quality",
		MaxTokens:   8192,
		Provider:    ProviderDeepSeek,
		APIModel:    "deepseek-chat",
	},
	{
		ID:          "gemini-3-pro",
		Name:        "Gemini 3 Pro",
		Vendor:      "Google",
		Description: "Strong multimodal capabilities",
		MaxTokens:   8192,
		Provider:    ProviderDeepSeek,
		APIModel:    "deepseek-chat",
	},
	{
		ID:          "claude-4.5",
		Name:        "Claude 4.5",
		Vendor:      "Anthropic",
		Description: "Long-form text and code",
		MaxTokens:   8192,
		Provider:    ProviderDeepSeek,
		APIModel:    "deepseek-chat",
	},
}

var modelIndex = func() map[string]Model {
	idx := make(map[string]Model, len(modelTable))
	for _, m := range modelTable {
		idx[m.ID] = m
	}
	return idx
}()

// Resolve looks up a model by its user-facing identifier. Unknown
// identifiers resolve to the default model rather than failing; the second
// return value reports whether the id was actually present.
func Resolve(modelID string) (Model, bool) {
	if m, ok := modelIndex[modelID]; ok {
		return m, true
	}
	return modelIndex[DefaultModelID], false
}

// Models returns the registry entries in display order.
func Models() []Model {
	out := make([]Model, len(modelTable))
	copy(out, modelTable)
	return out
}
