package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"smartai-backend-go/internal/config"
	"smartai-backend-go/internal/models"
)

// Sampling parameters are fixed; clients cannot override them.
const (
	completionMaxTokens = 4096
	streamingMaxTokens  = 2048
	temperature         = 0.7
)

// ErrProviderNotConfigured is returned when the resolved provider has no
// API key in the environment.
var ErrProviderNotConfigured = errors.New("provider is not configured")

// Usage mirrors the provider's token accounting.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResult is the outcome of a blocking chat completion.
type ChatResult struct {
	Content string
	Usage   Usage
}

// ImageRequest describes one image generation call.
type ImageRequest struct {
	Prompt  string
	Size    string
	Quality string
	Style   string
}

// ImageResult is the outcome of an image generation call.
type ImageResult struct {
	URL           string
	RevisedPrompt string
}

// SpeechResult is the outcome of a speech synthesis call.
type SpeechResult struct {
	AudioBase64 string
	Format      string
}

// ChatClient issues chat completions against the provider resolved through
// the model registry.
type ChatClient interface {
	Complete(ctx context.Context, modelID string, messages []models.ChatMessage) (*ChatResult, error)
	// Stream opens a streamed completion and feeds the sink from a
	// background goroutine. A non-nil return means the stream never
	// opened; after a nil return the sink terminates the exchange.
	Stream(ctx context.Context, modelID string, messages []models.ChatMessage, sink *Sink) error
}

// ImageClient generates images.
type ImageClient interface {
	Generate(ctx context.Context, req ImageRequest) (*ImageResult, error)
}

// SpeechClient synthesizes and transcribes speech.
type SpeechClient interface {
	Synthesize(ctx context.Context, text, voice string, speed float64) (*SpeechResult, error)
	Transcribe(ctx context.Context, audioBase64, language, format string) (string, error)
}

// Dispatcher implements ChatClient, ImageClient and SpeechClient on top of
// the OpenAI wire format. DeepSeek is reached through the same client type
// with its own base URL; image and speech always go to OpenAI.
type Dispatcher struct {
	clients map[Provider]*openai.Client
	logger  *zap.Logger
}

// NewDispatcher builds provider clients from the configured API keys.
// Providers without a key are absent from the dispatch table and surface
// ErrProviderNotConfigured when resolved.
func NewDispatcher(appConfig *config.Config, logger *zap.Logger) *Dispatcher {
	clients := make(map[Provider]*openai.Client)
	if appConfig.OpenAIAPIKey != "" {
		clients[ProviderOpenAI] = openai.NewClient(appConfig.OpenAIAPIKey)
	}
	if appConfig.DeepSeekAPIKey != "" {
		dsConfig := openai.DefaultConfig(appConfig.DeepSeekAPIKey)
		dsConfig.BaseURL = appConfig.DeepSeekBaseURL
		clients[ProviderDeepSeek] = openai.NewClientWithConfig(dsConfig)
	}
	return &Dispatcher{clients: clients, logger: logger}
}

func (d *Dispatcher) clientFor(provider Provider) (*openai.Client, error) {
	client, ok := d.clients[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotConfigured, provider)
	}
	return client, nil
}

func toWireMessages(messages []models.ChatMessage) []openai.ChatCompletionMessage {
	wire := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		wire[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}
	return wire
}

// Complete issues one non-streaming chat completion and returns the first
// choice's text.
func (d *Dispatcher) Complete(ctx context.Context, modelID string, messages []models.ChatMessage) (*ChatResult, error) {
	model, _ := Resolve(modelID)
	client, err := d.clientFor(model.Provider)
	if err != nil {
		return nil, err
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model.APIModel,
		Messages:    toWireMessages(messages),
		MaxTokens:   completionMaxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed for model '%s': %w", model.APIModel, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion for model '%s' returned no choices", model.APIModel)
	}

	return &ChatResult{
		Content: resp.Choices[0].Message.Content,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// Stream opens a streamed completion and relays each delta into the sink
// from a background goroutine. Raw carries the provider-format chunk JSON
// so relay callers can forward it unmodified.
func (d *Dispatcher) Stream(ctx context.Context, modelID string, messages []models.ChatMessage, sink *Sink) error {
	model, _ := Resolve(modelID)
	client, err := d.clientFor(model.Provider)
	if err != nil {
		return err
	}

	stream, err := client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       model.APIModel,
		Messages:    toWireMessages(messages),
		MaxTokens:   streamingMaxTokens,
		Temperature: temperature,
		Stream:      true,
	})
	if err != nil {
		return fmt.Errorf("failed to open stream for model '%s': %w", model.APIModel, err)
	}

	go func() {
		defer stream.Close()
		for {
			resp, recvErr := stream.Recv()
			if errors.Is(recvErr, io.EOF) {
				sink.Close()
				return
			}
			if recvErr != nil {
				d.logger.Warn("upstream stream terminated abnormally",
					zap.String("model", model.APIModel), zap.Error(recvErr))
				sink.Fail(recvErr)
				return
			}

			raw, marshalErr := json.Marshal(resp)
			if marshalErr != nil {
				// Drop the malformed chunk and keep the stream alive.
				continue
			}
			var content string
			if len(resp.Choices) > 0 {
				content = resp.Choices[0].Delta.Content
			}
			if pushErr := sink.Push(ctx, Chunk{Raw: raw, Content: content}); pushErr != nil {
				sink.Fail(pushErr)
				return
			}
		}
	}()
	return nil
}

// Generate creates one image with DALL-E 3 and returns the hosted URL.
func (d *Dispatcher) Generate(ctx context.Context, req ImageRequest) (*ImageResult, error) {
	client, err := d.clientFor(ProviderOpenAI)
	if err != nil {
		return nil, err
	}

	resp, err := client.CreateImage(ctx, openai.ImageRequest{
		Model:   openai.CreateImageModelDallE3,
		Prompt:  req.Prompt,
		N:       1,
		Size:    req.Size,
		Quality: req.Quality,
		Style:   req.Style,
	})
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return nil, errors.New("image generation returned no image URL")
	}

	return &ImageResult{
		URL:           resp.Data[0].URL,
		RevisedPrompt: resp.Data[0].RevisedPrompt,
	}, nil
}

// Synthesize converts text to speech with tts-1 and returns base64 MP3.
func (d *Dispatcher) Synthesize(ctx context.Context, text, voice string, speed float64) (*SpeechResult, error) {
	client, err := d.clientFor(ProviderOpenAI)
	if err != nil {
		return nil, err
	}

	resp, err := client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.TTSModel1,
		Input: text,
		Voice: openai.SpeechVoice(voice),
		Speed: speed,
	})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read synthesized audio: %w", err)
	}

	return &SpeechResult{
		AudioBase64: base64.StdEncoding.EncodeToString(audio),
		Format:      "mp3",
	}, nil
}

// Transcribe converts base64-encoded audio to text with whisper-1.
func (d *Dispatcher) Transcribe(ctx context.Context, audioBase64, language, format string) (string, error) {
	client, err := d.clientFor(ProviderOpenAI)
	if err != nil {
		return "", err
	}

	audio, err := base64.StdEncoding.DecodeString(audioBase64)
	if err != nil {
		return "", fmt.Errorf("invalid base64 audio payload: %w", err)
	}
	if format == "" {
		format = "webm"
	}

	resp, err := client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   bytes.NewReader(audio),
		FilePath: "audio." + format,
		Language: language,
	})
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	return resp.Text, nil
}

// Interface compliance.
var (
	_ ChatClient   = (*Dispatcher)(nil)
	_ ImageClient  = (*Dispatcher)(nil)
	_ SpeechClient = (*Dispatcher)(nil)
)
