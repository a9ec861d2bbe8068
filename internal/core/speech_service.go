package core

import (
	"context"
	"fmt"

	"smartai-backend-go/internal/llm"
	"smartai-backend-go/internal/models"
)

const (
	defaultVoice       = "alloy"
	defaultSpeechSpeed = 1.0
	maxSpeechInputLen  = 4096
)

type speechService struct {
	speechClient llm.SpeechClient
}

// NewSpeechService creates a new speech service.
func NewSpeechService(speechClient llm.SpeechClient) SpeechService {
	return &speechService{speechClient: speechClient}
}

func (s *speechService) TextToSpeech(ctx context.Context, req *models.TextToSpeechRequest) (*llm.SpeechResult, error) {
	if req.Text == "" {
		return nil, fmt.Errorf("%w: text must not be empty", ErrInvalidArgument)
	}
	if len(req.Text) > maxSpeechInputLen {
		return nil, fmt.Errorf("%w: text exceeds %d characters", ErrInvalidArgument, maxSpeechInputLen)
	}

	voice := req.Voice
	if voice == "" {
		voice = defaultVoice
	}
	speed := req.Speed
	if speed == 0 {
		speed = defaultSpeechSpeed
	}
	return s.speechClient.Synthesize(ctx, req.Text, voice, speed)
}

func (s *speechService) SpeechToText(ctx context.Context, req *models.SpeechToTextRequest) (string, error) {
	if req.AudioBase64 == "" {
		return "", fmt.Errorf("%w: audio payload must not be empty", ErrInvalidArgument)
	}
	return s.speechClient.Transcribe(ctx, req.AudioBase64, req.Language, req.Format)
}
