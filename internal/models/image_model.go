package models

import "time"

// GeneratedImage is a record of one image generation, stored under
// users/{uid}/images/{id}. The URL points at the provider-hosted asset.
type GeneratedImage struct {
	ID            string    `json:"id" firestore:"-"`
	Prompt        string    `json:"prompt" firestore:"prompt"`
	RevisedPrompt string    `json:"revisedPrompt,omitempty" firestore:"revisedPrompt,omitempty"`
	URL           string    `json:"url" firestore:"url"`
	Size          string    `json:"size" firestore:"size"`
	Quality       string    `json:"quality" firestore:"quality"`
	Style         string    `json:"style" firestore:"style"`
	CreatedAt     time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}
