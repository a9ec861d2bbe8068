package chatclient

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartai-backend-go/internal/models"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "conversations.json")
	fs := NewFileStore(path)

	require.NoError(t, fs.Save(&State{
		Conversations: []*models.Conversation{{ID: "c1", Title: "Trip planning"}},
		SelectedID:    "c1",
		Model:         "deepseek-chat",
	}))

	restored, err := fs.Load()
	require.NoError(t, err)
	require.Len(t, restored.Conversations, 1)
	assert.Equal(t, "Trip planning", restored.Conversations[0].Title)
	assert.Equal(t, "c1", restored.SelectedID)
	assert.Equal(t, "deepseek-chat", restored.Model)
}

func TestFileStoreMissingFileStartsEmpty(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "missing.json"))

	state, err := fs.Load()
	require.NoError(t, err)
	assert.Empty(t, state.Conversations)
	assert.Empty(t, state.SelectedID)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}
