package storage

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeImage(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("fake-png"))

	data, ext, err := DecodeImage("data:image/png;base64," + payload)
	require.NoError(t, err)
	assert.Equal(t, "png", ext)
	assert.Equal(t, []byte("fake-png"), data)

	for _, bad := range []string{
		"",
		"plain text",
		"data:text/plain;base64," + payload,
		"data:image/bmp;base64," + payload,
		"data:image/png;base64,@@@",
	} {
		_, _, err := DecodeImage(bad)
		assert.ErrorIs(t, err, ErrInvalidImage, bad)
	}
}

func TestLocalStorageRoundTrip(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStorage(root, "http://localhost:8000/media/")
	ctx := context.Background()

	key, err := s.UploadFile(ctx, "a.png", []byte("img"), "recipes", "image/png")
	require.NoError(t, err)
	assert.Equal(t, "recipes/a.png", key)

	got, err := os.ReadFile(filepath.Join(root, "recipes", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), got)

	link := s.GetPublicLinkKey(key)
	assert.Equal(t, "http://localhost:8000/media/recipes/a.png", link)
	assert.Equal(t, key, s.GetObjectKeyFromLink(link))
	assert.Equal(t, "", s.GetObjectKeyFromLink("https://elsewhere/x.png"))

	require.NoError(t, s.DeleteFile(ctx, key))
	require.NoError(t, s.DeleteFile(ctx, key))
	_, err = os.Stat(filepath.Join(root, "recipes", "a.png"))
	assert.True(t, os.IsNotExist(err))
}
