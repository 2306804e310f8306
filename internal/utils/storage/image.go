package storage

import (
	"encoding/base64"
	"errors"
	"strings"
)

var AllowImage = []string{"png", "jpeg", "jpg", "gif", "webp"}

var ErrInvalidImage = errors.New("image must be a base64 data URI of an allowed type")

// DecodeImage parses "data:image/<ext>;base64,<payload>".
func DecodeImage(dataURI string) ([]byte, string, error) {
	header, payload, ok := strings.Cut(dataURI, ";base64,")
	if !ok || !strings.HasPrefix(header, "data:image/") {
		return nil, "", ErrInvalidImage
	}

	ext := strings.ToLower(strings.TrimPrefix(header, "data:image/"))
	allowed := false
	for _, a := range AllowImage {
		if ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, "", ErrInvalidImage
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return nil, "", ErrInvalidImage
	}
	return data, ext, nil
}
