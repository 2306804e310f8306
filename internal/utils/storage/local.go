package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes files under root and serves them from baseURL.
type LocalStorage struct {
	root    string
	baseURL string
}

func NewLocalStorage(root, baseURL string) *LocalStorage {
	return &LocalStorage{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (l *LocalStorage) UploadFile(_ context.Context, fileName string, data []byte, folder string, _ string) (string, error) {
	dir := filepath.Join(l.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, fileName), data, 0o644); err != nil {
		return "", err
	}
	return folder + "/" + fileName, nil
}

func (l *LocalStorage) DeleteFile(_ context.Context, objectKey string) error {
	err := os.Remove(filepath.Join(l.root, filepath.FromSlash(objectKey)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (l *LocalStorage) GetPublicLinkKey(objectKey string) string {
	return l.baseURL + "/" + objectKey
}

func (l *LocalStorage) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, l.baseURL+"/") {
		return ""
	}
	return strings.TrimPrefix(link, l.baseURL+"/")
}
