package employee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	cryptoutil "hrpayroll/internal/platform/crypto"
)

type FileStore struct {
	Path   string
	crypto *cryptoutil.Service
}

func NewFileStore(path string, crypto *cryptoutil.Service) *FileStore {
	return &FileStore{Path: path, crypto: crypto}
}

func (s *FileStore) Load(ctx context.Context) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, err
	}
	data, err = s.crypto.Decrypt(data)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	if len(data) == 0 {
		return []json.RawMessage{}, nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedRecord, s.Path, err)
	}
	if raws == nil {
		raws = []json.RawMessage{}
	}
	return raws, nil
}

// Save overwrites the file through a temp file in the same directory.
func (s *FileStore) Save(ctx context.Context, records []Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	data, err = s.crypto.Encrypt(data)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}
