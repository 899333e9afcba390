package handle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File persists handles as small JSON files under a directory, one file
// per slot. The default backend for local runs.
type File struct {
	dir string
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create handle dir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) Slot(name string) Store {
	return &fileSlot{path: filepath.Join(f.dir, Key+"-"+sanitizeSlot(name)+".json")}
}

type fileSlot struct {
	path string
}

type fileRecord struct {
	CartID string `json:"cartId"`
}

func (s *fileSlot) Load(_ context.Context) (string, bool, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read handle: %w", err)
	}
	var rec fileRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return "", false, fmt.Errorf("decode handle: %w", err)
	}
	if rec.CartID == "" {
		return "", false, nil
	}
	return rec.CartID, true, nil
}

func (s *fileSlot) Save(_ context.Context, cartID string) error {
	raw, err := json.Marshal(fileRecord{CartID: cartID})
	if err != nil {
		return fmt.Errorf("encode handle: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write handle: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("commit handle: %w", err)
	}
	return nil
}

func (s *fileSlot) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear handle: %w", err)
	}
	return nil
}

func sanitizeSlot(name string) string {
	if name == "" {
		return DefaultSlot
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
