package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"btcpulse/internal/domain"
)

const (
	MarketFile = "market.json"
	NewsFile   = "news.json"
)

// FileStore persists the dashboard artifacts. Writes go through a temp file
// and rename so the dashboard never observes a partial document.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) WriteMarket(doc *domain.MarketDocument) error {
	return s.writeJSON(MarketFile, doc)
}

func (s *FileStore) ReadMarket() (*domain.MarketDocument, error) {
	var doc domain.MarketDocument
	if err := s.readJSON(MarketFile, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *FileStore) WriteNews(doc *domain.NewsDocument) error {
	return s.writeJSON(NewsFile, doc)
}

func (s *FileStore) ReadNews() (*domain.NewsDocument, error) {
	var doc domain.NewsDocument
	if err := s.readJSON(NewsFile, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *FileStore) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	data = append(data, '\n')

	target := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
