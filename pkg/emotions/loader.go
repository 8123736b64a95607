package emotions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadAdvice reads an advice book from a JSON or YAML file. The format is
// picked from the extension; anything other than .yaml/.yml is read as JSON.
//
// The file is a flat object of label name to advice text:
//
//	{"Happy": "Keep it up!", "Sad": "Talk to someone you trust."}
func LoadAdvice(path string) (*AdviceBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrAdviceNotFound, path)
		}
		return nil, fmt.Errorf("read advice file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseAdviceYAML(data)
	default:
		return ParseAdviceJSON(data)
	}
}

// ParseAdviceJSON parses a JSON advice object.
func ParseAdviceJSON(data []byte) (*AdviceBook, error) {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAdvice, err)
	}
	return buildBook(raw)
}

// ParseAdviceYAML parses a YAML advice mapping.
func ParseAdviceYAML(data []byte) (*AdviceBook, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAdvice, err)
	}
	return buildBook(raw)
}

func buildBook(raw map[string]string) (*AdviceBook, error) {
	book := NewAdviceBook(raw)
	if book.Len() == 0 {
		return nil, ErrEmptyAdvice
	}
	return book, nil
}
