package locale

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Translator looks up user-facing strings.
type Translator interface {
	// T returns the string for key, or key itself when it is missing.
	T(key string) string
	// StatusFilterItems returns the conversation status filters in display order.
	StatusFilterItems() []StatusItem
}

// StatusItem is one conversation status filter entry.
type StatusItem struct {
	ID   string `yaml:"id" json:"id"`
	Text string `yaml:"text" json:"text"`
}

// Bundle is a Translator backed by a single YAML locale file.
type Bundle struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
	Statuses []StatusItem      `yaml:"status_filter_items"`
}

// Load reads a locale bundle from path.
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locale %s: %w", path, err)
	}
	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse locale %s: %w", path, err)
	}
	if b.Messages == nil {
		b.Messages = make(map[string]string)
	}
	return &b, nil
}

func (b *Bundle) T(key string) string {
	if s, ok := b.Messages[key]; ok {
		return s
	}
	return key
}

func (b *Bundle) StatusFilterItems() []StatusItem {
	out := make([]StatusItem, len(b.Statuses))
	copy(out, b.Statuses)
	return out
}
