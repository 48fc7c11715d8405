// Package store holds the static question/answer catalogue served by the
// backend. The catalogue is loaded once at startup and is read-only after
// that, so concurrent request handlers never contend on it.
package store

import (
	"fmt"
	"sort"
)

// Media bundle kinds. The kind doubles as the JSON key the bundle is
// attached under in an answer payload.
const (
	KindImages = "images"
	KindVideos = "videos"
)

// MediaItem is a single attachment entry.
type MediaItem struct {
	URL  string `json:"url" yaml:"url"`
	Type string `json:"type" yaml:"type"`
	Alt  string `json:"alt" yaml:"alt"`
}

// MediaBundle groups the attachments registered for one question. A bundle
// is homogeneous: all items share the kind's media type.
type MediaBundle struct {
	Kind  string      `yaml:"kind"`
	Items []MediaItem `yaml:"items"`
}

// Section is one topical bucket of the catalogue. Questions are addressed
// 1-based: Questions[0] is question number 1.
type Section struct {
	Questions []string            `yaml:"questions"`
	Answers   map[int]string      `yaml:"answers"`
	Media     map[int]MediaBundle `yaml:"media"`
}

// Store is the immutable section catalogue.
type Store struct {
	sections map[string]Section
	names    []string
}

// New validates the catalogue and freezes it into a Store. Every answer and
// media index must address an existing question, and media bundles must be
// well formed.
func New(sections map[string]Section) (*Store, error) {
	names := make([]string, 0, len(sections))
	for name, sec := range sections {
		if name == "" {
			return nil, fmt.Errorf("store: section with empty name")
		}
		if len(sec.Questions) == 0 {
			return nil, fmt.Errorf("store: section %q has no questions", name)
		}
		for n := range sec.Answers {
			if n < 1 || n > len(sec.Questions) {
				return nil, fmt.Errorf("store: section %q: answer index %d out of range [1, %d]", name, n, len(sec.Questions))
			}
		}
		for n, bundle := range sec.Media {
			if n < 1 || n > len(sec.Questions) {
				return nil, fmt.Errorf("store: section %q: media index %d out of range [1, %d]", name, n, len(sec.Questions))
			}
			if err := validateBundle(bundle); err != nil {
				return nil, fmt.Errorf("store: section %q, question %d: %w", name, n, err)
			}
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return &Store{sections: sections, names: names}, nil
}

func validateBundle(b MediaBundle) error {
	var itemType string
	switch b.Kind {
	case KindImages:
		itemType = "image"
	case KindVideos:
		itemType = "video"
	default:
		return fmt.Errorf("unknown media kind %q", b.Kind)
	}
	if len(b.Items) == 0 {
		return fmt.Errorf("media bundle of kind %q has no items", b.Kind)
	}
	for i, item := range b.Items {
		if item.URL == "" {
			return fmt.Errorf("media item %d has no url", i)
		}
		if item.Type != itemType {
			return fmt.Errorf("media item %d type %q does not match bundle kind %q", i, item.Type, b.Kind)
		}
	}
	return nil
}

// Sections returns the registered section names in sorted order.
func (s *Store) Sections() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Get looks up a section by name.
func (s *Store) Get(name string) (Section, bool) {
	sec, ok := s.sections[name]
	return sec, ok
}
