// Package faq answers catalogue queries: listing a section's questions and
// composing the canned answer for a chosen question number.
package faq

import (
	"errors"

	"github.com/campusgate/faqbot-backend/internal/store"
)

var (
	// ErrUnknownSection reports a section name absent from the catalogue.
	ErrUnknownSection = errors.New("unknown section")
	// ErrUnknownQuestion reports a question number with no canned answer,
	// including numbers outside the section's question range.
	ErrUnknownQuestion = errors.New("unknown question")
)

// AnswerPayload is the composed result for one question. At most one of
// Images/Videos is set, matching the registered bundle's kind; when no
// bundle exists both stay nil and the keys are dropped from the JSON form.
type AnswerPayload struct {
	Response string            `json:"response"`
	Images   []store.MediaItem `json:"images,omitempty"`
	Videos   []store.MediaItem `json:"videos,omitempty"`
}

// Service resolves queries against a loaded catalogue. Stateless besides
// the read-only store reference.
type Service struct {
	store *store.Store
}

func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// Sections returns the valid section names in sorted order.
func (s *Service) Sections() []string {
	return s.store.Sections()
}

// ListQuestions returns a section's questions in catalogue order. Index i
// of the result is question number i+1 for Answer.
func (s *Service) ListQuestions(section string) ([]string, error) {
	sec, ok := s.store.Get(section)
	if !ok {
		return nil, ErrUnknownSection
	}
	return sec.Questions, nil
}

// Answer composes the canned answer for (section, questionNumber), with the
// registered media bundle attached under its kind when one exists.
func (s *Service) Answer(section string, questionNumber int) (AnswerPayload, error) {
	sec, ok := s.store.Get(section)
	if !ok {
		return AnswerPayload{}, ErrUnknownSection
	}
	if questionNumber < 1 || questionNumber > len(sec.Questions) {
		return AnswerPayload{}, ErrUnknownQuestion
	}
	text, ok := sec.Answers[questionNumber]
	if !ok {
		return AnswerPayload{}, ErrUnknownQuestion
	}

	payload := AnswerPayload{Response: text}
	if bundle, ok := sec.Media[questionNumber]; ok {
		switch bundle.Kind {
		case store.KindImages:
			payload.Images = bundle.Items
		case store.KindVideos:
			payload.Videos = bundle.Items
		}
	}
	return payload, nil
}
