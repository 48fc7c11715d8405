// Package session models the client-side conversation flow: pick a section,
// pick a question, read the answer. The machine is a plain value driven by
// user actions and transport completions, so the whole flow is testable
// without any UI attached.
package session

import (
	"fmt"

	"github.com/campusgate/faqbot-backend/internal/faq"
	"github.com/campusgate/faqbot-backend/internal/store"
)

// Phase is the machine's control state. Operations are only allowed in the
// phases listed on each transition; everything else is ignored.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSectionLoading
	PhaseSectionReady
	PhaseAnswerLoading
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSectionLoading:
		return "section-loading"
	case PhaseSectionReady:
		return "section-ready"
	case PhaseAnswerLoading:
		return "answer-loading"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Role tags who a transcript entry belongs to.
type Role int

const (
	RoleBot Role = iota
	RoleUser
	RoleInfo
)

// Entry is one line of the conversation transcript.
type Entry struct {
	Role  Role
	Text  string
	Media []store.MediaItem
	// Pending marks the transient "loading" placeholder that gets replaced
	// by the answer (or removed on failure).
	Pending bool
}

// Machine holds the selection state. Zero value is a machine in PhaseIdle
// with an empty transcript; use New to start with a greeting.
type Machine struct {
	phase      Phase
	section    string
	questions  []string
	transcript []Entry
}

func New(welcome string) *Machine {
	m := &Machine{}
	if welcome != "" {
		m.append(Entry{Role: RoleBot, Text: welcome})
	}
	return m
}

func (m *Machine) Phase() Phase        { return m.phase }
func (m *Machine) Section() string     { return m.section }
func (m *Machine) Questions() []string { return m.questions }

// Busy reports whether a request is outstanding. While true, every
// section/question action is ignored rather than queued.
func (m *Machine) Busy() bool {
	return m.phase == PhaseSectionLoading || m.phase == PhaseAnswerLoading
}

// Transcript returns the conversation entries in order.
func (m *Machine) Transcript() []Entry {
	out := make([]Entry, len(m.transcript))
	copy(out, m.transcript)
	return out
}

func (m *Machine) append(e Entry) {
	m.transcript = append(m.transcript, e)
}

// SelectSection starts loading a section's questions. Returns false when
// the pick was ignored because a request is already in flight.
func (m *Machine) SelectSection(section string) bool {
	if m.Busy() {
		return false
	}
	m.phase = PhaseSectionLoading
	m.section = section
	m.questions = nil
	m.append(Entry{Role: RoleUser, Text: "Selected section: " + section})
	return true
}

// SectionLoaded completes a section load.
func (m *Machine) SectionLoaded(questions []string) {
	if m.phase != PhaseSectionLoading {
		return
	}
	m.questions = questions
	m.phase = PhaseSectionReady
}

// SectionFailed aborts a section load: the question picker goes away and
// the user may retry by re-selecting.
func (m *Machine) SectionFailed(error) {
	if m.phase != PhaseSectionLoading {
		return
	}
	m.section = ""
	m.questions = nil
	m.phase = PhaseIdle
	m.append(Entry{Role: RoleBot, Text: "Error loading questions. Please try again."})
}

// SelectQuestion starts fetching the answer for a 1-based question number.
// The chosen question is echoed immediately, before the network resolves,
// followed by a pending placeholder. Returns false when ignored (busy, no
// section loaded, or the number is out of range).
func (m *Machine) SelectQuestion(number int) bool {
	if m.phase != PhaseSectionReady {
		return false
	}
	if number < 1 || number > len(m.questions) {
		return false
	}
	m.phase = PhaseAnswerLoading
	m.append(Entry{Role: RoleUser, Text: m.questions[number-1]})
	m.append(Entry{Role: RoleBot, Text: "Loading response...", Pending: true})
	return true
}

// AnswerReceived replaces the pending placeholder with the answer text and
// appends any media items as separate entries in arrival order.
func (m *Machine) AnswerReceived(payload faq.AnswerPayload) {
	if m.phase != PhaseAnswerLoading {
		return
	}
	m.removePending()
	m.append(Entry{Role: RoleBot, Text: payload.Response})

	items := payload.Images
	if len(payload.Videos) > 0 {
		items = payload.Videos
	}
	for _, item := range items {
		m.append(Entry{Role: RoleBot, Media: []store.MediaItem{item}})
	}
	m.phase = PhaseSectionReady
}

// AnswerFailed removes the placeholder, reports the failure, and returns
// to the question picker.
func (m *Machine) AnswerFailed(error) {
	if m.phase != PhaseAnswerLoading {
		return
	}
	m.removePending()
	m.append(Entry{Role: RoleBot, Text: "Error getting response. Please try again."})
	m.phase = PhaseSectionReady
}

// SetOnline records a connectivity change. Purely informational: the
// control flow phase never moves.
func (m *Machine) SetOnline(online bool) {
	if online {
		m.append(Entry{Role: RoleInfo, Text: "Connection restored. You can continue chatting."})
		return
	}
	m.append(Entry{Role: RoleInfo, Text: "You are currently offline. Please check your internet connection."})
}

func (m *Machine) removePending() {
	for i := len(m.transcript) - 1; i >= 0; i-- {
		if m.transcript[i].Pending {
			m.transcript = append(m.transcript[:i], m.transcript[i+1:]...)
			return
		}
	}
}
