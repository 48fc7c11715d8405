// Package tui is the interactive terminal chat client. Keyboard input and
// transport completions are translated into transitions on the selection
// machine; the view is a pure render of machine state.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/campusgate/faqbot-backend/internal/client"
	"github.com/campusgate/faqbot-backend/internal/faq"
	"github.com/campusgate/faqbot-backend/internal/session"
)

const welcomeMessage = "Welcome to the campus FAQ chatbot! Please select a category to get started."

// QuestionsLoaded completes a section load.
type QuestionsLoaded struct {
	Questions []string
	Err       error
}

// AnswerLoaded completes an answer fetch.
type AnswerLoaded struct {
	Payload faq.AnswerPayload
	Err     error
}

type focus int

const (
	focusSections focus = iota
	focusQuestions
)

// App is the bubbletea model for the chat client.
type App struct {
	styles  *Styles
	machine *session.Machine
	api     *client.Client
	ctx     context.Context

	sections []string
	cursor   int
	focus    focus
	spinner  spinner.Model

	width  int
	height int
}

func NewApp(api *client.Client, sections []string) *App {
	styles := DefaultStyles()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Info
	return &App{
		styles:   styles,
		machine:  session.New(welcomeMessage),
		api:      api,
		ctx:      context.Background(),
		sections: sections,
		spinner:  sp,
		width:    80,
		height:   24,
	}
}

// WithContext sets the context used for API calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Machine exposes the underlying selection machine. Used in tests.
func (a *App) Machine() *session.Machine { return a.machine }

func (a *App) Init() tea.Cmd {
	return a.spinner.Tick
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case QuestionsLoaded:
		if msg.Err != nil {
			a.machine.SectionFailed(msg.Err)
			a.focus = focusSections
		} else {
			a.machine.SectionLoaded(msg.Questions)
			a.focus = focusQuestions
			a.cursor = 0
		}
		return a, nil

	case AnswerLoaded:
		if msg.Err != nil {
			a.machine.AnswerFailed(msg.Err)
		} else {
			a.machine.AnswerReceived(msg.Payload)
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return a, tea.Quit
	}

	// The loading guard: while a request is in flight every selection key
	// is swallowed, never queued.
	if a.machine.Busy() {
		return a, nil
	}

	switch msg.String() {
	case "tab":
		if a.focus == focusQuestions {
			a.focus = focusSections
		} else if len(a.machine.Questions()) > 0 {
			a.focus = focusQuestions
		}
		a.cursor = 0
		return a, nil

	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case "down", "j":
		if a.cursor < a.listLen()-1 {
			a.cursor++
		}
		return a, nil

	case "enter":
		return a.handleEnter()
	}

	return a, nil
}

func (a *App) listLen() int {
	if a.focus == focusQuestions {
		return len(a.machine.Questions())
	}
	return len(a.sections)
}

func (a *App) handleEnter() (tea.Model, tea.Cmd) {
	if a.focus == focusSections {
		if a.cursor >= len(a.sections) {
			return a, nil
		}
		section := a.sections[a.cursor]
		if !a.machine.SelectSection(section) {
			return a, nil
		}
		return a, a.fetchQuestions(section)
	}

	number := a.cursor + 1
	if !a.machine.SelectQuestion(number) {
		return a, nil
	}
	return a, a.fetchAnswer(a.machine.Section(), number)
}

func (a *App) fetchQuestions(section string) tea.Cmd {
	return func() tea.Msg {
		questions, err := a.api.GetQuestions(a.ctx, section)
		return QuestionsLoaded{Questions: questions, Err: err}
	}
}

func (a *App) fetchAnswer(section string, number int) tea.Cmd {
	return func() tea.Msg {
		payload, err := a.api.Ask(a.ctx, section, number)
		return AnswerLoaded{Payload: payload, Err: err}
	}
}

func (a *App) View() string {
	sections := make([]string, 0, 16)
	sections = append(sections, a.styles.Title.Render("Campus FAQ"), "")
	sections = append(sections, a.renderTranscript()...)
	sections = append(sections, "", a.renderPicker(), "", a.renderStatus())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) renderTranscript() []string {
	entries := a.machine.Transcript()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		switch {
		case len(e.Media) > 0:
			for _, item := range e.Media {
				label := item.Alt
				if label == "" {
					label = item.Type
				}
				lines = append(lines, a.styles.Media.Render(fmt.Sprintf("[%s] %s", label, item.URL)))
			}
		case e.Pending:
			lines = append(lines, a.spinner.View()+a.styles.Info.Render(e.Text))
		case e.Role == session.RoleUser:
			lines = append(lines, a.styles.User.Render("you> "+e.Text))
		case e.Role == session.RoleInfo:
			lines = append(lines, a.styles.Info.Render(e.Text))
		default:
			lines = append(lines, a.styles.Bot.Render("bot> "+e.Text))
		}
	}

	// Keep the tail that fits above the picker and status line.
	max := a.height - 10
	if max > 0 && len(lines) > max {
		lines = lines[len(lines)-max:]
	}
	return lines
}

func (a *App) renderPicker() string {
	var header string
	var items []string
	if a.focus == focusQuestions {
		header = "Questions (" + a.machine.Section() + ")"
		items = a.machine.Questions()
	} else {
		header = "Sections"
		items = a.sections
	}

	lines := make([]string, 0, len(items)+1)
	lines = append(lines, a.styles.Title.Render(header))
	for i, item := range items {
		if i == a.cursor && !a.machine.Busy() {
			lines = append(lines, a.styles.Selected.Render("> "+item))
		} else {
			lines = append(lines, a.styles.Normal.Render("  "+item))
		}
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderStatus() string {
	if a.machine.Busy() {
		return a.styles.Status.Render(a.spinner.View() + " loading, controls disabled")
	}
	return a.styles.Status.Render("up/down navigate - enter select - tab switch - q quit")
}
