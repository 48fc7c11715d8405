// Package cli wires the terminal chat client command.
package cli

import (
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/campusgate/faqbot-backend/internal/client"
	"github.com/campusgate/faqbot-backend/internal/tui"
)

var (
	flagServer   string
	flagTimeout  time.Duration
	flagRetries  int
	flagSections string
)

var rootCmd = &cobra.Command{
	Use:   "faqchat",
	Short: "Interactive terminal client for the campus FAQ backend",
	Long: `Chat with the campus FAQ backend from the terminal.

Pick a section, pick a question, read the canned answer. Requests are
retried on timeout up to the configured budget.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select
  Tab      - Switch between sections and questions
  q        - Quit`,
	RunE: runChat,
}

func init() {
	rootCmd.Flags().StringVar(&flagServer, "server", "http://localhost:8080", "base URL of the FAQ backend")
	rootCmd.Flags().DurationVar(&flagTimeout, "timeout", client.DefaultTimeout, "per-attempt request timeout")
	rootCmd.Flags().IntVar(&flagRetries, "retries", client.DefaultMaxRetries, "additional attempts after a timed-out request")
	rootCmd.Flags().StringVar(&flagSections, "sections", "academics,finance,faq", "comma-separated section names to offer")
}

func Execute() error {
	return rootCmd.Execute()
}

func runChat(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n%s\n", r, debug.Stack())
		}
	}()

	sections := make([]string, 0, 4)
	for _, s := range strings.Split(flagSections, ",") {
		if s = strings.TrimSpace(s); s != "" {
			sections = append(sections, s)
		}
	}
	if len(sections) == 0 {
		return fmt.Errorf("no sections configured")
	}

	headers := http.Header{}
	headers.Set("X-Client", "faqchat")
	api := client.New(client.Options{
		BaseURL:    flagServer,
		Timeout:    flagTimeout,
		MaxRetries: flagRetries,
		Headers:    headers,
	})

	app := tui.NewApp(api, sections).WithContext(cmd.Context())
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
