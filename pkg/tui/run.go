package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/freitascorp/s3tui/pkg/config"
	"github.com/freitascorp/s3tui/pkg/logging"
	"github.com/freitascorp/s3tui/pkg/s3client"
)

// Run starts the alternate-screen program and blocks until the operator
// quits (spec.md §1 "one process, one terminal"). initialRemote/
// initialBucket implement the CLI entrypoint's `s3tui <remote>` and
// `s3tui <remote> <bucket>` forms; pass "" for the plain `s3tui` form.
func Run(logger *slog.Logger, ring *logging.Ring, registry *s3client.Registry, prefs config.Preferences, initialRemote, initialBucket string) error {
	model := New(logger, ring, registry, prefs, initialRemote, initialBucket)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
