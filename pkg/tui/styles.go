// Package tui implements the UI state machine (C8): the bubbletea model
// that owns modes, dispatches keys, and drives redraws (spec.md §4.8).
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette, adapted from the teacher's chic theme
// (pkg/tui/styles.go) down to the handful of roles this browser needs.
var (
	ColorPrimary = lipgloss.Color("#cc7700")
	ColorAccent  = lipgloss.Color("#5599dd")
	ColorMuted   = lipgloss.Color("#888888")
	ColorWarn    = lipgloss.Color("#aaaa00")
	ColorError   = lipgloss.Color("#cc3333")
	ColorText    = lipgloss.Color("#dddddd")
	ColorPanel   = lipgloss.Color("#555555")
	ColorSurface = lipgloss.Color("#111111")
)

var (
	PrimaryText = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	AccentText  = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	MutedText   = lipgloss.NewStyle().Foreground(ColorMuted)
	WarnText    = lipgloss.NewStyle().Bold(true).Foreground(ColorWarn)
	ErrorText   = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	NormalText  = lipgloss.NewStyle().Foreground(ColorText)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorPanel).
			Padding(0, 1)

	paneFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	cursorRowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	dirRowStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	bannerStyle = map[BannerKind]lipgloss.Style{
		BannerNetwork:         lipgloss.NewStyle().Foreground(ColorWarn).Bold(true),
		BannerAccessDenied:    lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		BannerNotFound:        lipgloss.NewStyle().Foreground(ColorWarn).Bold(true),
		BannerPartialDelete:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		BannerIndexIncomplete: lipgloss.NewStyle().Foreground(ColorWarn),
		BannerInfo:            MutedText,
	}

	footerStyle = lipgloss.NewStyle().
			Background(ColorSurface).
			Foreground(ColorMuted)

	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2).
			Background(ColorSurface)

	confirmOptionStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				PaddingLeft(2)

	confirmOptionFocusedStyle = lipgloss.NewStyle().
					Foreground(ColorText).
					Bold(true).
					PaddingLeft(2)
)
