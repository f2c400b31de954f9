// Package cli provides styled terminal output, prompts and progress for
// the shopdesk commands.
package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the brand accent.
	PrimaryColor = lipgloss.Color("#3B82F6")
	// SuccessColor marks completed or approved items.
	SuccessColor = lipgloss.Color("#22C55E")
	// WarningColor marks pending items and cautions.
	WarningColor = lipgloss.Color("#F59E0B")
	// ErrorColor marks failures and rejected items.
	ErrorColor = lipgloss.Color("#EF4444")
	// InfoColor marks informational text.
	InfoColor = lipgloss.Color("#06B6D4")
	// SubtleColor marks secondary text.
	SubtleColor = lipgloss.Color("#6B7280")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)
	BoldStyle    = lipgloss.NewStyle().Bold(true)

	// BoxStyle is used for bordered summaries.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 2)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(PrimaryColor).
				PaddingRight(2)

	TableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)

	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "!"
	InfoIcon    = "i"
	BellIcon    = "🔔"
	ChartIcon   = "📊"
	StoreIcon   = "🛒"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a section title.
func FormatTitle(title string) string {
	return TitleStyle.Render(StoreIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " ")
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	return BoxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.UnsetMargins().Render(title),
		content,
	))
}

// StatusStyle picks a color for an order, payment, review or refund status.
func StatusStyle(status string) lipgloss.Style {
	switch strings.ToLower(status) {
	case "delivered", "completed", "paid", "approved", "success", "refunded":
		return SuccessStyle
	case "pending", "processing", "shipped", "requested", "unread":
		return WarningStyle
	case "cancelled", "canceled", "failed", "rejected", "declined":
		return ErrorStyle
	default:
		return lipgloss.NewStyle()
	}
}

// Badge renders a count such as the unread notification total. Zero is
// shown muted.
func Badge(label string, n int) string {
	style := WarningStyle.Bold(true)
	if n == 0 {
		style = SubtleStyle
	}
	return style.Render(label + " " + itoa(n))
}
