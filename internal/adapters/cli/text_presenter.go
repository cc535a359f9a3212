package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mikey/email-sentiment/internal/core"
	"github.com/mikey/email-sentiment/internal/ports"
)

// TextPresenter renders results for a terminal
type TextPresenter struct {
	out      io.Writer
	renderer *lipgloss.Renderer
	width    int

	bold    lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
}

// NewTextPresenter creates a presenter writing styled text to out.
// Colours are only emitted when out is a terminal.
func NewTextPresenter(out io.Writer) *TextPresenter {
	r := lipgloss.NewRenderer(out)
	return &TextPresenter{
		out:      out,
		renderer: r,
		width:    DefaultGaugeWidth,
		bold:     r.NewStyle().Bold(true),
		muted:    r.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		success:  r.NewStyle().Foreground(lipgloss.Color("#16a34a")),
		warning:  r.NewStyle().Foreground(lipgloss.Color("#d97706")),
	}
}

// Status prints the session summary
func (p *TextPresenter) Status(status ports.SessionStatus) error {
	var b strings.Builder
	b.WriteString(p.bold.Render("Email sentiment session"))
	b.WriteString("\n")

	if status.Expired {
		b.WriteString(p.warning.Render("! Cached emails expired and were cleared. Fetch again to refresh."))
		b.WriteString("\n")
	}

	if status.NeverFetched {
		fmt.Fprintf(&b, "Last fetch:  %s\n", p.muted.Render("never"))
	} else {
		fmt.Fprintf(&b, "Last fetch:  %s\n", status.LastFetch.Local().Format(time.RFC1123))
	}
	fmt.Fprintf(&b, "Next fetch:  %s\n", formatRemaining(status.Remaining))
	fmt.Fprintf(&b, "Domains:     %d\n", status.Domains)
	fmt.Fprintf(&b, "Messages:    %d\n", status.Messages)
	fmt.Fprintf(&b, "Providers:   %s\n", strings.Join(status.Providers, ", "))

	_, err := io.WriteString(p.out, b.String())
	return err
}

// Fetched prints the success message of a fetch
func (p *TextPresenter) Fetched(provider string, status ports.SessionStatus) error {
	_, err := fmt.Fprintf(p.out, "%s Emails fetched and cached successfully from %s (%d domains, %d messages)\n",
		p.success.Render("✓"), provider, status.Domains, status.Messages)
	return err
}

// Domains prints one domain per line with its message count
func (p *TextPresenter) Domains(domains []string, counts map[string]int) error {
	if len(domains) == 0 {
		_, err := fmt.Fprintln(p.out, p.muted.Render("No cached domains. Fetch emails first."))
		return err
	}

	var b strings.Builder
	for _, domain := range domains {
		fmt.Fprintf(&b, "%-40s %s\n", domain, p.muted.Render(fmt.Sprintf("%d", counts[domain])))
	}
	_, err := io.WriteString(p.out, b.String())
	return err
}

// Analysis prints the emotion counts and the gauge for one domain
func (p *TextPresenter) Analysis(result *core.AnalysisResult, noData bool) error {
	if noData {
		_, err := fmt.Fprintf(p.out, "%s No emails found for %s.\n", p.warning.Render("!"), result.Domain)
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", p.bold.Render(result.Domain), p.muted.Render(fmt.Sprintf("%d messages", result.MessageCount)))

	for _, emotion := range core.Emotions {
		fmt.Fprintf(&b, "  %-8s %d\n", emotionTitle(emotion), result.Counts[emotion])
	}
	fmt.Fprintf(&b, "\nScore: %.2f\n\n", result.Score)

	b.WriteString(renderGauge(p.renderer, result.Gauge, p.width))
	b.WriteString("\n")

	_, err := io.WriteString(p.out, b.String())
	return err
}

func emotionTitle(e core.Emotion) string {
	s := string(e)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatRemaining(d time.Duration) string {
	if d <= 0 {
		return "now"
	}
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("in %02d:%02d:%02d", h, m, s)
}
