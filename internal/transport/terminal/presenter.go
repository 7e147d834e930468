package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"movie-quiz/internal/domain"
)

var (
	Green    = lipgloss.Color("#a6e3a1")
	Red      = lipgloss.Color("#f38ba8")
	Sapphire = lipgloss.Color("#74c7ec")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")

	titleStyle = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(Subtext0)
	goodStyle  = lipgloss.NewStyle().Foreground(Green).Bold(true)
	badStyle   = lipgloss.NewStyle().Foreground(Red).Bold(true)
	boxStyle   = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Lavender).
			Padding(0, 1)
)

// Presenter renders the quiz as styled lines on a terminal.
type Presenter struct {
	out          io.Writer
	inputEnabled bool
}

func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{out: out, inputEnabled: true}
}

func (p *Presenter) ShowStep(step domain.QuizStep) {
	p.println(titleStyle.Render("Question " + step.Number))
	p.println(mutedStyle.Render(fmt.Sprintf("[poster %s %dx%d, %d bytes]",
		step.Picture.Format, step.Picture.Width, step.Picture.Height, len(step.Picture.Data))))
	p.println(step.Question)
	p.println(mutedStyle.Render("(y)es / (n)o"))
}

func (p *Presenter) ShowResult(title, message, action string) {
	body := titleStyle.Render(title) + "\n\n" + message + "\n\n" + mutedStyle.Render("(r) "+action+"  (q) quit")
	p.println(boxStyle.Render(body))
}

func (p *Presenter) SetInputEnabled(enabled bool) {
	p.inputEnabled = enabled
}

// InputEnabled reports the last state set by the engine.
func (p *Presenter) InputEnabled() bool {
	return p.inputEnabled
}

func (p *Presenter) SetLoading(loading bool) {
	if loading {
		p.println(mutedStyle.Render("Loading..."))
	}
}

func (p *Presenter) ShowError(message string) {
	p.println(badStyle.Render("Error: ") + message + mutedStyle.Render("  (r) retry"))
}

func (p *Presenter) HighlightFeedback(isCorrect bool) {
	if isCorrect {
		p.println(goodStyle.Render("Correct!"))
		return
	}
	p.println(badStyle.Render("Wrong."))
}

func (p *Presenter) println(s string) {
	_, _ = io.WriteString(p.out, strings.TrimRight(s, "\n")+"\n")
}
