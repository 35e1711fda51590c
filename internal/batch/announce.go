package batch

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// TimestampLayout formats the wall-clock time in announcement lines.
const TimestampLayout = "2006-01-02 15:04:05"

// announcer writes one line per unit before anything is launched.
type announcer struct {
	w       io.Writer
	dateVar string

	styled bool
	image  lipgloss.Style
	date   lipgloss.Style
}

func newAnnouncer(w io.Writer, dateVar string) *announcer {
	a := &announcer{w: w, dateVar: dateVar}

	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		renderer := lipgloss.NewRenderer(w)
		a.styled = true
		a.image = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
		a.date = renderer.NewStyle().Foreground(lipgloss.Color("214"))
	}

	return a
}

func (a *announcer) announce(image, date string, at time.Time) {
	if a.styled {
		image = a.image.Render(image)
		date = a.date.Render(date)
	}
	fmt.Fprintf(a.w, "Running container %s with %s=%s at %s\n", image, a.dateVar, date, at.Format(TimestampLayout))
}
