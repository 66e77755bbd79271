package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/remixer/internal/control"
)

const barWidth = 40

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(1, 2)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	runningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	pausedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	dimBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	filledBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
)

func (m model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("REMIXER") + "\n")

	if m.session.Resumed() {
		s.WriteString(runningStyle.Render("● LISTENING") + "\n\n")
	} else {
		s.WriteString(pausedStyle.Render("❚❚ PAUSED") + "\n\n")
	}

	for i, sl := range m.sliders {
		line := m.renderSlider(sl)
		if i == m.selected {
			s.WriteString(activeStyle.Render("> ") + line + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}

	sel := m.sliders[m.selected]
	if hist := sel.history(); len(hist) > 1 {
		chart := asciigraph.Plot(hist,
			asciigraph.Height(6),
			asciigraph.Width(barWidth+10),
			asciigraph.Caption(sel.name))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	st := m.stats
	s.WriteString("\n")
	s.WriteString(labelStyle.Render("samples") + valueStyle.Render(fmt.Sprintf("accel %d  orient %d", st.AccelSamples, st.OrientSamples)) + "\n")
	s.WriteString(labelStyle.Render("shakes") + valueStyle.Render(fmt.Sprintf("%d (%d debounced)", st.ShakesDetected, st.ShakesSuppressed)) + "\n")
	s.WriteString(labelStyle.Render("restarts") + valueStyle.Render(fmt.Sprintf("%d gesture  %d manual", st.Triggers, m.restarts)) + "\n")
	s.WriteString(labelStyle.Render("nudges") + valueStyle.Render(fmt.Sprintf("%d", st.Nudges)) + "\n")

	if m.lastErr != nil {
		s.WriteString("\n" + errorStyle.Render(m.lastErr.Error()) + "\n")
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render(strings.Join([]string{
			"tab      select slider",
			"← →      move 10 steps",
			"⇧← ⇧→    move 1 step",
			"home end jump to an end",
			"0        back to the initial value",
			"r        restart playback",
			"space    pause or resume sensors",
			"q        quit",
		}, "\n")))
	} else {
		s.WriteString(helpStyle.Render("TAB:Select ←→:Move R:Restart SPACE:Pause ?:Help Q:Quit"))
	}
	return panelStyle.Render(s.String())
}

func (m model) renderSlider(sl slider) string {
	b := sl.binding
	pos, max := b.Position(), control.Resolution
	filled := pos * barWidth / max
	bar := filledBarStyle.Render(strings.Repeat("█", filled)) + dimBarStyle.Render(strings.Repeat("░", barWidth-filled))

	scale := "lin"
	if b.LogScale() {
		scale = "log"
	}
	return fmt.Sprintf("%s %s %s", labelStyle.Render(fmt.Sprintf("%-6s %s", sl.name, scale)), bar,
		valueStyle.Render(fmt.Sprintf("%6.3f  [%d]", b.RealValue(), pos)))
}
