package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/bdaytui/internal/greeting"
)

var (
	headlineStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("161")).
			MarginBottom(1)

	taglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("125"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("218")).
			Padding(1, 3).
			MarginTop(1).
			Align(lipgloss.Center)

	captionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("168"))

	countdownStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("125")).
			MarginTop(1)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("205")).
			Padding(0, 2).
			MarginTop(1)

	keyHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	messageStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("212")).
			Foreground(lipgloss.Color("162")).
			Padding(1, 2).
			MarginTop(1).
			Width(48).
			Align(lipgloss.Center)

	orbStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("218"))
	orbLargeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("211")).Bold(true)

	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// orbGlyphs are indexed by rotation quadrant.
var orbGlyphs = []string{"◐", "◓", "◑", "◒"}

// orbBandRows is the height of the band each orb drifts in.
const orbBandRows = 3

// MusicLabel is the play/pause button text for the given state.
func MusicLabel(playing bool) string {
	if playing {
		return "🔇 Pause Music"
	}
	return "🎵 Play Music"
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	content := m.viewContent()
	footer := m.viewFooter()

	if !m.decorations {
		body := lipgloss.Place(m.width, max(m.height-lipgloss.Height(footer), 0),
			lipgloss.Center, lipgloss.Center, content)
		return body + "\n" + footer
	}

	top := m.renderOrbBand(greeting.Orbs[0], 0.15)
	bottom := m.renderOrbBand(greeting.Orbs[1], 0.85)

	bodyHeight := m.height - lipgloss.Height(footer) - 2*orbBandRows
	body := lipgloss.Place(m.width, max(bodyHeight, 0), lipgloss.Center, lipgloss.Center, content)

	return top + "\n" + body + "\n" + bottom + "\n" + footer
}

// viewContent renders the centred greeting, revealing sections as the
// intro progresses.
func (m Model) viewContent() string {
	stage := greeting.StageAt(m.elapsed)

	sections := []string{headlineStyle.Render(m.texts.Headline)}

	if stage >= greeting.StageTagline {
		sections = append(sections, taglineStyle.Render(m.texts.Tagline))
	}

	if stage >= greeting.StageCountdown {
		box := captionStyle.Render(m.texts.Caption) + "\n" + countdownStyle.Render(m.countdown)
		sections = append(sections, boxStyle.Render(box))
	}

	if stage >= greeting.StageButtons {
		surprise := buttonStyle.Render(m.texts.Surprise) + " " + keyHintStyle.Render("enter")
		music := buttonStyle.Render(MusicLabel(m.player.IsPlaying())) + " " + keyHintStyle.Render("space")
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Bottom, surprise, "   ", music))
	}

	if m.reveal.Visible() {
		sections = append(sections, messageStyle.Render(m.texts.Message+"\n\n"+m.texts.SignOff))
	}

	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}

func (m Model) viewFooter() string {
	target := m.engine.Target()
	when := fmt.Sprintf("🎂 %s (%s)", target.Format("Mon, 02 Jan 2006 15:04"), humanize.Time(target))
	return footerStyle.Render(when) + "\n" + m.help.View(m.keys)
}

// renderOrbBand draws one orb inside a band of blank rows. anchor is the
// orb's resting column as a fraction of the width; X and Y keyframes are
// percentages of an eighth of the width and of the band height.
func (m Model) renderOrbBand(orb greeting.Orb, anchor float64) string {
	pose := orb.PoseAt(m.elapsed)

	col := int(anchor*float64(m.width) + pose.X/100*float64(m.width)/8)
	col = min(max(col, 0), max(m.width-1, 0))

	row := orbBandRows/2 + int(math.Round(pose.Y/50))
	row = min(max(row, 0), orbBandRows-1)

	quadrant := int(math.Mod(pose.Rotate, 360)/90) % len(orbGlyphs)
	if quadrant < 0 {
		quadrant += len(orbGlyphs)
	}

	style := orbStyle
	if pose.Scale >= 1.15 {
		style = orbLargeStyle
	}
	glyph := style.Render(orbGlyphs[quadrant])

	rows := make([]string, orbBandRows)
	rows[row] = strings.Repeat(" ", col) + glyph
	return strings.Join(rows, "\n")
}
