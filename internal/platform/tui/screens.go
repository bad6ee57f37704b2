package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/prospector/internal/storage"
)

const titleArt = `
 _  _____  ___  _  _  ___  ___
| |/ / _ \/ _ \| \| |/ _ \/ __|
| ' <|   / (_) | .' | (_) \__ \
|_|\_\_|_\\___/|_|\_|\___/|___/
     B E L T   P R O S P E C T O R`

func (m Model) titleView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(titleArt))
	b.WriteString("\n\n")
	b.WriteString(textStyle.Render("Mine the belt. Haul ore home. Keep the aliens off your cargo."))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("WASD/arrows fly   SPACE mine   E dock   P pause   Q quit"))
	b.WriteString("\n\n")
	b.WriteString(scoreLines(m.ctrl.HighScores(), 5))
	b.WriteString("\n")
	b.WriteString(selectedStyle.Render(" ENTER to launch "))
	if m.message != "" {
		b.WriteString("\n\n" + warnStyle.Render(m.message))
	}
	return center(m.config.ScreenW, m.config.ScreenH, panelStyle.Render(b.String()))
}

func (m Model) stationView() string {
	snap := m.ctrl.Snapshot()
	p := snap.Player
	offers := m.ctrl.Offers()

	var b strings.Builder
	b.WriteString(titleStyle.Render("KRONOS STATION  // DOCKED"))
	b.WriteString("\n\n")
	b.WriteString(textStyle.Render(fmt.Sprintf("Credits %-8d Score %-8d Missions %d",
		p.Credits, p.LifetimeEarnings, p.MissionsCompleted)))
	b.WriteString("\n")
	b.WriteString(textStyle.Render(fmt.Sprintf("Fuel    [%s] %.0f/%.0f",
		bar(p.CurrentFuel, p.Ship.MaxFuel, 20), p.CurrentFuel, p.Ship.MaxFuel)))
	b.WriteString("\n\n")

	line := func(i int, text string, enabled bool) {
		cursor := "  "
		style := textStyle
		if !enabled {
			style = dimStyle
		}
		if i == m.cursor {
			cursor = "> "
			style = selectedStyle
		}
		b.WriteString(style.Render(cursor + text))
		b.WriteString("\n")
	}

	for i, o := range offers {
		var text string
		if o.Maxed() {
			text = fmt.Sprintf("%-18s L%d  %8.2f   MAX", o.Track.Name, o.Level, o.Current)
		} else {
			text = fmt.Sprintf("%-18s L%d  %8.2f > %-8.2f %5d cr", o.Track.Name, o.Level, o.Current, o.Next.Value, o.Next.Cost)
		}
		line(i, text, o.Affordable)
	}
	refuel := m.ctrl.RefuelCost()
	line(len(offers), fmt.Sprintf("%-18s %24d cr", "Refuel", refuel), refuel <= p.Credits && p.CurrentFuel < p.Ship.MaxFuel)
	line(len(offers)+1, "Launch", true)

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("up/down select   ENTER buy   F refuel   L launch"))
	if m.message != "" {
		b.WriteString("\n\n" + warnStyle.Render(m.message))
	}
	return center(m.config.ScreenW, m.config.ScreenH, panelStyle.Render(b.String()))
}

func (m Model) summaryLines() string {
	s := m.ctrl.Summary()
	return textStyle.Render(fmt.Sprintf(
		"Score %d\nMissions %d\nOre delivered %d\nCredits on hand %d\nFlight time %s",
		s.Score, s.Missions, s.Cargo, s.Credits, s.Duration.Round(time.Second),
	))
}

func (m Model) initialsView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("OUT OF FUEL  // NEW HIGH SCORE"))
	b.WriteString("\n\n")
	b.WriteString(m.summaryLines())
	b.WriteString("\n\n")
	b.WriteString(textStyle.Render("Enter your initials:"))
	b.WriteString("\n")
	b.WriteString(m.initials.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("ENTER to sign the board"))
	return center(m.config.ScreenW, m.config.ScreenH, panelStyle.Render(b.String()))
}

func (m Model) gameOverView() string {
	var b strings.Builder
	b.WriteString(warnStyle.Render("OUT OF FUEL  // RUN OVER"))
	b.WriteString("\n\n")
	b.WriteString(m.summaryLines())
	b.WriteString("\n\n")
	b.WriteString(scoreLines(m.ctrl.HighScores(), storage.MaxHighScores))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("R fly again   ENTER title   Q quit"))
	if m.message != "" {
		b.WriteString("\n\n" + textStyle.Render(m.message))
	}
	return center(m.config.ScreenW, m.config.ScreenH, panelStyle.Render(b.String()))
}

// scoreLines renders up to limit leaderboard rows.
func scoreLines(scores []storage.HighScore, limit int) string {
	if len(scores) == 0 {
		return dimStyle.Render("No pilots on the board yet.") + "\n"
	}
	rows := make([]string, 0, min(len(scores), limit)+1)
	rows = append(rows, dimStyle.Render(fmt.Sprintf("%-4s %-5s %8s %5s", "#", "PILOT", "SCORE", "MSN")))
	for i, s := range scores {
		if i == limit {
			break
		}
		rows = append(rows, textStyle.Render(fmt.Sprintf("%-4d %-5s %8d %5d", i+1, s.Name, s.Score, s.Missions)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}
