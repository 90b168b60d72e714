// seehuhn.de/go/scratch - pointer-driven raster surfaces
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"seehuhn.de/go/scratch/card"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Styles for command output.
var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1).
			Width(14).
			Align(lipgloss.Center)
	styleRevealed = styleCard.BorderForeground(colorGreen)
)

const (
	iconInfo    = "›"
	iconWarning = "!"
	iconArrow   = "→"
	cardColumns = 3
)

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// renderBoard lays the cards out in rows, followed by the coin balance.
func renderBoard(cards []*card.Card, total int) string {
	var rows []string
	var row []string
	for _, c := range cards {
		row = append(row, renderCard(c))
		if len(row) == cardColumns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	footer := StyleDim.Render("coins ") + StyleNumber.Render(strconv.Itoa(total))
	rows = append(rows, footer)
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(c *card.Card) string {
	head := StyleDim.Render("#" + strconv.Itoa(c.ID+1))
	if !c.Revealed() {
		body := fmt.Sprintf("%s %.0f%%", c.State, 100*c.ClearedFraction)
		return styleCard.Render(head + "\n" + body)
	}
	return styleRevealed.Render(head + "\n" + StyleValue.Render(c.Display()))
}
