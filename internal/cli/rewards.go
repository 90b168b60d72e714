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
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"seehuhn.de/go/scratch/reward"
)

func newRewardsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rewards",
		Short: "List the reward table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printRewards(cmd.OutOrStdout(), a.cfg.Rewards)
			return nil
		},
	}
}

func printRewards(w io.Writer, t reward.Table) {
	rows := make([][]string, len(t))
	for i, r := range t {
		rows[i] = []string{r.Icon, string(r.Kind), strconv.Itoa(r.Amount), r.Message}
	}
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Kind", "Amount", "Message").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return StyleTitle.Padding(0, 1)
			case col == 2:
				return StyleNumber.Padding(0, 1).Align(lipgloss.Right)
			}
			return StyleValue.Padding(0, 1)
		})

	fmt.Fprintln(w, tbl.Render())
	odds := 100.0 / float64(max(len(t), 1))
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("each reward %.1f%%", odds)))
}
