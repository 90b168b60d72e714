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
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"seehuhn.de/go/scratch/config"
	_ "seehuhn.de/go/scratch/surface/ggsurface" // "gg" backend
)

// app holds the state shared by all commands.
type app struct {
	configPath string
	envFile    string
	verbose    bool

	cfg *config.Config
}

// Execute runs the scratchpad command line.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "scratchpad",
		Short:         "Paint canvases and scratch cards driven by pointer scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if a.verbose {
				level = charmlog.DebugLevel
			}
			l := newLogger(cmd.ErrOrStderr(), level)
			installLogger(l)
			cmd.SetContext(withLogger(cmd.Context(), l))

			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if err := cfg.LoadEnv(a.envFile); err != nil {
				return err
			}
			a.cfg = cfg
			l.Debug("configuration loaded", "path", a.configPath, "backend", cfg.Backend, "ledger", cfg.Ledger.Kind)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", os.Getenv("SCRATCH_CONFIG"), "configuration file (.toml or .yaml)")
	pf.StringVar(&a.envFile, "env", ".env", "file with environment overrides")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newPaintCmd(a))
	root.AddCommand(newScratchCmd(a))
	root.AddCommand(newRewardsCmd(a))

	return root
}
