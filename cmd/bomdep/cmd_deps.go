package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/odvcencio/bomdep/pkg/deps"
)

func newDepsCmd() *cobra.Command {
	var (
		targets    []string
		output     string
		vpath      string
		cols       uint
		phony      bool
		modules    bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "deps <inputs...>",
		Short: "Write a Makefile dependency fragment for a set of input files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("cols") {
				cols = cfg.Columns
			}
			if !cmd.Flags().Changed("phony") {
				phony = cfg.Phony
			}
			if !cmd.Flags().Changed("modules") {
				modules = cfg.Modules
			}

			set := deps.New()
			if vpath != "" {
				set.AddVpath(vpath)
			}
			for _, t := range targets {
				set.AddTarget(t, true)
			}
			for _, in := range args {
				set.AddDep(in)
			}
			set.AddDefaultTarget(args[0])

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("deps: %w", err)
				}
				defer f.Close()
				w = f
			}

			return set.WriteMake(w, deps.MakeOpts{
				Cols:    cols,
				Phony:   phony,
				Modules: modules,
			})
		},
	}

	cmd.Flags().StringArrayVarP(&targets, "target", "t", nil, "rule target (repeatable); default derives from the first input")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the fragment to a file instead of stdout")
	cmd.Flags().StringVar(&vpath, "vpath", "", "colon-delimited vpath prefixes stripped from recorded paths")
	cmd.Flags().UintVar(&cols, "cols", 72, "wrap column (0 disables wrapping)")
	cmd.Flags().BoolVar(&phony, "phony", false, "emit phony rules for dependencies")
	cmd.Flags().BoolVar(&modules, "modules", false, "emit C++ module rules")
	cmd.Flags().StringVar(&configPath, "config", defaultConfigFile, "config file")
	return cmd
}
