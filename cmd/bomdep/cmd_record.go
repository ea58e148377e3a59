package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/odvcencio/bomdep/pkg/deps"
	"github.com/odvcencio/bomdep/pkg/omnibor"
)

func newRecordCmd() *cobra.Command {
	var (
		resultDir  string
		algoName   string
		output     string
		options    string
		vpath      string
		configPath string
		quiet      bool
	)

	cmd := &cobra.Command{
		Use:   "record <inputs...>",
		Short: "Record OmniBOR provenance for a compilation's input files",
		Long: `Record hashes every input file, writes the OmniBOR document into the
sharded object store under the result directory, and records a metadata
sidecar for the compilation output. Recording is best-effort: failures
are reported but never change the exit status, so a wrapped build is
never broken by an unusable provenance destination.

The result directory is taken from --dir, then the config file, then the
OMNIBOR_DIR environment variable (a .env file is honored), and finally
the current directory.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			_ = godotenv.Load()
			dir := resultDir
			if dir == "" {
				dir = cfg.ResultDir
			}
			if dir == "" {
				dir = os.Getenv("OMNIBOR_DIR")
			}

			if algoName != "" {
				switch algoName {
				case "sha1", "sha256":
					cfg.Algorithms = []string{algoName}
				case "both":
					cfg.Algorithms = []string{"sha1", "sha256"}
				default:
					return fmt.Errorf("unknown algorithm %q (want sha1, sha256 or both)", algoName)
				}
			}
			algos, err := cfg.algorithms()
			if err != nil {
				return err
			}

			set := deps.New()
			if vpath != "" {
				set.AddVpath(vpath)
			}
			for _, in := range args {
				set.AddDep(in)
			}
			set.AddDefaultTarget(args[0])

			parsed := deps.ParseOptions(strings.Fields(options))
			if output != "" {
				parsed.Explicit = output
			}
			outFile := parsed.Resolve(args)

			logger := logrus.New()
			logger.SetLevel(logrus.WarnLevel)
			if quiet {
				logger.SetOutput(io.Discard)
			} else {
				logger.SetOutput(cmd.ErrOrStderr())
			}

			for _, algo := range algos {
				id := omnibor.Emit(set, algo, omnibor.Options{
					ResultDir: dir,
					OutFile:   outFile,
					Logger:    logger,
				})
				if id.IsZero() {
					fmt.Fprintf(cmd.ErrOrStderr(), "bomdep: %s provenance not recorded\n", algo)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", algo.Tag(), id)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&resultDir, "dir", "d", "", "result directory for objects/ and metadata/")
	cmd.Flags().StringVarP(&algoName, "algo", "a", "", "hash algorithm: sha1, sha256 or both")
	cmd.Flags().StringVarP(&output, "output", "o", "", "compilation output file")
	cmd.Flags().StringVar(&options, "options", "", "recorded driver options, used to infer the output file")
	cmd.Flags().StringVar(&vpath, "vpath", "", "colon-delimited vpath prefixes stripped from recorded paths")
	cmd.Flags().StringVar(&configPath, "config", defaultConfigFile, "config file")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress warnings")
	return cmd
}
