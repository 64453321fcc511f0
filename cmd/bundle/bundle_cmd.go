package bundle

import (
	"fmt"
	"path/filepath"

	"github.com/LegacyCodeHQ/unify/bundler"
	"github.com/LegacyCodeHQ/unify/verify"

	"github.com/spf13/cobra"
)

// NewCommand creates the bundle command.
func NewCommand() *cobra.Command {
	var inputDirs []string
	var outputPath string
	var verifyOutput bool

	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Concatenate headers into a single self-contained header.",
		Long: `Concatenate headers into a single self-contained header.

Scans the input directories for .h/.hpp files, orders them so that every
header follows the headers it includes, hoists system includes to the top of
the output, and strips the original include lines from the copied bodies.

Examples:
  unify bundle                                # bundle ./ into single/<dir>.h
  unify bundle -i include/mylib -o mylib.h    # explicit input and output
  unify bundle -i src,vendor -o dist/all.h    # multiple input directories
  unify bundle -o mylib.h --verify            # re-parse the output as C++`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(inputDirs, outputPath)
			if err != nil {
				return err
			}

			result, err := bundler.Make(cfg)
			if err != nil {
				return err
			}

			if verifyOutput {
				if err := verify.Check(cfg.OutputPath, result.Hoisted); err != nil {
					return err
				}
			}

			cmd.Printf("Wrote %s (%d headers, %d system includes)\n",
				cfg.OutputPath, len(result.Order), len(result.Hoisted))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&inputDirs, "input", "i", nil, "Input directories containing .h/.hpp files (default: current directory)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path of the generated single header (default: single/<dir>.h)")
	cmd.Flags().BoolVar(&verifyOutput, "verify", false, "Re-parse the generated header and fail if any local include survived")

	return cmd
}

// resolveConfig turns the CLI flags into an explicit pipeline config. The
// defaults live here, not in the pipeline: input is the current directory,
// output is single/<basename-of-first-input>.h.
func resolveConfig(dirs []string, out string) (bundler.Config, error) {
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	if out == "" {
		abs, err := filepath.Abs(dirs[0])
		if err != nil {
			return bundler.Config{}, fmt.Errorf("failed to resolve input directory %s: %w", dirs[0], err)
		}
		out = filepath.Join("single", filepath.Base(abs)+".h")
	}

	return bundler.Config{InputDirs: dirs, OutputPath: out}, nil
}
