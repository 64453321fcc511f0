package watch

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/LegacyCodeHQ/unify/bundler"

	"github.com/spf13/cobra"
)

// NewCommand creates the watch command.
func NewCommand() *cobra.Command {
	var inputDirs []string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the single header whenever input headers change.",
		Long: `Rebuild the single header whenever input headers change.

Watches the input directories, re-running the bundle pipeline (debounced)
each time a .h/.hpp file is written, created, removed or renamed. Runs until
interrupted.

Examples:
  unify watch -i include/mylib -o mylib.h
  unify watch -i src,vendor -o dist/all.h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs := inputDirs
			if len(dirs) == 0 {
				dirs = []string{"."}
			}
			out := outputPath
			if out == "" {
				abs, err := filepath.Abs(dirs[0])
				if err != nil {
					return err
				}
				out = filepath.Join("single", filepath.Base(abs)+".h")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return watchAndRebundle(ctx, bundler.Config{InputDirs: dirs, OutputPath: out})
		},
	}

	cmd.Flags().StringSliceVarP(&inputDirs, "input", "i", nil, "Input directories containing .h/.hpp files (default: current directory)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path of the generated single header (default: single/<dir>.h)")

	return cmd
}
