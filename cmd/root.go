package cmd

import (
	"os"

	bundlecmd "github.com/LegacyCodeHQ/unify/cmd/bundle"
	watchcmd "github.com/LegacyCodeHQ/unify/cmd/watch"

	"github.com/spf13/cobra"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "unify",
	Short: "Bundle a set of C/C++ headers into one self-contained header",
	Long: `Unify concatenates a directory of interdependent C/C++ headers into a
single self-contained header. Local includes are resolved by emitting every
header after the headers it depends on; system includes are hoisted,
de-duplicated, to the top of the generated file.

Use 'unify --help' to see all available commands, or 'unify <command> --help'
for detailed information about a specific command.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(bundlecmd.NewCommand())
	rootCmd.AddCommand(watchcmd.NewCommand())

	if rootCmd.Annotations == nil {
		rootCmd.Annotations = make(map[string]string)
	}
	rootCmd.Annotations["buildDate"] = buildDate
	rootCmd.Annotations["commit"] = commit

	// Update version field dynamically (in case it was set via ldflags)
	rootCmd.Version = version

	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)
}
