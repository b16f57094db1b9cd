package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Persistent flags available to all subcommands
	serverURL  string
	jsonOutput bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reqd",
	Short: "reqd is a self-hosted API request workbench",
	Long: `reqd stores request collections in workspaces, substitutes encrypted
workspace variables into drafts at execution time, and proxies the outbound
call so browser clients are not constrained by CORS.

Configuration can be provided via flags, environment variables, or a
configuration file. By default, reqd looks for reqd.yaml in the working
directory.`,
	// No Run function here means 'reqd' with no args will print help text by default.
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServerURL(), "Base URL of a running reqd server")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}

// defaultServerURL honors REQD_SERVER_URL so scripted use does not need the
// --server flag on every invocation.
func defaultServerURL() string {
	if url := os.Getenv("REQD_SERVER_URL"); url != "" {
		return url
	}
	return "http://localhost:4380"
}
