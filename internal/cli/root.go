package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autocommit/autocommit-go/internal/log"
)

var (
	// Global flags
	debugMode  bool
	configFile string
	modelName  string

	// Version info
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

// ExitError carries the process exit code for a failed invocation. Scripts
// depend on these codes, so they are part of the CLI contract.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error
func (e *ExitError) Unwrap() error {
	return e.Err
}

// rootCmd represents the base command when called without any subcommands.
// Running it bare is the same as running "autocommit generate".
var rootCmd = &cobra.Command{
	Use:   "autocommit",
	Short: "AI-generated conventional commit messages",
	Long: `Autocommit stages your changes, investigates them with an LLM agent,
and generates a commit message following Conventional Commits.

The agent inspects the diff through read-only tools before writing the
message, so the result reflects what actually changed rather than what the
file names suggest.

Use "autocommit [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set debug mode before any command runs
		if debugMode {
			log.SetDebugMode(true)
			log.Debug("Debug mode enabled")
		}
	},
	RunE: runGenerate,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, commit, time string) {
	version = v
	gitCommit = commit
	buildTime = time
}

// GetVersionInfo returns version information
func GetVersionInfo() (string, string, string) {
	return version, gitCommit, buildTime
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode for verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default: ./.autocommit.yaml or ~/.autocommit.yaml)")
	rootCmd.PersistentFlags().StringVarP(&modelName, "model", "m", "", "Model name from the config registry (overrides config default)")

	// The root command doubles as the generate command
	addGenerateFlags(rootCmd)
}
