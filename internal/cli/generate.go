package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/autocommit/autocommit-go/internal/agent"
	"github.com/autocommit/autocommit-go/internal/agent/tools"
	"github.com/autocommit/autocommit-go/internal/config"
	"github.com/autocommit/autocommit-go/internal/git"
	"github.com/autocommit/autocommit-go/internal/llm"
	"github.com/autocommit/autocommit-go/internal/log"
	"github.com/autocommit/autocommit-go/internal/ui"
	"github.com/autocommit/autocommit-go/pkg/lang"
)

// Process exit codes. Scripts branch on these, so the mapping is stable.
const (
	ExitNotARepo      = 1
	ExitStageFailed   = 2
	ExitNoChanges     = 3
	ExitKeyMissing    = 10
	ExitKeyInvalid    = 11
	ExitQuotaExceeded = 12
	ExitAPIError      = 13
	ExitCommitFailed  = 20
	ExitUnknown       = 99
)

var (
	generateContext   string
	generateLanguage  string
	generateProvider  string
	generateAutoYes   bool
	generatePrintOnly bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a commit message and commit",
	Long: `Stage all changes, generate a commit message with the LLM agent,
and create the commit after confirmation.

This command will:
1. Stage all changes (git add -A)
2. Let the agent investigate the staged diff through read-only tools
3. Show the generated message and ask for confirmation (default yes)
4. Create the commit

Examples:
  autocommit generate
  autocommit generate -c "fixes the login timeout"
  autocommit generate --language zh
  autocommit generate -m deepseek-chat
  autocommit generate --provider ollama --print-only`,
	RunE: runGenerate,
}

// addGenerateFlags registers the generate flags on a command. The root
// command shares them so bare "autocommit" behaves like "autocommit generate".
func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&generateContext, "context", "c", "", "Additional context to guide the commit message")
	cmd.Flags().StringVarP(&generateLanguage, "language", "l", "", "Output language (en, zh, ja, ko, es, de)")
	cmd.Flags().StringVarP(&generateProvider, "provider", "p", "", "Provider to use with environment credentials (gemini, openai, deepseek, ollama)")
	cmd.Flags().BoolVarP(&generateAutoYes, "yes", "y", false, "Commit without asking for confirmation")
	cmd.Flags().BoolVar(&generatePrintOnly, "print-only", false, "Print the message to stdout and exit without committing")
}

func init() {
	addGenerateFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

// exitCodeFor maps an error to the process exit code
func exitCodeFor(err error) int {
	var ce *llm.ClassifiedError
	if errors.As(err, &ce) {
		switch ce.Kind {
		case llm.KindNoChanges:
			return ExitNoChanges
		case llm.KindAPIKeyMissing:
			return ExitKeyMissing
		case llm.KindAPIKeyInvalid:
			return ExitKeyInvalid
		case llm.KindQuotaExceeded:
			return ExitQuotaExceeded
		case llm.KindRequestFailed:
			return ExitAPIError
		}
	}
	return ExitUnknown
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := NewInterruptHandler(cancel)
	handler.Start()
	defer handler.Stop()

	// Progress goes to stderr in print-only mode so stdout carries only
	// the message.
	progressOut := os.Stdout
	if generatePrintOnly {
		progressOut = os.Stderr
	}
	printer := ui.NewStreamPrinter(progressOut, ui.WithVerbose(debugMode))

	// Load configuration; --provider builds one from the environment instead
	var cfg *config.Config
	var err error
	if generateProvider != "" {
		cfg, err = config.FromEnvironment(generateProvider, modelName)
	} else {
		cfg, err = config.Load(configFile)
		if err != nil && configFile == "" {
			// No config file anywhere: fall back to environment credentials
			cfg, err = config.FromEnvironment("", "")
		}
	}
	if err != nil {
		return &ExitError{Code: ExitUnknown, Err: fmt.Errorf("failed to load config: %w", err)}
	}

	log.DebugConfig("Configuration", cfg)

	modelConfig, err := cfg.GetModel(modelName)
	if err != nil {
		return &ExitError{Code: ExitUnknown, Err: fmt.Errorf("failed to get model config: %w", err)}
	}

	log.Debug("Using model: %s (provider: %s)", modelConfig.Model, modelConfig.Provider)

	language := cfg.GetLanguage(generateLanguage)
	if !lang.ParseLanguage(language).IsValid() {
		return &ExitError{Code: ExitUnknown, Err: fmt.Errorf("unsupported language: %s", language)}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return &ExitError{Code: ExitUnknown, Err: fmt.Errorf("failed to get current directory: %w", err)}
	}

	gitExec := git.NewExecutor(cwd)
	if !gitExec.IsRepo(ctx) {
		return &ExitError{Code: ExitNotARepo, Err: fmt.Errorf("not a git repository: %s", cwd)}
	}

	_ = printer.PrintProgress("Staging changes...")
	if err := gitExec.StageAll(ctx); err != nil {
		return &ExitError{Code: ExitStageFailed, Err: fmt.Errorf("failed to stage changes: %w", err)}
	}

	factory := llm.NewProviderFactory()
	provider, err := factory.Create(*modelConfig)
	if err != nil {
		return &ExitError{Code: ExitAPIError, Err: fmt.Errorf("failed to create LLM provider: %w", err)}
	}

	agentCfg := cfg.GetAgentConfig()
	agentOpts := agent.CommitAgentOptions{
		Language:    language,
		GitExecutor: gitExec,
		LLMProvider: provider,
		Printer:     printer,
		Output:      progressOut,
		Debug:       debugMode,
		MaxSteps:    agentCfg.MaxSteps,
		Limits: tools.Limits{
			MaxLinesPerRead: agentCfg.MaxLinesPerRead,
			MaxFileSize:     int64(agentCfg.MaxFileSizeKB) * 1024,
			OutlineMaxLines: agentCfg.OutlineMaxLines,
		},
		TreeMaxDepth: agentCfg.TreeMaxDepth,
		TreeMaxFiles: agentCfg.TreeMaxFiles,
	}

	commitAgent, err := agent.NewCommitAgent(agentOpts)
	if err != nil {
		return &ExitError{Code: ExitUnknown, Err: fmt.Errorf("failed to create commit agent: %w", err)}
	}

	_ = printer.PrintThinking("Starting commit message generation...")

	response, err := commitAgent.GenerateCommitMessage(ctx, agent.CommitRequest{
		Language: language,
		Context:  generateContext,
	})
	if err != nil {
		return &ExitError{Code: exitCodeFor(err), Err: err}
	}

	if generatePrintOnly {
		fmt.Println(response.Message)
		return nil
	}

	if err := ui.ShowCommitMessage(response.Message, os.Stdout); err != nil {
		return &ExitError{Code: ExitUnknown, Err: err}
	}

	// Ask for confirmation (default is Yes)
	if !generateAutoYes {
		confirmed, err := ui.ConfirmWithDefault("\nDo you want to commit with this message?", true, os.Stdin, os.Stdout)
		if err != nil {
			return &ExitError{Code: ExitUnknown, Err: err}
		}
		if !confirmed {
			fmt.Println("Commit cancelled.")
			return nil
		}
	}

	if err := gitExec.Commit(ctx, response.Message); err != nil {
		return &ExitError{Code: ExitCommitFailed, Err: fmt.Errorf("failed to commit: %w", err)}
	}

	_ = printer.PrintSuccess("Commit created successfully!")
	return nil
}
