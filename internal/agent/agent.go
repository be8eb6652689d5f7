package agent

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/autocommit/autocommit-go/internal/agent/tools"
	"github.com/autocommit/autocommit-go/internal/briefing"
	"github.com/autocommit/autocommit-go/internal/config"
	"github.com/autocommit/autocommit-go/internal/git"
	"github.com/autocommit/autocommit-go/internal/llm"
	"github.com/autocommit/autocommit-go/internal/log"
	"github.com/autocommit/autocommit-go/internal/ui"
)

// DefaultMaxSteps is the default step ceiling for the investigation loop
const DefaultMaxSteps = 8

// CommitRequest represents a request to generate a commit message
type CommitRequest struct {
	Language string // Output language
	Context  string // User-provided context (optional)
}

// CommitResponse represents the generated commit message
type CommitResponse struct {
	Message          string // Sanitized commit message
	Steps            int    // Number of loop steps taken
	ToolCalls        int    // Number of tool calls dispatched
	PromptTokens     int    // Number of tokens in the prompts
	CompletionTokens int    // Number of tokens in the completions
	TotalTokens      int    // Total tokens used
}

// CommitAgentOptions contains configuration for CommitAgent
type CommitAgentOptions struct {
	Language     string            // Output language (default: "en")
	GitExecutor  git.Executor      // Git executor for running git commands
	LLMProvider  llm.Provider      // LLM provider for generating messages
	Printer      *ui.StreamPrinter // Stream printer for output (optional)
	Output       io.Writer         // Output writer (used if Printer is nil)
	Debug        bool              // Enable debug mode
	MaxSteps     int               // Step ceiling (default: DefaultMaxSteps)
	Limits       tools.Limits      // Tool output ceilings
	TreeMaxDepth int               // Repository tree depth ceiling
	TreeMaxFiles int               // Repository tree file-count ceiling
}

// Validate validates the options and sets defaults
func (o *CommitAgentOptions) Validate() error {
	if o.LLMProvider == nil {
		return fmt.Errorf("LLM provider is not configured")
	}
	if o.GitExecutor == nil {
		return fmt.Errorf("git executor is not configured")
	}
	if o.Language == "" {
		o.Language = "en"
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = DefaultMaxSteps
	}
	if o.Limits == (tools.Limits{}) {
		o.Limits = tools.DefaultLimits()
	}
	return nil
}

// getPrinter returns the printer or creates a default one
func (o *CommitAgentOptions) getPrinter() *ui.StreamPrinter {
	if o.Printer != nil {
		return o.Printer
	}
	if o.Output != nil {
		return ui.NewStreamPrinter(o.Output, ui.WithVerbose(o.Debug))
	}
	return nil
}

// CommitAgent handles commit message generation. One agent serves one
// invocation: it captures the staged diff once, investigates it through the
// read-only tool sandbox, and returns a sanitized commit message.
type CommitAgent struct {
	opts CommitAgentOptions
}

// NewCommitAgent creates a new CommitAgent instance
func NewCommitAgent(opts CommitAgentOptions) (*CommitAgent, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	return &CommitAgent{
		opts: opts,
	}, nil
}

// BuildSystemPrompt generates the system prompt for commit message generation
func BuildSystemPrompt(language, context string) string {
	tmpl, err := template.New("system_prompt").Parse(CommitSystemPrompt)
	if err != nil {
		// Fallback to raw prompt if template parsing fails
		return CommitSystemPrompt
	}

	data := struct {
		Language string
		Context  string
	}{
		Language: language,
		Context:  context,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return CommitSystemPrompt
	}

	return buf.String()
}

// GenerateCommitMessage generates a commit message for the staged changes.
// It fails fast on an empty diff or a missing credential, runs at most
// MaxSteps investigation steps, then forces a final answer. Provider errors
// are classified and returned immediately; there is no retry.
func (a *CommitAgent) GenerateCommitMessage(ctx context.Context, req CommitRequest) (*CommitResponse, error) {
	printer := a.opts.getPrinter()
	stats := &ui.ExecutionStats{StartTime: time.Now()}

	printStep := func(step int, msg string) {
		if printer != nil {
			_ = printer.PrintStep(step, msg)
		}
		log.Debug("Step %d: %s", step, msg)
	}

	printProgress := func(msg string) {
		if printer != nil {
			_ = printer.PrintProgress(msg)
		}
		log.Debug("%s", msg)
	}

	printToolCall := func(name string) {
		if printer != nil {
			_ = printer.PrintToolCall(name)
		}
	}

	printToolResult := func(name string, isError bool) {
		if printer != nil {
			_ = printer.PrintToolResult(name, isError)
		}
	}

	printSuccess := func(msg string) {
		if printer != nil {
			_ = printer.PrintSuccess(msg)
		}
	}

	language := req.Language
	if language == "" {
		language = a.opts.Language
	}

	providerName := a.opts.LLMProvider.Name()
	if a.opts.LLMProvider.RequiresAPIKey() && a.opts.LLMProvider.GetConfig().APIKey == "" {
		return nil, llm.NewAPIKeyMissingError(providerName, config.KeyEnvName(providerName))
	}

	printStep(1, "Capturing staged changes...")
	diff, err := a.opts.GitExecutor.DiffCached(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get staged changes: %w", err)
	}
	if strings.TrimSpace(diff) == "" {
		return nil, llm.NewNoChangesError()
	}

	repoRoot, err := a.opts.GitExecutor.RepoRoot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve repository root: %w", err)
	}

	changeSet := briefing.ParseDiff(diff)
	sandbox := tools.NewSandbox(repoRoot, &changeSet, a.opts.Limits)

	printStep(2, "Building change briefing...")
	builder := briefing.NewBuilder(a.opts.TreeMaxDepth, a.opts.TreeMaxFiles)
	briefingText := builder.BuildFromChangeSet(&changeSet, repoRoot)

	modelName := a.opts.LLMProvider.GetConfig().Model
	printProgress(fmt.Sprintf("Initializing LLM provider (%s/%s)...", providerName, modelName))
	chatModel, err := a.opts.LLMProvider.CreateChatModel(ctx)
	if err != nil {
		return nil, llm.Classify(providerName, err)
	}
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is nil (provider: %s)", providerName)
	}
	if err := chatModel.BindTools(sandbox.Specs()); err != nil {
		return nil, fmt.Errorf("failed to bind tools: %w", err)
	}

	session := NewSession(BuildSystemPrompt(language, req.Context), briefingText)

	finish := func(text string, session Session) *CommitResponse {
		message := ExtractCommitMessage(text)
		if message == "" {
			message = FallbackMessage
		}
		stats.EndTime = time.Now()
		stats.Steps = session.Step()
		printSuccess("Commit message generated")
		if printer != nil {
			_ = printer.PrintStats(stats)
		}
		return &CommitResponse{
			Message:          message,
			Steps:            stats.Steps,
			ToolCalls:        stats.ToolCalls,
			PromptTokens:     stats.PromptTokens,
			CompletionTokens: stats.CompletionTokens,
			TotalTokens:      stats.TotalTokens,
		}
	}

	// Investigation loop: at most MaxSteps provider calls, each either
	// producing the final text or a batch of tool calls.
	for session.Step() < a.opts.MaxSteps {
		printProgress(fmt.Sprintf("Agent step %d...", session.Step()+1))

		response, err := chatModel.Generate(ctx, session.Messages())
		if err != nil {
			return nil, llm.Classify(providerName, err)
		}
		a.recordUsage(stats, response)
		session = session.Advanced()

		if len(response.ToolCalls) == 0 {
			return finish(response.Content, session), nil
		}

		session = session.WithMessages(response)
		for _, tc := range response.ToolCalls {
			printToolCall(tc.Function.Name)
			log.DebugToolCall(tc.Function.Name, tc.Function.Arguments)

			outcome := sandbox.Execute(ctx, tools.Invocation{
				ID:        tc.ID,
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			})
			stats.ToolCalls++
			printToolResult(outcome.Name, outcome.IsError)
			log.DebugToolResult(outcome.Name, outcome.Content, outcome.IsError)

			session = session.WithMessages(&schema.Message{
				Role:       schema.Tool,
				Content:    outcome.Content,
				ToolCallID: outcome.ID,
			})
		}
	}

	// Step ceiling reached: one last call that must answer, tools or not.
	printProgress("Step ceiling reached, requesting final answer...")
	session = session.WithMessages(&schema.Message{Role: schema.User, Content: ForcedAnswerPrompt})

	response, err := chatModel.Generate(ctx, session.Messages())
	if err != nil {
		return nil, llm.Classify(providerName, err)
	}
	a.recordUsage(stats, response)
	session = session.Advanced()

	return finish(response.Content, session), nil
}

// recordUsage accumulates token usage from a provider response
func (a *CommitAgent) recordUsage(stats *ui.ExecutionStats, response *schema.Message) {
	if response == nil || response.ResponseMeta == nil || response.ResponseMeta.Usage == nil {
		return
	}
	usage := response.ResponseMeta.Usage
	stats.PromptTokens += usage.PromptTokens
	stats.CompletionTokens += usage.CompletionTokens
	stats.TotalTokens += usage.TotalTokens
	log.DebugTokenUsage(usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
}
