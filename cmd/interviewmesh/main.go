// Package main implements the interviewmesh CLI: an automated technical
// interview on the console. Four LLM agents (interviewer, mentor, vibe-master,
// manager) share one conversation state, and the final hiring feedback is
// printed when the session ends.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hupe1980/interviewmesh"
	"github.com/hupe1980/interviewmesh/config"
	"github.com/hupe1980/interviewmesh/engine"
	"github.com/hupe1980/interviewmesh/logging"
	"github.com/hupe1980/interviewmesh/model"
	"github.com/hupe1980/interviewmesh/model/anthropic"
	"github.com/hupe1980/interviewmesh/model/openai"
	"github.com/hupe1980/interviewmesh/transcript"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "interviewmesh",
		Short: "Conduct an automated technical interview on the console",
		Long: `interviewmesh runs a multi-agent technical interview: an interviewer asks
questions, a mentor grades every answer, a vibe-master watches for a wish to
stop, and a manager writes the final hiring feedback.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInterview(cmd, configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")

	return cmd
}

func runInterview(cmd *cobra.Command, configPath string) error {
	// Missing .env is fine, the environment may already be set.
	_ = godotenv.Load()

	cfg := config.Default()

	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	llm, err := buildModel(cfg.Model)
	if err != nil {
		return err
	}

	sink, closeSink, err := buildSink(cfg.Transcript)
	if err != nil {
		return err
	}
	defer closeSink()

	out := cmd.OutOrStdout()

	// One buffered reader for both the intake and the interview, so neither
	// swallows input meant for the other.
	stdin := bufio.NewReader(os.Stdin)
	candidate := intakeCandidate(stdin, out)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mesh := interviewmesh.New(llm, engine.NewReaderSource(stdin), func(o *interviewmesh.Options) {
		o.MaxQuestions = cfg.Interview.MaxQuestions
		o.MaxHallucinations = cfg.Interview.MaxHallucinations
		o.MaxRetries = cfg.Resolver.MaxRetries
		o.RetryDelay = cfg.Resolver.RetryDelay
		o.Sink = sink
		o.Logger = logger
		o.OnMessage = func(message string) {
			fmt.Fprintf(out, "\nInterviewer: %s\n> ", message)
		}
	})

	state, err := mesh.Run(ctx, candidate)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nInterview finished (%s).\n", state.StopReason)

	if state.FinalFeedback != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, state.FinalFeedback.Render())
	}

	return nil
}

func buildModel(cfg config.ModelConfig) (model.Model, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openai.NewModel(func(o *openai.Options) {
			o.Model = cfg.Name
			o.Temperature = cfg.Temperature
		}), nil
	case config.ProviderAnthropic:
		return anthropic.NewModel(func(o *anthropic.Options) {
			o.Model = anthropicsdk.Model(cfg.Name)
			o.Temperature = cfg.Temperature
		}), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}

func buildSink(cfg config.TranscriptConfig) (transcript.Sink, func(), error) {
	var sinks []transcript.Sink

	closeSink := func() {}

	if cfg.Dir != "" {
		fileSink, err := transcript.NewFileSink(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, fileSink)
	}

	if cfg.SQLitePath != "" {
		sqliteSink, err := transcript.NewSQLiteSink(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, sqliteSink)
		closeSink = func() { _ = sqliteSink.Close() }
	}

	if len(sinks) == 0 {
		return transcript.NoOpSink{}, closeSink, nil
	}

	return transcript.NewMultiSink(sinks...), closeSink, nil
}

// intakeCandidate prompts for the candidate's identity, falling back to demo
// defaults on empty input.
func intakeCandidate(reader *bufio.Reader, out io.Writer) interviewmesh.Candidate {
	ask := func(prompt, fallback string) string {
		fmt.Fprintf(out, "%s [%s]: ", prompt, fallback)

		line, err := reader.ReadString('\n')
		if err != nil {
			return fallback
		}

		line = strings.TrimSpace(line)
		if line == "" {
			return fallback
		}

		return line
	}

	return interviewmesh.Candidate{
		Name:       ask("Candidate name", "Alex Doe"),
		Role:       ask("Position", "Go Developer"),
		Grade:      ask("Grade (Junior/Middle/Senior)", "Middle"),
		Experience: ask("Experience", "3 years of backend development"),
	}
}
