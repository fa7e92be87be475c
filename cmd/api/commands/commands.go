package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/responder/core/internal/adapters/repository"
	"github.com/responder/core/internal/application/services"
	"github.com/responder/core/internal/infrastructure/config"
	"github.com/responder/core/internal/infrastructure/logger"
	"github.com/responder/core/internal/infrastructure/server"
	"github.com/responder/core/internal/infrastructure/storage"
	"github.com/responder/core/internal/ports"
)

// Version is overridden at build time with -ldflags
var Version = "dev"

var configFile string

// NewRootCommand builds the responder command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "responder",
		Short:         "Responder API Server",
		Long:          `Responder serves questions and their answers over HTTP, keeping the whole collection in a single JSON file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file (yaml, json or toml)")

	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewInitCommand())
	rootCmd.AddCommand(NewQuestionsCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Responder API server",
		Long:  "Start the Responder API server with all configured routes and middleware",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// NewInitCommand creates the command that writes an empty collection
func NewInitCommand() *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty questions file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			if err := storage.Init(cfg.Storage.Path, force); err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty question store at %s\n", cfg.Storage.Path)
			return nil
		},
	}

	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return initCmd
}

// NewQuestionsCommand creates the offline question management commands
func NewQuestionsCommand() *cobra.Command {
	questionsCmd := &cobra.Command{
		Use:   "questions",
		Short: "Question management commands",
		Long:  "List, add and export questions directly in the backing file",
	}

	questionsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every question as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}

			questions, err := svc.ListQuestions(cmd.Context())
			if err != nil {
				return err
			}

			return printJSON(cmd, questions)
		},
	})

	var summary, author string

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a question",
		RunE: func(cmd *cobra.Command, args []string) error {
			if summary == "" || author == "" {
				return errors.New("summary and author are required")
			}

			svc, err := openService()
			if err != nil {
				return err
			}

			question, err := svc.CreateQuestion(cmd.Context(), ports.CreateQuestionRequest{Summary: summary, Author: author})
			if err != nil {
				return err
			}

			return printJSON(cmd, question)
		},
	}
	addCmd.Flags().StringVar(&summary, "summary", "", "question summary (required)")
	addCmd.Flags().StringVar(&author, "author", "", "question author (required)")
	questionsCmd.AddCommand(addCmd)

	var answerSummary, answerAuthor string

	answerCmd := &cobra.Command{
		Use:   "answer <question-id>",
		Short: "Add an answer to a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if answerSummary == "" || answerAuthor == "" {
				return errors.New("summary and author are required")
			}

			svc, err := openService()
			if err != nil {
				return err
			}

			answer, err := svc.CreateAnswer(cmd.Context(), args[0], ports.CreateAnswerRequest{Summary: answerSummary, Author: answerAuthor})
			if err != nil {
				return err
			}

			return printJSON(cmd, answer)
		},
	}
	answerCmd.Flags().StringVar(&answerSummary, "summary", "", "answer summary (required)")
	answerCmd.Flags().StringVar(&answerAuthor, "author", "", "answer author (required)")
	questionsCmd.AddCommand(answerCmd)

	var format string

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Dump the whole collection as JSON or YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}

			questions, err := svc.ListQuestions(cmd.Context())
			if err != nil {
				return err
			}

			switch format {
			case "json":
				data, err := storage.Encode(questions)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			case "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(questions); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
		},
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	questionsCmd.AddCommand(exportCmd)

	return questionsCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Responder version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Responder %s\n", Version)
		},
	}
}

func runServer(ctx context.Context) error {
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	store, err := storage.Open(cfg.Storage)
	if err != nil {
		appLogger.Errorw("Failed to open question storage", "error", err, "path", cfg.Storage.Path)
		return err
	}

	srv, err := server.New(cfg, store, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLogger.Infow("Starting Responder API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"storage", cfg.Storage.Path,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(cfg.Server.GetAddr())
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// openService wires the store for offline commands. Logging is discarded so
// command output stays machine readable.
func openService() (*services.QuestionService, error) {
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	store, err := storage.Open(cfg.Storage)
	if err != nil {
		return nil, err
	}

	return services.NewQuestionService(repository.NewQuestionRepository(store), logger.NewNop()), nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
