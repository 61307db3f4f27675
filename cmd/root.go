package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/certquiz/internal/config"
	"github.com/abhisek/certquiz/internal/content"
	"github.com/abhisek/certquiz/internal/eventlog"
	"github.com/abhisek/certquiz/internal/files"
	"github.com/abhisek/certquiz/internal/llm"
)

var rootCmd = &cobra.Command{
	Use:   "certquiz",
	Short: "AI study assistant for certification exams",
	Long:  "Certquiz turns a structured exam outline into diagnostic questions, quizzes you on them, and uses an AI grader to target your weak areas.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("content", "", "Path to exam content JSON (overrides CERTQUIZ_CONTENT_PATH)")
	rootCmd.PersistentFlags().String("files-dir", "", "Flat-file workspace directory (overrides CERTQUIZ_FILES_DIR)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(enrichCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(flashcardsCmd)
	rootCmd.AddCommand(imagesCmd)
	rootCmd.AddCommand(podcastCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(versionCmd)
}

// appEnv is the shared wiring every command needs: resolved config, the
// flat-file workspace, and the content path.
type appEnv struct {
	cfg config.Config
	dir files.Dir
}

// loadEnv resolves config and the files directory, applying flag overrides.
func loadEnv(cmd *cobra.Command) (appEnv, error) {
	cfg := config.Load()
	if p, _ := cmd.Flags().GetString("content"); p != "" {
		cfg.ContentPath = p
	}
	if d, _ := cmd.Flags().GetString("files-dir"); d != "" {
		cfg.FilesDir = d
	}

	dir, err := files.Resolve(cfg.FilesDir)
	if err != nil {
		return appEnv{}, err
	}
	return appEnv{cfg: cfg, dir: dir}, nil
}

// loadContent additionally requires and loads the content tree.
func loadContent(cmd *cobra.Command) (appEnv, *content.Tree, error) {
	env, err := loadEnv(cmd)
	if err != nil {
		return appEnv{}, nil, err
	}
	if err := env.cfg.RequireContent(); err != nil {
		return appEnv{}, nil, err
	}
	return env, content.Load(env.cfg.ContentPath), nil
}

// newProvider builds the configured LLM provider with event logging into
// the workspace's JSONL log.
func (e appEnv) newProvider(ctx context.Context) (llm.Provider, error) {
	provider, err := llm.NewProviderFromEnv(ctx, eventlog.Open(e.dir.EventLogFile()))
	if err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}
	return provider, nil
}

// newMediaProvider builds the image/speech provider, which only the OpenAI
// backend offers.
func (e appEnv) newMediaProvider() (llm.MediaProvider, error) {
	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("LLM provider not configured: %w", err)
		}
		cfg = discovered
	}
	return llm.NewMediaProvider(cfg)
}
