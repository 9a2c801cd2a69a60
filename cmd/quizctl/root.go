package main

import (
	"encoding/json"
	"io"

	"video-quiz/internal/config"
	"video-quiz/internal/domain"
	"video-quiz/internal/logger"
	"video-quiz/internal/resolver"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// deps are the collaborators commands build from configuration.
type deps struct {
	loadConfig  func() (*config.Config, error)
	newResolver func(cfg *config.Config) (domain.MediaResolver, error)
}

func defaultDeps() deps {
	return deps{
		loadConfig: config.LoadConfig,
		newResolver: func(cfg *config.Config) (domain.MediaResolver, error) {
			return resolver.NewFromConfig(cfg, nil, logger.Get())
		},
	}
}

func newRootCmd(d deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "quizctl",
		Short:         "Resolve videos and build quiz prompts from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if lo.Must(cmd.Flags().GetBool("verbose")) {
				level = "debug"
			}
			return logger.Initialize(config.LoggerConfig{Env: "development", Level: level, Output: "stderr"})
		},
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")
	root.PersistentFlags().StringP("lang", "l", domain.DefaultLanguage, "Subtitle language code")
	lo.Must0(viper.BindPFlag("provider.language", root.PersistentFlags().Lookup("lang")))

	root.AddCommand(newResolveCmd(d), newPromptCmd(d), newNormalizeCmd())

	cc.Init(&cc.Config{
		RootCmd:       root,
		Headings:      cc.HiCyan + cc.Bold + cc.Underline,
		Commands:      cc.HiYellow + cc.Bold,
		Example:       cc.Italic,
		ExecName:      cc.Bold,
		Flags:         cc.Bold,
		FlagsDataType: cc.Italic + cc.HiBlue,
	})

	return root
}

// resolveRecord loads configuration and resolves url. --lang overrides
// provider.language.
func resolveRecord(cmd *cobra.Command, d deps, url string) (*domain.MediaRecord, error) {
	cfg, err := d.loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.File != "" {
		logger.Get().Debug("Using config file", zap.String("path", cfg.File))
	}
	r, err := d.newResolver(cfg)
	if err != nil {
		return nil, err
	}
	return r.Resolve(cmd.Context(), domain.NewVideoReference(url, cfg.Provider.Language))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
