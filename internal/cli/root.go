package cli

import (
	"github.com/enyojs/enyo-dev/internal/branding"
	"github.com/enyojs/enyo-dev/internal/config"
	"github.com/enyojs/enyo-dev/internal/logger"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	logLevel string
	log      = logger.Discard()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds application projects and resolves the libraries
they depend on, either as private copies or as links to shared checkouts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		level := logLevel
		if level == "" {
			level = config.LogLevel()
		}
		log = logger.New(level)
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		log.Error(err.Error())
	}
	return err
}
