package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coreh/linkshare/config"
	"github.com/coreh/linkshare/logging"
)

var (
	cfgFile  string
	v        = viper.New()
	settings *config.Settings
	logger   logging.Logger = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "linkshare",
	Short: "linkshare - themed link pages from a folder tree",
	Long: `linkshare serves a tree of folders as themed link pages. Each folder with a
config.toml becomes a page with its own links, files and media, and any page
can be locked behind a password.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./linkshare.toml)")
	flags.String("content", "content", "content directory")
	flags.String("themes", "themes", "themes directory")
	flags.String("locales", "locales", "locales directory")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text or json)")
	flags.String("base-url", "", "public URL of the site, used for the sitemap")

	_ = v.BindPFlag("content_dir", flags.Lookup("content"))
	_ = v.BindPFlag("themes_dir", flags.Lookup("themes"))
	_ = v.BindPFlag("locales_dir", flags.Lookup("locales"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log_format", flags.Lookup("log-format"))
	_ = v.BindPFlag("base_url", flags.Lookup("base-url"))
}

func initializeConfig(cmd *cobra.Command) error {
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("linkshare")
	}

	v.SetEnvPrefix("LINKSHARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	usedFile := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return errors.Wrap(err, "failed to read config file")
		}
	} else {
		usedFile = v.ConfigFileUsed()
	}

	s, err := config.LoadSettings(v)
	if err != nil {
		return err
	}
	settings = s

	logger = logging.New(logging.Config{
		Level:  s.LogLevel,
		Format: s.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	if usedFile != "" {
		logger.Debug(cmd.Context(), "using config file", "file", usedFile)
	}
	return nil
}
