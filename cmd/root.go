package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/sikuli-cli/internal/config"
	"github.com/mj1618/sikuli-cli/internal/logging"
	"github.com/mj1618/sikuli-cli/internal/output"
	"github.com/mj1618/sikuli-cli/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	appCfg *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "sikuli-cli",
	Short: "Drive a SikuliX interpreter from the command line",
	Long: `A CLI that finds images on screen and clicks, hovers, drags, or highlights
them by driving a SikuliX interactive interpreter.

Targets are images (--image, optionally --similar and --offset) or screen
regions (--region x,y,w,h, --screen n, or --focused-window).`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Indent JSON output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./sikuli-cli.yaml or ~/.config/sikuli-cli/sikuli-cli.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Override logger.level: debug, info, warn, error")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")

		path, _ := rootCmd.PersistentFlags().GetString("config")
		v := viper.New()
		if err := v.BindPFlag("logger.level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
			return err
		}
		cfg, err := config.Load(v, path)
		if err != nil {
			return err
		}
		l, err := logging.New(cfg.Logger)
		if err != nil {
			return err
		}
		appCfg, logger = cfg, l
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	}
}
