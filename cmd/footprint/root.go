package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ochairo/footprint/internal/config"
	"github.com/ochairo/footprint/internal/domain/interfaces"
	"github.com/ochairo/footprint/internal/external-adapters/zerolog"
	"github.com/ochairo/footprint/internal/output"
)

// app carries the state shared by every command of one invocation
type app struct {
	v         *viper.Viper
	cfgFile   string
	outputFmt string
	quiet     bool

	cfg       *config.Config
	logger    interfaces.Logger
	formatter *output.Formatter
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "footprint",
		Short: "footprint - Build artifact composition analyzer",
		Long: `footprint breaks a game build down by what takes up space in it.

It reads, in order of preference, the build tool's packed-size metadata, the
artifact itself (APK, AAB, IPA, app bundle or output directory), the last build
section of the shared editor log, and the last breakdown cached for the project.

Get started:
  footprint analyze --artifact Builds/game.apk --platform android
  footprint --help`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./"+config.FileName+")")
	pf.StringVarP(&a.outputFmt, "output", "o", "table", "output format: table, json, yaml")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "minimal output")
	pf.String("project", ".", "project root directory")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console, json")

	bindKey(pf, "project", "project.root")
	bindKey(pf, "log-level", "log.level")
	bindKey(pf, "log-format", "log.format")

	root.AddCommand(newAnalyzeCmd(a))
	root.AddCommand(newClassifyCmd(a))
	root.AddCommand(newCacheCmd(a))
	root.AddCommand(newVerifyCmd(a))
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newVersionCmd())

	return root
}

// load reads the configuration and sets up logging and output for the running command
func (a *app) load(cmd *cobra.Command, _ []string) error {
	cmd.SilenceErrors = a.quiet

	// Bind only the running command's flags; several commands share config keys
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if keys := f.Annotations[configKeyAnnotation]; len(keys) == 1 && bindErr == nil {
			bindErr = a.v.BindPFlag(keys[0], f)
		}
	})
	if bindErr != nil {
		return fmt.Errorf("failed to bind flags: %w", bindErr)
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := zerolog.New(zerolog.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Out:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.logger = logger

	format, err := output.ParseFormat(a.outputFmt)
	if err != nil {
		return err
	}
	a.formatter = output.NewFormatter(format, a.quiet)
	a.formatter.Writer = cmd.OutOrStdout()

	return nil
}

const configKeyAnnotation = "footprint_config_key"

// bindKey marks flag name as the command-line source of config key
func bindKey(fs *pflag.FlagSet, name, key string) {
	_ = fs.SetAnnotation(name, configKeyAnnotation, []string{key})
}
