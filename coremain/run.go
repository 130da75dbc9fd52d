package coremain

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pmkol/tasklist/mlog"
)

// Version is set at build time.
var Version = "dev"

type runFlags struct {
	c        string
	dir      string
	format   string
	metrics  bool
	parallel int
}

var rootCmd = &cobra.Command{
	Use: "tasklist",
}

func init() {
	rootCmd.AddCommand(newRunCmd(), newVersionCmd())
}

func newRunCmd() *cobra.Command {
	rf := new(runFlags)
	c := &cobra.Command{
		Use:   "run [-c config_file] [-d working_dir]",
		Short: "Build the task queues and drain them.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return StartRun(rf, cmd)
		},
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
	}
	fs := c.Flags()
	fs.StringVarP(&rf.c, "config", "c", "", "config file")
	fs.StringVarP(&rf.dir, "dir", "d", "", "working dir")
	fs.StringVar(&rf.format, "format", formatText, "output format, text or yaml")
	fs.BoolVar(&rf.metrics, "metrics", false, "print metrics after the run")
	fs.IntVar(&rf.parallel, "parallel", -1, "max queues drained at the same time, overrides config if >= 0")
	return c
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print out version info and exit.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}

func Run() error {
	return rootCmd.Execute()
}

func StartRun(rf *runFlags, cmd *cobra.Command) error {
	if rf.format != formatText && rf.format != formatYAML {
		return fmt.Errorf("unknown output format %q", rf.format)
	}

	if len(rf.dir) > 0 {
		err := os.Chdir(rf.dir)
		if err != nil {
			return fmt.Errorf("failed to change the current working directory, %w", err)
		}
		mlog.L().Info("working directory changed", zap.String("path", rf.dir))
	}

	cfg, fileUsed, err := loadConfig(rf.c)
	if err != nil {
		return fmt.Errorf("fail to load config, %w", err)
	}

	if lv, err := zapcore.ParseLevel(cfg.Log.Level); err == nil {
		mlog.SetLevel(lv)
	}

	if len(fileUsed) > 0 {
		if err := mergeInclude(cfg, 0, []string{fileUsed}); err != nil {
			return fmt.Errorf("failed to load sub config file, %w", err)
		}
	} else {
		mlog.L().Info("no config file found, using the built-in demo queue")
	}

	if rf.parallel >= 0 {
		cfg.Parallel = rf.parallel
	}

	return RunTasklist(cmd.Context(), cfg, &Output{
		W:       cmd.OutOrStdout(),
		Format:  rf.format,
		Metrics: rf.metrics,
	})
}

// loadConfig load a config from a file. If filePath is empty, it will
// automatically search and load a file which name start with "config".
// If no such file exists, the built-in default config is returned with
// an empty fileUsed.
func loadConfig(filePath string) (*Config, string, error) {
	v := viper.New()

	if len(filePath) > 0 {
		v.SetConfigFile(filePath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if len(filePath) == 0 && errors.As(err, &notFound) {
			return defaultConfig(), "", nil
		}
		return nil, "", fmt.Errorf("failed to read config: %w", err)
	}

	decoderOpt := func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
		cfg.TagName = "yaml"
		cfg.WeaklyTypedInput = true
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg, decoderOpt); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, v.ConfigFileUsed(), nil
}

func mergeInclude(cfg *Config, depth int, paths []string) error {
	depth++
	if depth > 8 {
		return fmt.Errorf("maximum include depth reached, include path is %s", strings.Join(paths, " -> "))
	}

	var included []QueueConfig
	for _, subCfgFile := range cfg.Include {
		subPaths := slices.Concat(paths, []string{subCfgFile})
		mlog.L().Info("reading sub config", zap.String("file", subCfgFile))
		subCfg, _, err := loadConfig(subCfgFile)
		if err != nil {
			return fmt.Errorf("failed to load sub config, %w", err)
		}
		if err := mergeInclude(subCfg, depth, subPaths); err != nil {
			return err
		}
		included = append(included, subCfg.Queues...)
	}

	cfg.Queues = append(included, cfg.Queues...)
	return nil
}
