package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/quantmind-br/modman/internal/app"
	"github.com/quantmind-br/modman/internal/config"
	"github.com/quantmind-br/modman/internal/domain"
	"github.com/quantmind-br/modman/internal/utils"
	"github.com/quantmind-br/modman/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line and returns the process exit code
func execute(args []string, stdout, stderr io.Writer) int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		var logged loggedError
		if !errors.As(err, &logged) {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

// loggedError marks a failure that run already reported through the logger
type loggedError struct {
	error
}

func (e loggedError) Unwrap() error {
	return e.error
}

// cliOptions holds the flags of a single invocation
type cliOptions struct {
	cfgFile     string
	verbose     bool
	dryRun      bool
	static      string
	source      string
	projects    string
	keepTags    bool
	tag         string
	matchAttr   string
	replaceAttr string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &cliOptions{}
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "modman [OPTIONS] [OUTPUT-FILE] [BRANCHLIST-FILE]",
		Short: "Pin manifest projects to static revisions",
		Long: `modman modifies manifest files to put static references to a list of
projects.

It takes at least two manifests:
 * a static manifest with sha-1 revisions (-s)
 * an input source manifest providing the project names (-i)
 * optionally, a manifest selecting the projects to modify (-p)

The merged manifest is written to OUTPUT-FILE (default output.xml) and the
selected projects to BRANCHLIST-FILE (default branchlist.xml).`,
		Example: `  modman -i default.xml -s static.xml -p projects.xml output.xml
  modman -k -i default.xml -s static.xml`,
		Version:       version.Short(),
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, opts, args, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVarP(&opts.static, "static", "s", "", "File containing static manifest with sha-1 references (for all projects mentioned in editlist)")
	flags.StringVarP(&opts.source, "input-source", "i", "", "File containing the manifest you want to modify")
	flags.StringVarP(&opts.projects, "projects", "p", "", "File containing manifest of projects to modify")
	flags.BoolVarP(&opts.keepTags, "keep-tags", "k", false, "Keep the revision, if revision in source manifest is a tag")

	flags.StringVar(&opts.tag, "tag", config.DefaultTag, "Element name to merge")
	flags.StringVar(&opts.matchAttr, "match-attribute", config.DefaultMatchAttribute, "Attribute joining the manifests")
	flags.StringVar(&opts.replaceAttr, "replace-attribute", config.DefaultReplaceAttribute, "Attribute whose value is replaced")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Merge without writing files")

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ~/.modman/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")

	// Bind flags to viper
	_ = v.BindPFlag("merge.keep_tags", flags.Lookup("keep-tags"))
	_ = v.BindPFlag("merge.tag", flags.Lookup("tag"))
	_ = v.BindPFlag("merge.match_attribute", flags.Lookup("match-attribute"))
	_ = v.BindPFlag("merge.replace_attribute", flags.Lookup("replace-attribute"))

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newConfigCmd(v, opts))

	return cmd
}

// loadConfig reads configuration through v, honouring --config
func loadConfig(v *viper.Viper, opts *cliOptions) (*config.Config, error) {
	if opts.cfgFile != "" {
		v.SetConfigFile(utils.ExpandPath(opts.cfgFile))
	}

	cfg, err := config.LoadFrom(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, verbose bool, out io.Writer) *utils.Logger {
	level, format := config.DefaultLogLevel, config.DefaultLogFormat
	if cfg != nil {
		level, format = cfg.Logging.Level, cfg.Logging.Format
	}
	return utils.NewLogger(utils.LoggerOptions{
		Level:   level,
		Format:  format,
		Output:  out,
		Verbose: verbose,
	})
}

func run(cmd *cobra.Command, v *viper.Viper, opts *cliOptions, args []string, stderr io.Writer) error {
	cfg, err := loadConfig(v, opts)
	if err != nil {
		newLogger(nil, opts.verbose, stderr).Error().Err(err).Msg("Invalid configuration")
		return loggedError{err}
	}
	log := newLogger(cfg, opts.verbose, stderr)

	runOpts := app.RunOptions{
		StaticFile:   opts.static,
		SourceFile:   opts.source,
		ProjectsFile: opts.projects,
		KeepTags:     cfg.Merge.KeepTags,
	}
	if len(args) > 0 {
		runOpts.OutputFile = args[0]
	}
	if len(args) > 1 {
		runOpts.BranchListFile = args[1]
	}

	orchestrator, err := app.NewOrchestrator(app.OrchestratorOptions{
		CommonOptions: domain.CommonOptions{
			Verbose: opts.verbose,
			DryRun:  opts.dryRun,
		},
		Config: cfg,
		Logger: log,
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	if err := orchestrator.Validate(runOpts); err != nil {
		if !errors.Is(err, domain.ErrNoArguments) {
			_ = cmd.Usage()
		}
		log.Error().Msg(err.Error())
		return loggedError{err}
	}

	if _, err := orchestrator.Run(cmd.Context(), runOpts); err != nil {
		log.Error().Msg(err.Error())
		return loggedError{err}
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		},
	}
}

func newConfigCmd(v *viper.Viper, opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, opts)
			if err != nil {
				return err
			}
			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
