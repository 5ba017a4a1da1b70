package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quantmind-br/modman/internal/config"
	"github.com/quantmind-br/modman/internal/domain"
	"github.com/quantmind-br/modman/internal/manifest"
	"github.com/quantmind-br/modman/internal/output"
	"github.com/quantmind-br/modman/internal/utils"
)

// Orchestrator coordinates loading, merging and writing manifests
type Orchestrator struct {
	config *config.Config
	loader *manifest.Loader
	writer *output.Writer
	logger *utils.Logger
}

// OrchestratorOptions contains options for creating an orchestrator
type OrchestratorOptions struct {
	domain.CommonOptions
	Config *config.Config
	// Logger overrides the logger built from Config.Logging
	Logger *utils.Logger
}

// RunOptions names the manifests of a single run
type RunOptions struct {
	StaticFile     string
	SourceFile     string
	ProjectsFile   string
	KeepTags       bool
	OutputFile     string
	BranchListFile string
}

// NewOrchestrator creates a new orchestrator with the given configuration
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	cfg := opts.Config

	// Validate config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := opts.Logger
	if logger == nil {
		logLevel := "info"
		logFormat := "pretty"
		if cfg.Logging.Level != "" {
			logLevel = cfg.Logging.Level
		}
		if cfg.Logging.Format != "" {
			logFormat = cfg.Logging.Format
		}

		logger = utils.NewLogger(utils.LoggerOptions{
			Level:   logLevel,
			Format:  logFormat,
			Verbose: opts.Verbose,
		})
	}

	return &Orchestrator{
		config: cfg,
		loader: manifest.NewLoader(),
		writer: output.NewWriter(output.WriterOptions{
			DryRun: opts.DryRun,
			Logger: logger,
		}),
		logger: logger,
	}, nil
}

// Validate checks that the required manifests were named
func (o *Orchestrator) Validate(opts RunOptions) error {
	switch {
	case opts.StaticFile == "" && opts.SourceFile == "":
		return domain.ErrNoArguments
	case opts.StaticFile == "":
		return domain.ErrNoStaticFile
	case opts.SourceFile == "":
		return domain.ErrNoSourceFile
	}
	return nil
}

// Run merges the static manifest into the source manifest and writes the
// merged manifest and the branch list. Nothing is written when loading or
// merging fails.
func (o *Orchestrator) Run(ctx context.Context, opts RunOptions) (*manifest.Result, error) {
	startTime := time.Now()

	if err := o.Validate(opts); err != nil {
		return nil, err
	}

	outputFile := opts.OutputFile
	if outputFile == "" {
		outputFile = o.config.Output.File
	}
	branchListFile := opts.BranchListFile
	if branchListFile == "" {
		branchListFile = o.config.Output.BranchList
	}

	mergeOpts := o.config.MergeOptions()
	if opts.KeepTags {
		mergeOpts.KeepTags = true
	}

	o.logger.Debug().
		Str("static", opts.StaticFile).
		Str("source", opts.SourceFile).
		Str("projects", opts.ProjectsFile).
		Bool("keep_tags", mergeOpts.KeepTags).
		Msg("Merging manifests")

	result, err := manifest.MergeFiles(o.loader, opts.SourceFile, opts.StaticFile, opts.ProjectsFile, mergeOpts, o.logger)
	if err != nil {
		return nil, classify(err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	err = o.writer.WriteAll(ctx, []output.File{
		{Path: outputFile, Content: result.Source},
		{Path: branchListFile, Content: result.Match},
	})
	if err != nil {
		return nil, domain.NewStageError(domain.StageWrite, err)
	}

	o.logger.Info().Msgf("Done writing to %s and %s", outputFile, branchListFile)
	o.logger.Debug().
		Int("updated", len(result.Updated)).
		Int("kept", len(result.Kept)).
		Int("missing", len(result.Missing)).
		Bool("self_merge", result.SelfMerge).
		Dur("duration", time.Since(startTime)).
		Msg("Merge summary")

	return result, nil
}

// classify attaches the stage a merge failure belongs to
func classify(err error) error {
	var parseErr *manifest.ParseError
	switch {
	case errors.As(err, &parseErr):
		return domain.NewStageError(domain.StageParse, err)
	case errors.Is(err, manifest.ErrMissingAttribute), errors.Is(err, manifest.ErrNodeNotFound),
		errors.Is(err, manifest.ErrInvalidName):
		return domain.NewStageError(domain.StageMerge, err)
	default:
		return domain.NewStageError(domain.StageRead, err)
	}
}
