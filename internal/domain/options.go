package domain

// CommonOptions contains shared options for orchestration and output.
type CommonOptions struct {
	Verbose bool
	DryRun  bool
}
