package output

import (
	"context"
	"fmt"
	"io"

	"github.com/google/renameio/v2"
	"github.com/quantmind-br/modman/internal/utils"
)

//go:generate mockgen -destination=../../tests/mocks/renderer_mock.go -package=mocks github.com/quantmind-br/modman/internal/output Renderer

// Renderer is anything that can serialize itself, such as a manifest.Document
type Renderer interface {
	WriteTo(w io.Writer) (int64, error)
}

// File pairs a destination path with the content to write there
type File struct {
	Path    string
	Content Renderer
}

// Writer writes rendered manifests to disk
type Writer struct {
	dryRun bool
	logger *utils.Logger
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	DryRun bool
	Logger *utils.Logger
}

// NewWriter creates a new output writer
func NewWriter(opts WriterOptions) *Writer {
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}

	return &Writer{
		dryRun: opts.DryRun,
		logger: logger.WithComponent("writer"),
	}
}

// WriteAll renders every file and stages it next to its destination before
// any destination is touched, so a render or staging failure leaves nothing
// behind. The staged files are then renamed into place.
func (w *Writer) WriteAll(ctx context.Context, files []File) error {
	rendered := make([]*pendingContent, 0, len(files))
	for _, f := range files {
		pc := &pendingContent{path: f.Path}
		if _, err := f.Content.WriteTo(pc); err != nil {
			return fmt.Errorf("render %s: %w", f.Path, err)
		}
		rendered = append(rendered, pc)
	}

	if w.dryRun {
		for _, pc := range rendered {
			w.logger.WithFile(pc.path).Info().Int("bytes", len(pc.data)).Msg("Dry run, not writing")
		}
		return nil
	}

	staged := make([]*renameio.PendingFile, 0, len(rendered))
	defer func() {
		// Cleanup is a no-op for files already committed
		for i, pf := range staged {
			if err := pf.Cleanup(); err != nil {
				w.logger.WithFile(rendered[i].path).Debug().Err(err).Msg("cleanup pending file")
			}
		}
	}()

	for _, pc := range rendered {
		if err := ctx.Err(); err != nil {
			return err
		}
		pf, err := w.stage(pc.path, pc.data)
		if err != nil {
			return err
		}
		staged = append(staged, pf)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	for i, pf := range staged {
		path := rendered[i].path
		if err := pf.CloseAtomicallyReplace(); err != nil {
			return fmt.Errorf("atomically replace %s: %w", path, err)
		}
		w.logger.WithFile(path).Debug().Int("bytes", len(rendered[i].data)).Msg("Wrote file")
	}
	return nil
}

// stage writes data to a renameio pending file in the directory of path
func (w *Writer) stage(path string, data []byte) (*renameio.PendingFile, error) {
	if err := utils.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create directory for %s: %w", path, err)
	}

	pf, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644))
	if err != nil {
		return nil, fmt.Errorf("create pending file %s: %w", path, err)
	}

	if _, err := pf.Write(data); err != nil {
		_ = pf.Cleanup()
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return pf, nil
}

// pendingContent buffers one rendered file
type pendingContent struct {
	path string
	data []byte
}

func (p *pendingContent) Write(b []byte) (int, error) {
	p.data = append(p.data, b...)
	return len(b), nil
}
