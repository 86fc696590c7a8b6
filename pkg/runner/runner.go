package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/headertool/internal/logging"
	"github.com/yaklabco/headertool/pkg/fsutil"
	"github.com/yaklabco/headertool/pkg/langdetect"
	"github.com/yaklabco/headertool/pkg/parser"
	"github.com/yaklabco/headertool/pkg/reflection"
)

// Skip reasons recorded in FileOutcome.SkipReason.
const (
	SkipReasonGenerated = "generated file"
	SkipReasonLanguage  = "not a C-family file"
)

// ErrFileTooLarge is recorded for files above Options.MaxFileSize.
var ErrFileTooLarge = fsutil.ErrTooLarge

// Runner parses many headers with one Parser.
type Runner struct {
	Parser *parser.Parser
}

// New creates a Runner. A nil parser uses parser.New().
func New(p *parser.Parser) *Runner {
	if p == nil {
		p = parser.New()
	}
	return &Runner{Parser: p}
}

// Run discovers files under opts.Paths and parses them concurrently.
// Per-file failures are recorded in the outcomes; the returned error is
// reserved for discovery failures and cancellation. Outcomes are ordered by
// path regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	logger.Debug("discovered files", logging.FieldFiles, len(files))

	if len(files) == 0 {
		return result, nil
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	// Each goroutine writes only its own index.
	outcomes := make([]FileOutcome, len(files))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.processFile(gctx, path, displayPath(workDir, path), opts)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldDeclarations, result.Stats.Declarations(),
	)

	return result, nil
}

// ProcessFile reads and parses one file outside a full run.
func (r *Runner) ProcessFile(ctx context.Context, path string, opts Options) FileOutcome {
	return r.processFile(ctx, path, path, opts)
}

func (r *Runner) processFile(ctx context.Context, path, display string, opts Options) FileOutcome {
	logger := logging.FromContext(ctx).With(logging.FieldPath, display)
	outcome := FileOutcome{Path: path, DisplayPath: display}

	content, _, err := fsutil.ReadFile(ctx, path, opts.MaxFileSize)
	if err != nil {
		outcome.Error = fmt.Errorf("read %s: %w", display, err)
		if errors.Is(err, ErrFileTooLarge) {
			logger.Warn("file too large", logging.FieldError, err)
		} else {
			logger.Warn("read failed", logging.FieldError, err)
		}
		return outcome
	}
	outcome.Content = content

	class := langdetect.Classify(path, content)
	outcome.Language = class.Language

	if opts.SkipGenerated && class.Generated {
		outcome.Skipped = true
		outcome.SkipReason = SkipReasonGenerated
		logger.Debug("skipping file", logging.FieldReason, SkipReasonGenerated)
		return outcome
	}
	if opts.CFamilyOnly && class.Language != "" && !langdetect.IsHeaderLanguage(class.Language) {
		outcome.Skipped = true
		outcome.SkipReason = SkipReasonLanguage
		logger.Debug("skipping file", logging.FieldReason, SkipReasonLanguage, logging.FieldLanguage, class.Language)
		return outcome
	}

	file, err := r.Parser.Parse(ctx, display, content)
	if err != nil {
		outcome.Error = err
		logger.Warn("parse failed", logging.FieldError, err)
		return outcome
	}

	outcome.File = file
	outcome.Module = reflection.Build(file)
	logger.Debug("parsed file",
		logging.FieldSize, len(content),
		logging.FieldTokens, len(file.Tokens),
		logging.FieldDeclarations, outcome.Module.Len(),
	)

	return outcome
}

// displayPath returns path relative to workDir unless that escapes it.
func displayPath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
