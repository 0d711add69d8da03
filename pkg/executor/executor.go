package executor

import (
	"time"

	"github.com/arthur-debert/bulkmv/pkg/errors"
	"github.com/arthur-debert/bulkmv/pkg/filesystem"
	"github.com/arthur-debert/bulkmv/pkg/logging"
	"github.com/arthur-debert/bulkmv/pkg/types"
	"github.com/rs/zerolog"
)

// Messages recorded for per-pair failures that have no underlying I/O error.
const (
	MsgDestinationExists = "Destination already exists"
	MsgFileInfo          = "Failed to retrieve file info"
)

// Options contains configuration for the executor
type Options struct {
	// Root is the common root every PathID is resolved against
	Root string
	// Logger defaults to the "executor" component logger when nil
	Logger *zerolog.Logger
	// Filesystem operations interface for testing
	FS types.FS
}

// Executor applies scheduled renames against a filesystem
type Executor struct {
	root   string
	logger zerolog.Logger
	fs     types.FS
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := logging.GetLogger("executor")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	return &Executor{
		root:   opts.Root,
		logger: logger,
		fs:     fs,
	}
}

// Execute applies order sequentially and returns the outcome. Order matters:
// each rename changes what the next destination check observes.
func (e *Executor) Execute(order []types.RenamePair) types.Outcome {
	start := time.Now()
	outcome := types.Outcome{
		Succeeded: make([]types.Renamed, 0, len(order)),
	}

	for _, pair := range order {
		renamed, err := e.apply(pair)
		if err != nil {
			e.logger.Warn().
				Str("old", string(pair.Old)).
				Str("new", string(pair.New)).
				Str("code", string(errors.GetErrorCode(err))).
				Err(err).
				Msg("Rename failed")
			outcome.Failed = append(outcome.Failed, types.Failure{Old: pair.Old, New: pair.New, Err: err})
			continue
		}

		e.logger.Debug().
			Str("old", string(pair.Old)).
			Str("new", string(pair.New)).
			Msg("Renamed")
		outcome.Succeeded = append(outcome.Succeeded, renamed)
	}

	e.logger.Info().
		Int("pairs", len(order)).
		Int("succeeded", len(outcome.Succeeded)).
		Int("failed", len(outcome.Failed)).
		Dur("duration", time.Since(start)).
		Msg("Batch executed")

	return outcome
}

func (e *Executor) apply(pair types.RenamePair) (types.Renamed, error) {
	oldPath, newPath := pair.Old.Abs(e.root), pair.New.Abs(e.root)

	if filesystem.MaybeExists(e.fs, newPath) && !filesystem.SameFile(e.fs, oldPath, newPath) {
		return types.Renamed{}, errors.New(errors.ErrCollision, MsgDestinationExists).
			WithDetail("destination", newPath)
	}

	if err := e.fs.Rename(oldPath, newPath); err != nil {
		return types.Renamed{}, errors.Wrap(err, errors.ErrRename, "rename failed")
	}

	meta, err := filesystem.Meta(e.fs, e.root, pair.New)
	if err != nil {
		// The rename itself stands; only the notification loses this entry.
		return types.Renamed{}, errors.New(errors.ErrFileInfo, MsgFileInfo).
			WithDetail("cause", err.Error())
	}

	return types.Renamed{Old: oldPath, New: meta}, nil
}
