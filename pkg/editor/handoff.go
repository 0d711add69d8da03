package editor

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/arthur-debert/bulkmv/pkg/builder"
	"github.com/arthur-debert/bulkmv/pkg/errors"
	"github.com/arthur-debert/bulkmv/pkg/logging"
	"github.com/arthur-debert/bulkmv/pkg/types"
)

// DefaultPrefix names handoff files when no prefix is configured.
const DefaultPrefix = "bulk"

// HandoffOptions configures where handoff files are created.
type HandoffOptions struct {
	FS     types.FS
	Dir    string
	Prefix string
	// Now stamps the file name; defaults to time.Now
	Now func() time.Time
}

// Handoff is a handoff file on disk.
type Handoff struct {
	fs   types.FS
	path string
}

// CreateHandoff writes ids to a new handoff file. The file must not exist
// beforehand.
func CreateHandoff(opts HandoffOptions, ids []types.PathID) (*Handoff, error) {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	if err := opts.FS.MkdirAll(opts.Dir, 0700); err != nil {
		return nil, errors.Wrapf(err, errors.ErrHandoffCreate, "cannot create handoff directory %s", opts.Dir)
	}

	path := filepath.Join(opts.Dir, fmt.Sprintf("%s-%d", prefix, now().UnixNano()))
	if err := opts.FS.CreateNew(path, builder.EncodeHandoff(ids), 0600); err != nil {
		return nil, errors.Wrapf(err, errors.ErrHandoffCreate, "cannot create handoff file %s", path).
			WithDetail("path", path)
	}

	logger := logging.GetLogger("editor")
	logger.Debug().
		Str("path", path).
		Int("names", len(ids)).
		Msg("Handoff file created")

	return &Handoff{fs: opts.FS, path: path}, nil
}

// Path returns the handoff file location.
func (h *Handoff) Path() string {
	return h.path
}

// Read returns the edited names.
func (h *Handoff) Read() ([]string, error) {
	data, err := h.fs.ReadFile(h.path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrHandoffRead, "cannot read handoff file %s", h.path)
	}
	return builder.DecodeHandoff(data), nil
}

// Remove deletes the handoff file. Failures are logged, not returned, since
// removal runs on every exit path of a batch.
func (h *Handoff) Remove() {
	if h == nil {
		return
	}
	if err := h.fs.Remove(h.path); err != nil {
		logger := logging.GetLogger("editor")
		logger.Warn().
			Err(err).
			Str("path", h.path).
			Msg("Failed to remove handoff file")
	}
}
