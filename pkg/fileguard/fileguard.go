package fileguard

import (
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/safehold-dev/safehold/pkg/errors"
	"github.com/safehold-dev/safehold/pkg/filesystem"
	"github.com/safehold-dev/safehold/pkg/identity"
	"github.com/safehold-dev/safehold/pkg/logging"
	"github.com/safehold-dev/safehold/pkg/types"
)

// Operation is the caller-supplied write logic Protect runs against a
// path. It receives the resolved path and may fail; the guard never
// interprets the failure beyond bookkeeping.
type Operation func(path string) error

// Notifier receives the human-readable notices the guard emits when it
// preserves content. Notices are observational side effects, not part
// of the return contract.
type Notifier func(message string)

// Guard implements the snapshot-write-verify-recover protocol: before
// a caller-supplied operation touches an existing file, its content is
// copied aside; afterwards a checksum comparison decides whether the
// copy is promoted to a permanent sibling backup or discarded.
type Guard struct {
	fs       types.FS
	logger   zerolog.Logger
	notifier Notifier
}

// New creates a Guard against the OS filesystem, emitting notices
// through the component logger.
func New() *Guard {
	return NewWithFS(filesystem.NewOS())
}

// NewWithFS creates a Guard against an injected filesystem.
func NewWithFS(fs types.FS) *Guard {
	logger := logging.GetLogger("fileguard")
	g := &Guard{
		fs:     fs,
		logger: logger,
	}
	g.notifier = func(message string) {
		logger.Info().Msg(message)
	}
	return g
}

// WithNotifier redirects the guard's notices
func (g *Guard) WithNotifier(n Notifier) *Guard {
	g.notifier = n
	return g
}

// Protect runs op against path under the protection protocol.
//
// If path does not exist beforehand, op's outcome passes through
// untouched: no snapshot, no backup, no notice. If it does exist, the
// prior bytes are copied to a temporary sibling before op runs; after
// op returns (success or failure) the content is re-checksummed, and
// on any change the copy is renamed to a permanent backup named
// {stem}_{8 hex digits}{ext}. A backup survives whenever the original
// existed and either the content changed or op failed, so prior data
// is never silently discarded. op's own error is always propagated
// after bookkeeping, never swallowed and never masked by bookkeeping
// errors.
func (g *Guard) Protect(path string, op Operation) error {
	snap, err := g.snapshot(path)
	if err != nil {
		return err
	}

	opErr := op(path)

	var bookErr error
	if snap != nil {
		bookErr = g.settle(path, snap, opErr)
	}

	if opErr != nil {
		// Bookkeeping must never mask the operation's own failure.
		return errors.Wrapf(opErr, errors.ErrOperationFailed, "operation on %s failed", path)
	}
	return bookErr
}

// ProtectResult is Protect for operations that produce a value. The
// zero value of T is returned whenever an error is.
func ProtectResult[T any](g *Guard, path string, op func(path string) (T, error)) (T, error) {
	var result T
	err := g.Protect(path, func(p string) error {
		var opErr error
		result, opErr = op(p)
		return opErr
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// preState holds the pre-operation fingerprint and backup locations.
type preState struct {
	modTime   time.Time
	checksum  uint32
	backupTmp string
	newPath   string
}

// snapshot captures the pre-operation state of path. It returns nil
// when the file does not exist; filesystem errors abort the protect
// call before the operation ever runs.
func (g *Guard) snapshot(path string) (*preState, error) {
	info, err := g.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to stat %s", path)
	}

	data, err := g.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to snapshot %s", path)
	}

	// One ID per protect call: it names both the temporary copy and
	// the eventual permanent backup.
	id := identity.New()
	newPath := BackupPath(path, id)
	backupTmp := newPath + ".tmp"

	if err := g.fs.WriteFile(backupTmp, data, info.Mode().Perm()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to write backup copy of %s", path)
	}

	return &preState{
		modTime:   info.ModTime(),
		checksum:  crc32.ChecksumIEEE(data),
		backupTmp: backupTmp,
		newPath:   newPath,
	}, nil
}

// settle performs the post-operation bookkeeping: promote or discard
// the temporary backup and emit notices. The returned error reports a
// bookkeeping failure; the caller surfaces it only when the operation
// itself succeeded, so it never masks opErr.
func (g *Guard) settle(path string, snap *preState, opErr error) error {
	changed := g.contentChanged(path, snap.checksum)

	var bookErr error
	backupAt := snap.backupTmp
	if changed {
		if err := g.fs.Rename(snap.backupTmp, snap.newPath); err != nil {
			g.logger.Error().Err(err).
				Str("from", snap.backupTmp).
				Str("to", snap.newPath).
				Msg("Failed to promote backup; temporary copy left in place")
			bookErr = errors.Wrapf(err, errors.ErrIOFailure,
				"failed to promote backup of %s", path)
		} else {
			backupAt = snap.newPath
		}
		g.notify("%s changed; previous content (last modified %s) preserved at %s",
			path, snap.modTime.Format(time.RFC3339), backupAt)
	}

	if opErr != nil {
		if changed {
			g.notify("operation on %s failed after modifying it; prior content preserved at %s", path, backupAt)
		} else {
			g.notify("operation on %s failed; file unchanged, prior content kept at %s", path, snap.backupTmp)
		}
		return bookErr
	}

	if !changed {
		// Unchanged and successful: the copy must not leak onto disk.
		if err := g.fs.Remove(snap.backupTmp); err != nil {
			g.logger.Error().Err(err).
				Str("path", snap.backupTmp).
				Msg("Failed to remove temporary backup copy")
			bookErr = errors.Wrapf(err, errors.ErrIOFailure,
				"failed to remove temporary backup of %s", path)
		}
	}
	return bookErr
}

// contentChanged recomputes the checksum after the operation. A file
// the operation removed, or one that can no longer be read, counts as
// changed so the backup is retained.
func (g *Guard) contentChanged(path string, before uint32) bool {
	data, err := g.fs.ReadFile(path)
	if err != nil {
		return true
	}
	return crc32.ChecksumIEEE(data) != before
}

func (g *Guard) notify(format string, args ...interface{}) {
	if g.notifier != nil {
		g.notifier(fmt.Sprintf(format, args...))
	}
}

// BackupPath returns the permanent backup name for path under the
// given ID: {stem}_{8 hex digits}{ext}, sibling to the original.
func BackupPath(path string, id identity.ID) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		// Dotfiles like ".profile" have no extension, only a hidden name.
		ext = ""
	}
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+"_"+id.Hex()+ext)
}
