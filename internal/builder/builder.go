// Package builder populates a directory hierarchy from a tree of files.
// Directories become storages and regular files become streams.
package builder

import (
	"fmt"
	"os"
	"path"
	"slices"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/deploymenttheory/go-cfb/internal/directory"
	"github.com/deploymenttheory/go-cfb/internal/filetime"
	"github.com/deploymenttheory/go-cfb/internal/source"
	"github.com/deploymenttheory/go-cfb/internal/types"
)

// Options controls how a file tree is mapped to directory entries.
type Options struct {
	Version  types.MajorVersion
	RootName string

	// ManifestName is the file in the top directory holding entry
	// properties. It is not added as a stream.
	ManifestName string

	// Ignore lists base names skipped at every level.
	Ignore []string

	// StorageTimes copies directory modification times onto storages.
	StorageTimes bool
}

// Builder walks an afero filesystem and creates a directory hierarchy.
type Builder struct {
	fs   afero.Fs
	opts Options
	log  *zap.Logger
}

// New returns a Builder reading from fs. A nil fs means the host filesystem.
func New(fs afero.Fs, opts Options, logger *zap.Logger) *Builder {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{fs: fs, opts: opts, log: logger}
}

// Build creates a hierarchy whose root holds the contents of dir, then
// applies the manifest if dir contains one.
func (b *Builder) Build(dir string) (*directory.Hierarchy, error) {
	info, err := b.fs.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	h, err := directory.NewHierarchy(directory.Options{
		Version:  b.opts.Version,
		RootName: b.opts.RootName,
		Logger:   b.log,
	})
	if err != nil {
		return nil, err
	}

	if err := b.addDir(h, h.Root(), dir, true); err != nil {
		return nil, err
	}

	if b.opts.ManifestName != "" {
		manifestPath := path.Join(dir, b.opts.ManifestName)
		if exists, err := afero.Exists(b.fs, manifestPath); err != nil {
			return nil, fmt.Errorf("failed to check manifest: %w", err)
		} else if exists {
			m, err := LoadManifest(b.fs, manifestPath)
			if err != nil {
				return nil, err
			}
			if err := m.Apply(h); err != nil {
				return nil, err
			}
			b.log.Debug("applied manifest", zap.String("path", manifestPath), zap.Int("entries", len(m.Entries)))
		}
	}

	b.log.Info("built directory hierarchy", zap.String("dir", dir), zap.Int("entries", h.Len()))
	return h, nil
}

func (b *Builder) addDir(h *directory.Hierarchy, storage *directory.Entry, dir string, top bool) error {
	infos, err := afero.ReadDir(b.fs, dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, info := range infos {
		name := info.Name()
		full := path.Join(dir, name)

		if slices.Contains(b.opts.Ignore, name) || (top && name == b.opts.ManifestName) {
			continue
		}

		mode := info.Mode()
		switch {
		case mode.IsDir():
			child, err := h.NewStorage(name)
			if err != nil {
				return fmt.Errorf("cannot add storage for %s: %w", full, err)
			}
			if b.opts.StorageTimes {
				if err := child.SetModified(filetime.FromTime(info.ModTime())); err != nil {
					return fmt.Errorf("cannot set modified time of %s: %w", full, err)
				}
			}
			if err := storage.AddChild(child); err != nil {
				return fmt.Errorf("cannot attach %s: %w", full, err)
			}
			if err := b.addDir(h, child, full, false); err != nil {
				return err
			}
		case mode.IsRegular():
			child, err := h.NewStream(name, source.NewFile(b.fs, full))
			if err != nil {
				return fmt.Errorf("cannot add stream for %s: %w", full, err)
			}
			if err := storage.AddChild(child); err != nil {
				return fmt.Errorf("cannot attach %s: %w", full, err)
			}
		default:
			b.log.Warn("skipping special file", zap.String("path", full), zap.Stringer("mode", mode&os.ModeType))
		}
	}
	return nil
}
