package config

import (
	"context"
	"os"
	"path/filepath"

	"codexmgr/config/models"
	"codexmgr/internal/errs"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// WatchLive calls fn with the live configuration once, then again every
// time config.toml or auth.json changes, until ctx is done.
func (m *Manager) WatchLive(ctx context.Context, fn func(models.CurrentConfig, error)) error {
	dir := m.paths.CodexHome
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errs.IO("create "+dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errs.IO("create file watcher", err)
	}
	defer watcher.Close()

	// Watch the directory: atomic replacement swaps the file's inode
	if err := watcher.Add(dir); err != nil {
		return errs.IO("watch "+dir, err)
	}

	watched := map[string]bool{
		filepath.Base(m.paths.CodexConfigPath()): true,
		filepath.Base(m.paths.CodexAuthPath()):   true,
	}

	fn(m.ReadCurrent())
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Base(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("live config changed")
			fn(m.ReadCurrent())
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("file watcher error")
		}
	}
}
