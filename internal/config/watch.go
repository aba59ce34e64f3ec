package config

import (
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Snapshot hands out the most recently loaded configuration. Request
// handlers read per-request defaults from it so config edits take effect
// without a restart.
type Snapshot struct {
	ptr atomic.Pointer[Config]
}

func NewSnapshot(cfg *Config) *Snapshot {
	s := &Snapshot{}
	s.ptr.Store(cfg)
	return s
}

func (s *Snapshot) Get() *Config {
	return s.ptr.Load()
}

func (s *Snapshot) Set(cfg *Config) {
	s.ptr.Store(cfg)
}

// Watch reloads the config file into snap whenever it changes. The parent
// directory is watched rather than the file itself, since most editors
// replace files on save. The returned function stops the watcher.
func Watch(path string, snap *Snapshot, logger zerolog.Logger) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	log := logger.With().Str("component", "config").Logger()
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					log.Warn().Err(err).Msg("config reload failed, keeping previous config")
					continue
				}
				snap.Set(cfg)
				log.Info().Msg("config reloaded")
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("config watcher error")
			}
		}
	}()

	return watcher.Close, nil
}
