// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

// Package watch reruns a callback when spec or template files change on disk.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 300 * time.Millisecond

// Extensions lists the file suffixes that trigger a rebuild.
var Extensions = []string{".yaml", ".yml", ".json", ".tmpl"}

// skipDirs are never descended into.
var skipDirs = map[string]bool{".git": true, "node_modules": true}

// Watcher watches directory trees and calls OnChange after a quiet period.
type Watcher struct {
	Dirs     []string
	Ignore   []string // absolute paths that never trigger, e.g. generated output
	Debounce time.Duration
	Log      *zap.SugaredLogger

	// OnChange runs after each debounced batch. Errors are logged and
	// watching continues.
	OnChange func(ctx context.Context) error
}

// Run blocks until ctx is cancelled or the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	log := w.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	seen := make(map[string]bool, len(w.Dirs))
	for _, dir := range w.Dirs {
		if dir == "" {
			continue
		}
		if err := addTree(fw, dir, seen, log); err != nil {
			return err
		}
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if skipDirs[filepath.Base(event.Name)] {
						continue
					}
					if err := addTree(fw, event.Name, seen, log); err != nil {
						log.Warnw("watcher error", "error", err)
					}
					continue
				}
			}
			if !w.relevant(event) {
				continue
			}
			log.Debugw("change detected", "file", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.OnChange(ctx); err != nil {
				log.Errorw("rebuild failed", "error", err)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warnw("watcher error", "error", err)
		}
	}
}

// addTree watches root and every directory below it. fsnotify is not recursive,
// and external $ref targets usually live in subdirectories.
func addTree(fw *fsnotify.Watcher, root string, seen map[string]bool, log *zap.SugaredLogger) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && skipDirs[d.Name()] {
			return filepath.SkipDir
		}
		if seen[p] {
			return nil
		}
		seen[p] = true
		if err := fw.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		log.Debugw("watching", "dir", p)
		return nil
	})
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		name = event.Name
	}
	for _, ig := range w.Ignore {
		if name == ig {
			return false
		}
	}
	return Relevant(name)
}

// Relevant reports whether a change to name should trigger a rebuild.
func Relevant(name string) bool {
	for _, ext := range Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
