package template

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/xy-planning-network/signpost/logger"
)

// Watch drops p's parsed templates whenever a file under dir is created, written, removed or renamed.
// New directories are watched as they appear.
//
// Watch blocks until ctx is done.
func Watch(ctx context.Context, dir string, p *Parse, l logger.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not start watcher: %w", err)
	}
	defer w.Close()

	if err := watchTree(w, dir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
				continue
			}

			if ev.Has(fsnotify.Create) {
				// a created file is not a directory, so the walk adds nothing
				_ = watchTree(w, ev.Name)
			}

			p.Reset()
			if l != nil {
				l.Debug("templates reset", &logger.LogContext{Data: map[string]any{"file": ev.Name, "op": ev.Op.String()}})
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			if l != nil {
				l.Error("template watcher failed", &logger.LogContext{Error: err})
			}
		}
	}
}

func watchTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(fp string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		if err := w.Add(fp); err != nil {
			return fmt.Errorf("could not watch %s: %w", fp, err)
		}

		return nil
	})
}
