package bdata

import (
	"context"
	"os"
	"path/filepath"
	"runtime/debug"

	"git.thinkinpower.net/cardtype/file"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

// WatchBinDataDir forwards write and create events under dir, including
// directories created later, to the registered file listeners until ctx is
// done.
func WatchBinDataDir(ctx context.Context, dir string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("watching bin data directory error: %v\n%s", r, string(debug.Stack()))
			err = errors.Errorf("watcher panic: %v", r)
		}
	}()

	var watcher *fsnotify.Watcher
	if watcher, err = fsnotify.NewWatcher(); err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			logger.Error(err)
		}
	}()

	if err = addWatchDir(watcher, dir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleEvent(watcher, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("watch %s error: %s", dir, err)
		}
	}
}

func handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) {
	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err = addWatchDir(watcher, event.Name); err != nil {
				logger.Error(err)
			}
			return
		}
		logger.Infof("file created %s", event.Name)
		notifyFileListeners(file.FileEvent{Filepath: event.Name, FileCreated: true})
	case event.Op&fsnotify.Write == fsnotify.Write:
		logger.Infof("file modified %s", event.Name)
		notifyFileListeners(file.FileEvent{Filepath: event.Name})
	}
}

// addWatchDir watches dir and its existing subdirectories.
func addWatchDir(watcher *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return errors.Wrapf(err, "watch %s", path)
		}
		return nil
	})
}
