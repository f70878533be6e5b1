package storage

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"pomodungeon/internal/ui/preferences"
)

const settingsDebounce = 200 * time.Millisecond

// SettingsWatcher reloads the settings file when it is edited outside the
// application and hands the result to a callback.
type SettingsWatcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	onChange  func(preferences.Settings)
	done      chan struct{}
	closeOnce sync.Once

	debounceMu sync.Mutex
	debounce   *time.Timer
}

// WatchSettings starts watching the directory holding configPath. The
// directory is watched rather than the file so atomic rename-writes are seen.
func WatchSettings(configPath string, onChange func(preferences.Settings)) (*SettingsWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create settings watcher: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(configPath)); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("watch settings dir: %w", err)
	}

	watcher := &SettingsWatcher{
		fsWatcher: fsWatcher,
		path:      filepath.Clean(configPath),
		onChange:  onChange,
		done:      make(chan struct{}),
	}
	go watcher.processEvents()
	return watcher, nil
}

// Close stops watching.
func (watcher *SettingsWatcher) Close() error {
	var err error
	watcher.closeOnce.Do(func() {
		close(watcher.done)
		watcher.debounceMu.Lock()
		if watcher.debounce != nil {
			watcher.debounce.Stop()
		}
		watcher.debounceMu.Unlock()
		err = watcher.fsWatcher.Close()
	})
	return err
}

func (watcher *SettingsWatcher) processEvents() {
	for {
		select {
		case <-watcher.done:
			return
		case event, ok := <-watcher.fsWatcher.Events:
			if !ok {
				return
			}
			watcher.handleEvent(event)
		case err, ok := <-watcher.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[settings] watcher error: %v", err)
		}
	}
}

func (watcher *SettingsWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != watcher.path {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	watcher.debounceMu.Lock()
	defer watcher.debounceMu.Unlock()
	if watcher.debounce != nil {
		watcher.debounce.Stop()
	}
	watcher.debounce = time.AfterFunc(settingsDebounce, watcher.reload)
}

func (watcher *SettingsWatcher) reload() {
	select {
	case <-watcher.done:
		return
	default:
	}

	settings, err := LoadSettingsFile(watcher.path)
	if err != nil {
		log.Printf("[settings] reload %s: %v", watcher.path, err)
		return
	}
	if watcher.onChange != nil {
		watcher.onChange(settings)
	}
}
