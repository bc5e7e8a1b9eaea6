package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Settings are the runtime-tunable knobs, loaded from a YAML file and
// hot-reloaded on change.
type Settings struct {
	Generation GenerationSettings `yaml:"generation"`
	Publishing PublishingSettings `yaml:"publishing"`
}

// GenerationSettings caps prompt context size.
type GenerationSettings struct {
	FocusMemoryCap int `yaml:"focusMemoryCap"`
	ChatMemoryCap  int `yaml:"chatMemoryCap"`
}

// PublishingSettings controls the scheduled-draft publisher.
type PublishingSettings struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultSettings returns settings used when no file is configured.
func DefaultSettings() Settings {
	return Settings{
		Generation: GenerationSettings{FocusMemoryCap: 30, ChatMemoryCap: 20},
		Publishing: PublishingSettings{Enabled: true},
	}
}

// SettingsWatcher watches the settings file for changes.
type SettingsWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	current  Settings
	mu       sync.RWMutex
	onChange []func(Settings)
	logger   *zap.Logger
	stopCh   chan struct{}
}

// NewSettingsWatcher loads the file and starts tracking it. The watcher also
// tracks the parent directory so atomic saves (write-then-rename) are seen.
func NewSettingsWatcher(path string, logger *zap.Logger) (*SettingsWatcher, error) {
	settings, err := loadSettingsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial settings: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch settings file: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		logger.Warn("failed to watch settings directory", zap.Error(err))
	}

	return &SettingsWatcher{
		path:    path,
		watcher: watcher,
		current: settings,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}, nil
}

// Start begins watching for changes.
func (w *SettingsWatcher) Start() {
	go w.watchLoop()
	w.logger.Info("settings watcher started", zap.String("path", w.path))
}

// Stop stops watching for changes.
func (w *SettingsWatcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
}

func (w *SettingsWatcher) watchLoop() {
	// Debounce to avoid reloading twice on write+rename
	var debounce *time.Timer
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-w.stopCh:
			if debounce != nil {
				debounce.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceDelay, w.reload)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("settings watcher error", zap.Error(err))
		}
	}
}

func (w *SettingsWatcher) reload() {
	settings, err := loadSettingsFromFile(w.path)
	if err != nil {
		w.logger.Error("failed to reload settings, keeping current", zap.Error(err))
		return
	}
	if err := validateSettings(settings); err != nil {
		w.logger.Error("invalid settings, keeping current", zap.Error(err))
		return
	}

	w.mu.Lock()
	w.current = settings
	handlers := w.onChange
	w.mu.Unlock()

	w.logger.Info("settings reloaded",
		zap.Int("focusMemoryCap", settings.Generation.FocusMemoryCap),
		zap.Int("chatMemoryCap", settings.Generation.ChatMemoryCap),
		zap.Bool("publishingEnabled", settings.Publishing.Enabled))

	for _, handler := range handlers {
		go handler(settings)
	}
}

func validateSettings(s Settings) error {
	if s.Generation.FocusMemoryCap < 0 {
		return fmt.Errorf("focusMemoryCap cannot be negative")
	}
	if s.Generation.ChatMemoryCap < 0 {
		return fmt.Errorf("chatMemoryCap cannot be negative")
	}
	return nil
}

// OnChange registers a callback fired on every successful reload.
func (w *SettingsWatcher) OnChange(handler func(Settings)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, handler)
}

// Current returns the active settings.
func (w *SettingsWatcher) Current() Settings {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

func loadSettingsFromFile(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse settings YAML: %w", err)
	}
	return settings, nil
}
