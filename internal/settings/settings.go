// Package settings persists display preferences between runs.
// Reveal state is never persisted.
package settings

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Storage keys
const (
	settingsObject   = "settings"
	settingsProperty = "display"
)

// Display holds the window preferences restored at startup.
type Display struct {
	SizeIndex  int  `yaml:"sizeIndex"`
	Fullscreen bool `yaml:"fullscreen"`
}

// Manager loads and saves Display through gdata. A nil gdata manager keeps
// the settings in memory only.
type Manager struct {
	store    *gdata.Manager
	display  Display
	defaults Display
}

// Open opens persistent storage for appName. An empty appName, or storage
// that cannot be opened, yields a memory-only manager.
func Open(appName string, defaults Display) *Manager {
	if appName == "" {
		return New(nil, defaults)
	}
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Settings] Warning: storage unavailable: %v (settings will not persist)", err)
		return New(nil, defaults)
	}
	return New(store, defaults)
}

// New creates a manager over store and loads any saved settings.
func New(store *gdata.Manager, defaults Display) *Manager {
	m := &Manager{
		store:    store,
		display:  defaults,
		defaults: defaults,
	}
	if err := m.Load(); err != nil {
		log.Printf("[Settings] Warning: %v (using defaults)", err)
	}
	return m
}

// Load reads saved settings. Missing settings leave the defaults in place.
func (m *Manager) Load() error {
	m.display = m.defaults
	if m.store == nil || !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded Display
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if loaded.SizeIndex < 0 {
		loaded.SizeIndex = m.defaults.SizeIndex
	}

	m.display = loaded
	log.Printf("[Settings] Loaded size index %d, fullscreen %v", loaded.SizeIndex, loaded.Fullscreen)
	return nil
}

// Save writes the current settings. It is a no-op without storage.
func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}

	data, err := yaml.Marshal(m.display)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[Settings] Saved")
	return nil
}

// Persistent reports whether settings survive a restart.
func (m *Manager) Persistent() bool {
	return m.store != nil
}

// Display returns the current settings.
func (m *Manager) Display() Display {
	return m.display
}

// SetDisplay replaces the current settings. Call Save to persist them.
func (m *Manager) SetDisplay(d Display) {
	m.display = d
}
