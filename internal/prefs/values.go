package prefs

import (
	"fmt"

	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/boxdeck/internal/hotkey"
)

// LoadHotkeys reads the generator hotkey map. Missing or malformed data yields
// the defaults, merged key by key.
func LoadHotkeys(s Store) hotkey.Map {
	raw, ok, err := s.Get(KeyGeneratorHotkeys)
	if err != nil {
		log.Warn("reading hotkeys failed, using defaults", "err", err)
		return hotkey.DefaultMap()
	}
	if !ok || raw == "" {
		return hotkey.DefaultMap()
	}
	return hotkey.ParseMap([]byte(raw))
}

// SaveHotkeys persists m.
func SaveHotkeys(s Store, m hotkey.Map) error {
	data, err := hotkey.MarshalMap(m)
	if err != nil {
		return err
	}
	if err := s.Set(KeyGeneratorHotkeys, string(data)); err != nil {
		return fmt.Errorf("save hotkeys: %w", err)
	}
	return nil
}

// LoadSidebarVisible reads the sidebar generator flag. Anything but "0" means
// visible.
func LoadSidebarVisible(s Store) bool {
	raw, ok, err := s.Get(KeySidebarGeneratorVisible)
	if err != nil || !ok {
		return true
	}
	return raw != "0"
}

// SaveSidebarVisible persists the sidebar generator flag as "0" or "1".
func SaveSidebarVisible(s Store, visible bool) error {
	v := "0"
	if visible {
		v = "1"
	}
	if err := s.Set(KeySidebarGeneratorVisible, v); err != nil {
		return fmt.Errorf("save sidebar visibility: %w", err)
	}
	return nil
}
