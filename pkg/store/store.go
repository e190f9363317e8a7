// Package store persists the app's client-local state: preferences, swap
// history, favorites, price alerts and aggregate counters. Everything lives
// in one JSON file written atomically.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultFileName = ".dex-swap-state.json"

	// MaxHistoryEntries caps the swap history; the oldest entry is evicted
	// when a new one would exceed it.
	MaxHistoryEntries = 100
)

// Store owns the persisted state. All mutations save synchronously.
type Store struct {
	filePath string
	mu       sync.RWMutex
	state    State
}

// Open loads the state file, creating defaults when it does not exist yet.
// An empty path defaults to the home directory.
func Open(filePath string) (*Store, error) {
	if filePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		filePath = filepath.Join(home, DefaultFileName)
	}

	s := &Store{filePath: filePath, state: defaultState()}
	if err := s.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load state: %w", err)
		}
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to unmarshal state: %w", err)
	}
	s.state = state
	return nil
}

// save writes the state atomically. Must be called with the lock held.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Rename(tempFile, s.filePath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// FilePath returns the backing file path.
func (s *Store) FilePath() string { return s.filePath }

// AddSwap prepends a history entry, evicting the oldest beyond the cap.
func (s *Store) AddSwap(record SwapRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	history := append([]SwapRecord{record}, s.state.SwapHistory...)
	if len(history) > MaxHistoryEntries {
		history = history[:MaxHistoryEntries]
	}
	s.state.SwapHistory = history

	s.state.Analytics.TotalSwaps++
	if v, err := strconv.ParseFloat(record.AmountIn, 64); err == nil {
		s.state.Analytics.TotalVolume += v
	}
	if s.state.Analytics.PairCounts == nil {
		s.state.Analytics.PairCounts = make(map[string]int)
	}
	s.state.Analytics.PairCounts[record.FromSymbol+"/"+record.ToSymbol]++

	return s.save()
}

// History returns a copy of the swap history, newest first.
func (s *Store) History() []SwapRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]SwapRecord, len(s.state.SwapHistory))
	copy(out, s.state.SwapHistory)
	return out
}

// ClearHistory drops all history entries.
func (s *Store) ClearHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SwapHistory = nil
	return s.save()
}

// Preferences returns the current preferences.
func (s *Store) Preferences() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Preferences
}

// UpdatePreferences applies a mutation to the preferences and saves.
func (s *Store) UpdatePreferences(update func(*Preferences)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	update(&s.state.Preferences)
	return s.save()
}

// Favorites returns the favorite token symbols.
func (s *Store) Favorites() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.state.FavoriteTokens))
	copy(out, s.state.FavoriteTokens)
	return out
}

// IsFavorite reports whether a symbol is marked favorite.
func (s *Store) IsFavorite(symbol string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, fav := range s.state.FavoriteTokens {
		if strings.EqualFold(fav, symbol) {
			return true
		}
	}
	return false
}

// AddFavorite marks a symbol as favorite. Adding twice is a no-op.
func (s *Store) AddFavorite(symbol string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fav := range s.state.FavoriteTokens {
		if strings.EqualFold(fav, symbol) {
			return nil
		}
	}
	s.state.FavoriteTokens = append(s.state.FavoriteTokens, symbol)
	return s.save()
}

// RemoveFavorite unmarks a symbol.
func (s *Store) RemoveFavorite(symbol string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.state.FavoriteTokens[:0]
	for _, fav := range s.state.FavoriteTokens {
		if !strings.EqualFold(fav, symbol) {
			kept = append(kept, fav)
		}
	}
	s.state.FavoriteTokens = kept
	return s.save()
}

// Alerts returns a copy of the price alerts.
func (s *Store) Alerts() []PriceAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]PriceAlert, len(s.state.PriceAlerts))
	copy(out, s.state.PriceAlerts)
	return out
}

// AddAlert creates an active price alert and returns its ID.
func (s *Store) AddAlert(symbol string, targetPrice float64, direction string) (string, error) {
	if direction != "above" && direction != "below" {
		return "", fmt.Errorf("direction must be 'above' or 'below'")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	alert := PriceAlert{
		ID:          uuid.NewString(),
		Symbol:      symbol,
		TargetPrice: targetPrice,
		Direction:   direction,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	s.state.PriceAlerts = append(s.state.PriceAlerts, alert)
	return alert.ID, s.save()
}

// RemoveAlert deletes an alert by ID.
func (s *Store) RemoveAlert(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.state.PriceAlerts[:0]
	found := false
	for _, alert := range s.state.PriceAlerts {
		if alert.ID == id {
			found = true
			continue
		}
		kept = append(kept, alert)
	}
	if !found {
		return fmt.Errorf("alert '%s' not found", id)
	}
	s.state.PriceAlerts = kept
	return s.save()
}

// ToggleAlert flips an alert's active flag.
func (s *Store) ToggleAlert(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.PriceAlerts {
		if s.state.PriceAlerts[i].ID == id {
			s.state.PriceAlerts[i].Active = !s.state.PriceAlerts[i].Active
			return s.save()
		}
	}
	return fmt.Errorf("alert '%s' not found", id)
}

// Analytics returns the aggregate counters.
func (s *Store) Analytics() Analytics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Analytics
}

// SetDarkMode sets the theme flag.
func (s *Store) SetDarkMode(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DarkMode = on
	return s.save()
}

// DarkMode reports the theme flag.
func (s *Store) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.DarkMode
}

// SetDeveloperMode sets the developer-mode flag.
func (s *Store) SetDeveloperMode(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DeveloperMode = on
	return s.save()
}

// DeveloperMode reports the developer-mode flag.
func (s *Store) DeveloperMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.DeveloperMode
}

// CompleteOnboarding marks onboarding as done.
func (s *Store) CompleteOnboarding() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.OnboardingComplete = true
	return s.save()
}

// OnboardingComplete reports whether onboarding was completed.
func (s *Store) OnboardingComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.OnboardingComplete
}

// Reset restores defaults, dropping history, favorites, alerts and counters.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = defaultState()
	return s.save()
}
