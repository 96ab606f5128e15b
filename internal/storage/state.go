package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/travelogue/internal/constants"
	"github.com/julianstephens/travelogue/internal/models"
)

// GetState reads the journey state stored under the journey key
func GetState(p Provider) (models.State, error) {
	data, err := p.Get(constants.StateKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.State{}, ErrNoState
		}
		return models.State{}, fmt.Errorf("failed to read journey: %w", err)
	}

	var s models.State
	if err := json.Unmarshal(data, &s); err != nil {
		return models.State{}, fmt.Errorf("failed to parse stored journey: %w", err)
	}
	if s.Journey == nil {
		s.Journey = []models.Day{}
	}
	return s, nil
}

// SaveState serializes the journey state under the journey key
func SaveState(p Provider, s models.State) error {
	if s.Journey == nil {
		s.Journey = []models.Day{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to serialize journey: %w", err)
	}
	if err := p.Put(constants.StateKey, data); err != nil {
		return fmt.Errorf("failed to save journey: %w", err)
	}
	return nil
}

// ClearState removes the stored journey
func ClearState(p Provider) error {
	if err := p.Delete(constants.StateKey); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to clear journey: %w", err)
	}
	return nil
}

// UndoState restores the journey that was stored before the last save
func UndoState(p Provider) (models.State, error) {
	if err := p.Undo(constants.StateKey); err != nil {
		return models.State{}, err
	}
	return GetState(p)
}
