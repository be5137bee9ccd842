package services

import (
	"encoding/json"
	"os"

	"commontable-alerts/data"
	"commontable-alerts/models"
)

// ShelterCatalog provides the shelter list for a digest computation.
type ShelterCatalog interface {
	Load() ([]models.Shelter, error)
}

// ShelterStore serves the catalog from an optional on-disk JSON file,
// falling back to the embedded default. The file is re-read on every call
// so a catalog edit shows up in the next digest without a restart.
type ShelterStore struct {
	path string
}

func NewShelterStore(path string) *ShelterStore {
	return &ShelterStore{path: path}
}

func (s *ShelterStore) Load() ([]models.Shelter, error) {
	raw := data.DefaultShelters
	if s.path != "" {
		if b, err := os.ReadFile(s.path); err == nil {
			raw = b
		}
	}
	var shelters []models.Shelter
	if err := json.Unmarshal(raw, &shelters); err != nil {
		return nil, err
	}
	return shelters, nil
}
