package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Site is one observation point fetched from renewables.ninja.
type Site struct {
	ID         string  `json:"id"`
	Technology string  `json:"technology"` // e.g. "open_field_pv", "wind_onshore"
	Dataset    string  `json:"dataset"`    // ninja dataset: "pv" or "wind"
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Region     string  `json:"region"` // e.g. "europe"
}

// SiteList represents a collection of sites.
type SiteList struct {
	Region    string `json:"region"`
	UpdatedAt string `json:"updated_at"` // ISO 8601 timestamp
	Sites     []Site `json:"sites"`
}

// LoadSites loads sites from a JSON file.
func LoadSites(filePath string) (*SiteList, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read sites file: %w", err)
	}
	var list SiteList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse sites file: %w", err)
	}
	return &list, nil
}

// SaveSites saves sites to a JSON file.
func SaveSites(list *SiteList, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sites: %w", err)
	}
	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write sites file: %w", err)
	}
	return nil
}

// ByTechnology groups a site list by technology id.
func (l *SiteList) ByTechnology() map[string][]Site {
	out := map[string][]Site{}
	if l == nil {
		return out
	}
	for _, s := range l.Sites {
		out[s.Technology] = append(out[s.Technology], s)
	}
	return out
}

// GetDefaultSitesPath returns the default path for the sites file.
func GetDefaultSitesPath() string {
	if path := os.Getenv("SITES_FILE"); path != "" {
		return path
	}
	return "./data/sites.json"
}
