package stations

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"metro-ticketing-platform/internal/models"
)

//go:embed stations.yaml
var defaultStations []byte

// Directory is the immutable station reference table. It is built once
// at startup and shared read-only across all request handlers.
type Directory struct {
	byName map[string]models.Station
}

type stationsFile struct {
	Stations []models.Station `yaml:"stations"`
}

// Load builds the directory from a YAML file. When path is empty the
// embedded default station table is used.
func Load(path string) (*Directory, error) {
	data := defaultStations
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read stations file: %w", err)
		}
		data = fileData
	}

	var parsed stationsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse stations config: %w", err)
	}

	return NewDirectory(parsed.Stations)
}

// NewDirectory builds a directory from an explicit station list.
func NewDirectory(list []models.Station) (*Directory, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("stations config contains no stations")
	}

	byName := make(map[string]models.Station, len(list))
	for _, s := range list {
		if s.Name == "" {
			return nil, fmt.Errorf("stations config contains a station without a name")
		}
		if s.Price < 0 {
			return nil, fmt.Errorf("station %q has a negative fare-basis price", s.Name)
		}
		if _, exists := byName[s.Name]; exists {
			return nil, fmt.Errorf("duplicate station name %q", s.Name)
		}
		byName[s.Name] = s
	}

	return &Directory{byName: byName}, nil
}

// Lookup returns the station for the given name.
func (d *Directory) Lookup(name string) (models.Station, bool) {
	s, ok := d.byName[name]
	return s, ok
}

// All returns every station in the directory. Order is not defined.
func (d *Directory) All() []models.Station {
	all := make([]models.Station, 0, len(d.byName))
	for _, s := range d.byName {
		all = append(all, s)
	}
	return all
}

// Count returns the number of stations in the directory.
func (d *Directory) Count() int {
	return len(d.byName)
}

// TripPrice computes the fare for a trip between two stations as the
// absolute difference of their fare-basis prices. It is symmetric and
// does not require the stations to differ.
func (d *Directory) TripPrice(fromName, toName string) (int, error) {
	from, ok := d.byName[fromName]
	if !ok {
		return 0, fmt.Errorf("%w: %s", models.ErrInvalidStation, fromName)
	}
	to, ok := d.byName[toName]
	if !ok {
		return 0, fmt.Errorf("%w: %s", models.ErrInvalidStation, toName)
	}

	price := to.Price - from.Price
	if price < 0 {
		price = -price
	}
	return price, nil
}
