// Package dataset loads the static knowledge corpora: the operations manual
// and the list of authorised fuel stations.
package dataset

import (
	"bytes"
	"embed"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/roadbook/internal/domain"
	"github.com/kailas-cloud/roadbook/internal/domain/manual"
	"github.com/kailas-cloud/roadbook/internal/domain/station"
)

//go:embed data/manual.json data/gasolineras.csv
var embedded embed.FS

const (
	manualFile   = "data/manual.json"
	stationsFile = "data/gasolineras.csv"
)

var stationColumns = []string{"id", "nombre", "red", "pais", "status", "instrucciones"}

// Corpus bundles both datasets.
type Corpus struct {
	Modules  []manual.Module
	Stations []station.Station
}

// Load reads the datasets. Empty paths select the embedded copies.
func Load(manualPath, stationsPath string) (Corpus, error) {
	mraw, err := read(manualPath, manualFile)
	if err != nil {
		return Corpus{}, err
	}
	modules, err := ParseManual(mraw)
	if err != nil {
		return Corpus{}, err
	}

	sraw, err := read(stationsPath, stationsFile)
	if err != nil {
		return Corpus{}, err
	}
	stations, err := ParseStations(sraw)
	if err != nil {
		return Corpus{}, err
	}

	return Corpus{Modules: modules, Stations: stations}, nil
}

func read(path, fallback string) ([]byte, error) {
	if path == "" {
		data, err := embedded.ReadFile(fallback)
		if err != nil {
			return nil, fmt.Errorf("read embedded %s: %w", fallback, err)
		}
		return data, nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

type moduleDTO struct {
	ID        string       `json:"id"`
	Titulo    string       `json:"titulo"`
	Secciones []sectionDTO `json:"secciones"`
}

type sectionDTO struct {
	T string   `json:"t"`
	P []string `json:"p"`
}

// ParseManual decodes the manual corpus and checks ids, titles and sections.
func ParseManual(data []byte) ([]manual.Module, error) {
	var dtos []moduleDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, domain.NewIntegrityError("manual", "", err.Error())
	}

	seen := make(map[string]struct{}, len(dtos))
	out := make([]manual.Module, 0, len(dtos))
	for i, d := range dtos {
		id := strings.TrimSpace(d.ID)
		if id == "" || strings.TrimSpace(d.Titulo) == "" {
			return nil, domain.NewIntegrityError("manual", fmt.Sprintf("#%d", i), "module id and title are required")
		}
		if _, dup := seen[id]; dup {
			return nil, domain.NewIntegrityError("manual", id, "duplicate module id")
		}
		seen[id] = struct{}{}

		m := manual.Module{ID: id, Title: strings.TrimSpace(d.Titulo)}
		for j, s := range d.Secciones {
			if strings.TrimSpace(s.T) == "" || s.P == nil {
				return nil, domain.NewIntegrityError("manual", fmt.Sprintf("%s/#%d", id, j), "section title and paragraphs are required")
			}
			m.Sections = append(m.Sections, manual.Section{Title: strings.TrimSpace(s.T), Paragraphs: s.P})
		}
		out = append(out, m)
	}
	return out, nil
}

// ParseStations decodes the station CSV. Status "ok" is mandatory refuelling,
// any other value is conditioned.
func ParseStations(data []byte) ([]station.Station, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\ufeff"))))
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, domain.NewIntegrityError("stations", "", "missing header")
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range stationColumns {
		if _, ok := idx[c]; !ok {
			return nil, domain.NewIntegrityError("stations", "", fmt.Sprintf("missing column %q", c))
		}
	}

	var out []station.Station
	seen := make(map[string]struct{})
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.NewIntegrityError("stations", fmt.Sprintf("line %d", line), err.Error())
		}
		field := func(name string) string { return strings.TrimSpace(rec[idx[name]]) }
		s := station.Station{
			ID:           field("id"),
			Name:         field("nombre"),
			Network:      field("red"),
			Country:      field("pais"),
			Status:       station.ParseStatus(field("status")),
			Instructions: field("instrucciones"),
		}
		if s.ID == "" {
			return nil, domain.NewIntegrityError("stations", fmt.Sprintf("line %d", line), "empty id")
		}
		if _, dup := seen[s.ID]; dup {
			return nil, domain.NewIntegrityError("stations", s.ID, "duplicate id")
		}
		if s.Name == "" || s.Country == "" {
			return nil, domain.NewIntegrityError("stations", s.ID, "name and country are required")
		}
		seen[s.ID] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}
