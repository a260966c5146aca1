package answer

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/roadbook/internal/domain"
	"github.com/kailas-cloud/roadbook/internal/domain/hit"
	"github.com/kailas-cloud/roadbook/internal/domain/station"
	"github.com/kailas-cloud/roadbook/internal/stationindex"
)

// Station lookup paths, in the order they are tried.
const (
	pathFilter        = "filter"
	pathFilterRelaxed = "filter_relaxed"
	pathScore         = "score"
)

func (s *Service) answerStations(searchQuery string, lang domain.Lang, dbg *DebugInfo) Response {
	f := s.stations.ParseFilters(searchQuery)
	dbg.Filters = &f

	found, path := s.lookupStations(searchQuery, f)
	dbg.StationPath = path

	text := stationStrings(lang)
	if len(found) == 0 {
		return Response{Answer: text.noMatchText(), Hits: []hit.Hit{}}
	}

	all := make([]station.Station, len(found))
	for i, h := range found {
		all[i] = h.Station
	}
	stationindex.SortForDisplay(all)

	scores := make(map[string]int, len(found))
	for _, h := range found {
		scores[h.ID] = h.Score
	}

	shown := all
	if len(shown) > s.cfg.DisplayCap {
		shown = shown[:s.cfg.DisplayCap]
	}
	hits := make([]station.Hit, len(shown))
	for i, st := range shown {
		hits[i] = station.Hit{Station: st, Score: scores[st.ID]}
	}

	return Response{
		Answer: renderStations(text, f, shown, len(all)),
		Hits:   hit.FromStations(hits),
	}
}

// lookupStations applies the parsed filters; when free text empties the result
// it retries with the structured filters alone, then falls back to scoring the
// free text (or the whole query when there is none).
func (s *Service) lookupStations(searchQuery string, f station.Filters) ([]station.Hit, string) {
	if found := s.stations.Filter(f); len(found) > 0 {
		return unscored(found), pathFilter
	}

	if f.FreeText != "" {
		relaxed := f
		relaxed.FreeText = ""
		if !relaxed.IsEmpty() {
			if found := s.stations.Filter(relaxed); len(found) > 0 {
				return unscored(found), pathFilterRelaxed
			}
		}
	}

	query := f.FreeText
	if query == "" {
		query = searchQuery
	}
	return s.stations.Search(query, 0), pathScore
}

func unscored(ss []station.Station) []station.Hit {
	out := make([]station.Hit, len(ss))
	for i, st := range ss {
		out[i] = station.Hit{Station: st}
	}
	return out
}

func renderStations(text stationText, f station.Filters, shown []station.Station, total int) string {
	country, network, status := text.all, text.allF, text.all
	if f.Country != "" {
		country = strings.ToUpper(f.Country)
	}
	if f.Network != "" {
		network = strings.ToUpper(f.Network)
	}
	if f.Status != "" {
		status = statusLabel(text, f.Status)
	}

	lines := []string{
		text.title,
		"",
		fmt.Sprintf("%s: %s", text.country, country),
		fmt.Sprintf("%s: %s", text.network, network),
		fmt.Sprintf("%s: %s", text.status, status),
		fmt.Sprintf("%s: %d %s", text.result, total, text.stations),
		"",
	}

	var ok, cond []string
	for _, st := range shown {
		item := fmt.Sprintf("- %s · %s · %s · %s · %s\n  %s: %s",
			st.ID, st.Name, st.Network, st.Country, statusLabel(text, st.Status),
			text.instruction, st.Instructions)
		if st.Status == station.StatusOK {
			ok = append(ok, item)
		} else {
			cond = append(cond, item)
		}
	}

	block := func(label string, items []string) {
		lines = append(lines, label+":")
		if len(items) == 0 {
			lines = append(lines, text.none)
		} else {
			lines = append(lines, strings.Join(items, "\n"))
		}
		lines = append(lines, "")
	}
	if f.Status == "" || f.Status == station.StatusOK {
		block(text.ok, ok)
	}
	if f.Status == "" || f.Status == station.StatusConditioned {
		block(text.cond, cond)
	}

	if total > len(shown) {
		lines = append(lines, text.shownLine(len(shown), total), "")
	}
	lines = append(lines, text.source)
	return strings.Join(lines, "\n")
}

func statusLabel(text stationText, s station.Status) string {
	if s == station.StatusOK {
		return text.ok
	}
	return text.cond
}
