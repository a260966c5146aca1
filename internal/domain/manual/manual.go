// Package manual holds the operations manual model.
package manual

import "strings"

// Module is a chapter of the operations manual.
type Module struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Section is a titled run of paragraphs within a module.
type Section struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
}

// Entry is one retrievable unit: a single section with its module context.
type Entry struct {
	ModuleID     string
	ModuleTitle  string
	SectionTitle string
	Text         string
}

// Hit is a scored entry.
type Hit struct {
	Entry
	Score int
}

// Entries flattens modules into one entry per section.
func Entries(modules []Module) []Entry {
	var out []Entry
	for _, m := range modules {
		for _, s := range m.Sections {
			out = append(out, Entry{
				ModuleID:     m.ID,
				ModuleTitle:  m.Title,
				SectionTitle: s.Title,
				Text:         strings.Join(s.Paragraphs, "\n"),
			})
		}
	}
	return out
}
