package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kailas-cloud/roadbook/internal/domain"
	"github.com/kailas-cloud/roadbook/internal/domain/station"
)

func TestLoad_Embedded(t *testing.T) {
	c, err := Load("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Modules) == 0 {
		t.Fatal("expected manual modules")
	}
	if len(c.Stations) != 27 {
		t.Errorf("expected 27 stations, got %d", len(c.Stations))
	}

	var fines bool
	for _, m := range c.Modules {
		for _, s := range m.Sections {
			if s.Title == "03.09 Multas y sanciones" {
				fines = true
			}
		}
	}
	if !fines {
		t.Error("expected the fines section in the embedded manual")
	}
}

func TestLoad_Paths(t *testing.T) {
	dir := t.TempDir()
	mp := filepath.Join(dir, "manual.json")
	sp := filepath.Join(dir, "stations.csv")
	writeFile(t, mp, `[{"id":"1","titulo":"Uno","secciones":[{"t":"1.1 A","p":["texto"]}]}]`)
	writeFile(t, sp, "id,nombre,red,pais,status,instrucciones\nX-1,Uno,IDS,Francia,ok,Llenar\n")

	c, err := Load(mp, sp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Modules) != 1 || len(c.Stations) != 1 {
		t.Errorf("unexpected corpus %+v", c)
	}

	if _, err := Load(filepath.Join(dir, "missing.json"), ""); err == nil {
		t.Error("expected error for missing manual")
	}
}

func TestParseManual_Integrity(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{`},
		{"missing id", `[{"titulo":"x","secciones":[]}]`},
		{"missing title", `[{"id":"1","secciones":[]}]`},
		{"duplicate id", `[{"id":"1","titulo":"a","secciones":[]},{"id":"1","titulo":"b","secciones":[]}]`},
		{"section without title", `[{"id":"1","titulo":"a","secciones":[{"p":["x"]}]}]`},
		{"section without paragraphs", `[{"id":"1","titulo":"a","secciones":[{"t":"x"}]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManual([]byte(tt.data))
			if !errors.Is(err, domain.ErrDataIntegrity) {
				t.Errorf("expected ErrDataIntegrity, got %v", err)
			}
		})
	}
}

func TestParseStations_Status(t *testing.T) {
	data := "id,nombre,red,pais,status,instrucciones\n" +
		"A,Uno,IDS,Francia,ok,x\n" +
		"B,Dos,IDS,Francia,condicionado,x\n" +
		"C,Tres,IDS,Francia,warn,x\n" +
		"D,Cuatro,IDS,Francia, OK ,\"con, coma\"\n"
	got, err := ParseStations([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []station.Status{station.StatusOK, station.StatusConditioned, station.StatusConditioned, station.StatusOK}
	for i, s := range got {
		if s.Status != want[i] {
			t.Errorf("%s: status %q, want %q", s.ID, s.Status, want[i])
		}
	}
	if got[3].Instructions != "con, coma" {
		t.Errorf("quoted field not parsed: %q", got[3].Instructions)
	}
}

func TestParseStations_Integrity(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"missing column", "id,nombre,red,pais,status\nA,x,y,z,ok\n"},
		{"duplicate id", "id,nombre,red,pais,status,instrucciones\nA,x,y,z,ok,i\nA,x,y,z,ok,i\n"},
		{"empty id", "id,nombre,red,pais,status,instrucciones\n,x,y,z,ok,i\n"},
		{"missing name", "id,nombre,red,pais,status,instrucciones\nA,,y,z,ok,i\n"},
		{"column count", "id,nombre,red,pais,status,instrucciones\nA,x,y\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStations([]byte(tt.data))
			if !errors.Is(err, domain.ErrDataIntegrity) {
				t.Errorf("expected ErrDataIntegrity, got %v", err)
			}
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}
