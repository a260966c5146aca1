package db

import (
	"strings"
	"testing"
)

func vectorIndex(t *testing.T) *IndexDefinition {
	t.Helper()
	idx, err := NewIndex("roadbook:vec").
		Prefix("roadbook:vec:").
		Tag("kind").
		Text("title").
		Vector("vector", VectorSpec{Algorithm: VectorHNSW, Dim: 1536, Distance: DistanceCosine, M: 16, EFConstruction: 200}).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return idx
}

func TestIndexBuilder_Fields(t *testing.T) {
	idx := vectorIndex(t)

	if len(idx.Fields) != 3 {
		t.Fatalf("fields count = %d, want 3", len(idx.Fields))
	}
	if idx.Fields[0].Type != FieldTag || idx.Fields[1].Type != FieldText {
		t.Errorf("unexpected field types %+v", idx.Fields)
	}
	v := idx.Fields[2].Vector
	if v == nil || v.Algorithm != VectorHNSW || v.Dim != 1536 || v.M != 16 || v.EFConstruction != 200 {
		t.Errorf("unexpected vector spec %+v", v)
	}
}

func TestCreateArgs(t *testing.T) {
	tests := []struct {
		name string
		def  *IndexDefinition
		want string
	}{
		{
			name: "hnsw with prefix",
			def:  vectorIndex(t),
			want: "roadbook:vec ON HASH PREFIX 1 roadbook:vec: SCHEMA kind TAG title TEXT " +
				"vector VECTOR HNSW 10 TYPE FLOAT32 DIM 1536 DISTANCE_METRIC COSINE M 16 EF_CONSTRUCTION 200",
		},
		{
			name: "flat defaults",
			def: &IndexDefinition{Name: "flat", Fields: []IndexField{
				{Name: "v", Type: FieldVector, Vector: &VectorSpec{Dim: 8}},
			}},
			want: "flat ON HASH SCHEMA v VECTOR FLAT 6 TYPE FLOAT32 DIM 8 DISTANCE_METRIC COSINE",
		},
		{
			name: "hnsw server defaults",
			def: &IndexDefinition{Name: "h", Prefixes: []string{"a:", "b:"}, Fields: []IndexField{
				{Name: "v", Type: FieldVector, Vector: &VectorSpec{Algorithm: VectorHNSW, Dim: 4, Distance: DistanceL2}},
			}},
			want: "h ON HASH PREFIX 2 a: b: SCHEMA v VECTOR HNSW 6 TYPE FLOAT32 DIM 4 DISTANCE_METRIC L2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := tt.def.CreateArgs()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := strings.Join(args, " "); got != tt.want {
				t.Errorf("got  %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		builder *IndexBuilder
		wantErr []string
	}{
		{"empty name", NewIndex("").Tag("x"), []string{"index name is required"}},
		{"no fields", NewIndex("idx"), []string{"at least one field"}},
		{"vector without dim", NewIndex("idx").Vector("v", VectorSpec{}), []string{"positive DIM"}},
		{"invalid characters", NewIndex("idx with spaces").Tag("x"), []string{"invalid characters"}},
		{"duplicate field", NewIndex("idx").Tag("kind").Text("kind"), []string{`duplicate field name "kind"`}},
		{
			"reports every problem",
			NewIndex("bad name").Tag("").Vector("v", VectorSpec{Dim: -1}),
			[]string{"invalid characters", "field 0: name is required", "positive DIM"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			if err == nil {
				t.Fatal("expected error")
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q does not mention %q", err.Error(), want)
				}
			}
		})
	}
}

func TestIndexDefinition_String(t *testing.T) {
	idx, err := NewIndex("my-idx").Prefix("doc:").Tag("kind").Build()
	if err != nil {
		t.Fatal(err)
	}
	want := "FT.CREATE my-idx ON HASH PREFIX 1 doc: SCHEMA kind TAG"
	if got := idx.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestIsValidIdentifier(t *testing.T) {
	for s, want := range map[string]bool{
		"roadbook:vec": true,
		"a_b-c:1":      true,
		"":             false,
		"a b":          false,
		"ñ":            false,
	} {
		if got := IsValidIdentifier(s); got != want {
			t.Errorf("IsValidIdentifier(%q) = %v, want %v", s, got, want)
		}
	}
}
