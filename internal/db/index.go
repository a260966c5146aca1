package db

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DistanceMetric of a VECTOR field.
type DistanceMetric string

const (
	DistanceL2     DistanceMetric = "L2"
	DistanceIP     DistanceMetric = "IP"
	DistanceCosine DistanceMetric = "COSINE"
)

// VectorAlgorithm of a VECTOR field.
type VectorAlgorithm string

const (
	VectorHNSW VectorAlgorithm = "HNSW"
	VectorFlat VectorAlgorithm = "FLAT"
)

// FieldType is the FT.CREATE schema keyword of a field.
type FieldType string

const (
	FieldTag    FieldType = "TAG"
	FieldText   FieldType = "TEXT"
	FieldVector FieldType = "VECTOR"
)

// VectorSpec configures a FLOAT32 vector field. Empty Algorithm means FLAT,
// empty Distance means COSINE; zero M or EFConstruction keep server defaults.
type VectorSpec struct {
	Algorithm      VectorAlgorithm
	Dim            int
	Distance       DistanceMetric
	M              int
	EFConstruction int
}

// IndexField is one schema entry. Vector is set only for FieldVector.
type IndexField struct {
	Name   string
	Type   FieldType
	Vector *VectorSpec
}

// IndexDefinition describes an FT index over hashes.
type IndexDefinition struct {
	Name     string
	Prefixes []string
	Fields   []IndexField
}

// Validate reports every problem of the definition at once.
func (d *IndexDefinition) Validate() error {
	var errs []error
	switch {
	case d.Name == "":
		errs = append(errs, errors.New("index name is required"))
	case !IsValidIdentifier(d.Name):
		errs = append(errs, fmt.Errorf("index name %q contains invalid characters", d.Name))
	}
	if len(d.Fields) == 0 {
		errs = append(errs, errors.New("at least one field is required"))
	}

	seen := make(map[string]struct{}, len(d.Fields))
	for i, f := range d.Fields {
		if f.Name == "" {
			errs = append(errs, fmt.Errorf("field %d: name is required", i))
			continue
		}
		if _, dup := seen[f.Name]; dup {
			errs = append(errs, fmt.Errorf("duplicate field name %q", f.Name))
		}
		seen[f.Name] = struct{}{}

		switch f.Type {
		case FieldTag, FieldText:
		case FieldVector:
			if f.Vector == nil || f.Vector.Dim <= 0 {
				errs = append(errs, fmt.Errorf("vector field %q requires a positive DIM", f.Name))
			}
		default:
			errs = append(errs, fmt.Errorf("field %q: unknown type %q", f.Name, f.Type))
		}
	}
	return errors.Join(errs...)
}

// CreateArgs renders the FT.CREATE arguments after the command name.
func (d *IndexDefinition) CreateArgs() ([]string, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	args := []string{d.Name, "ON", "HASH"}
	if len(d.Prefixes) > 0 {
		args = append(args, "PREFIX", strconv.Itoa(len(d.Prefixes)))
		args = append(args, d.Prefixes...)
	}
	args = append(args, "SCHEMA")
	for _, f := range d.Fields {
		args = append(args, f.Name)
		if f.Type == FieldVector {
			args = append(args, f.Vector.args()...)
		} else {
			args = append(args, string(f.Type))
		}
	}
	return args, nil
}

func (v *VectorSpec) args() []string {
	algo := orDefault(v.Algorithm, VectorFlat)
	attrs := []string{
		"TYPE", "FLOAT32",
		"DIM", strconv.Itoa(v.Dim),
		"DISTANCE_METRIC", string(orDefault(v.Distance, DistanceCosine)),
	}
	if algo == VectorHNSW {
		if v.M > 0 {
			attrs = append(attrs, "M", strconv.Itoa(v.M))
		}
		if v.EFConstruction > 0 {
			attrs = append(attrs, "EF_CONSTRUCTION", strconv.Itoa(v.EFConstruction))
		}
	}
	return append([]string{"VECTOR", string(algo), strconv.Itoa(len(attrs))}, attrs...)
}

// String renders the definition as an FT.CREATE command line.
func (d *IndexDefinition) String() string {
	args, err := d.CreateArgs()
	if err != nil {
		return "FT.CREATE " + d.Name + " <invalid: " + err.Error() + ">"
	}
	return "FT.CREATE " + strings.Join(args, " ")
}

func orDefault[T ~string](v, fallback T) T {
	if v == "" {
		return fallback
	}
	return v
}

// IsValidIdentifier reports whether s matches [a-zA-Z0-9_:-]+.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == ':', r == '-':
		default:
			return false
		}
	}
	return true
}
