package schema

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Geometry in this layer is described exclusively with coordinates, vectors
// and planes. CAD-internal face/edge/feature identifiers are forbidden: they
// are unstable across regeneration and leak one agent's kernel internals into
// another's inputs. Validation enforces the rule rather than leaving it to
// convention.

// cadRefKeys are geometric_spec / geometric_region keys that betray a
// CAD-internal reference.
var cadRefKeys = []string{
	"face_id", "edge_id", "vertex_id", "feature_id", "solid_id",
	"shape_id", "sketch_id", "brep_ref", "occ_ref",
}

// checkNoCADRefs walks a free-form geometry mapping (including nested maps
// and lists) and reports the first CAD-internal identifier key found.
func checkNoCADRefs(field string, v any) *FieldError {
	switch m := v.(type) {
	case map[string]any:
		for k, nested := range m {
			lk := strings.ToLower(k)
			for _, bad := range cadRefKeys {
				if lk == bad || strings.HasSuffix(lk, "_"+bad) {
					return &FieldError{
						Field:      field,
						Constraint: fmt.Sprintf("CAD-internal references are not allowed; describe geometry with coordinates/vectors/planes (found key %q)", k),
						Value:      k,
					}
				}
			}
			if fe := checkNoCADRefs(field, nested); fe != nil {
				return fe
			}
		}
	case []any:
		for _, nested := range m {
			if fe := checkNoCADRefs(field, nested); fe != nil {
				return fe
			}
		}
	}
	return nil
}

// RegionKind names the known geometric-region shapes. Free-form regions with
// an unrecognized region_type decode as GenericRegion so new shapes can flow
// through older consumers untouched.
type RegionKind string

const (
	RegionPoint           RegionKind = "point"
	RegionPlanarFace      RegionKind = "planar_face"
	RegionCylindricalFace RegionKind = "cylindrical_face"
	RegionHolePattern     RegionKind = "hole_pattern"
	RegionBoltCircle      RegionKind = "bolt_circle"
)

// Region is one decoded geometric region.
type Region interface {
	Kind() RegionKind
}

// PointRegion pins a condition to a single coordinate.
type PointRegion struct {
	Coordinates []float64      `mapstructure:"coordinates"`
	Extra       map[string]any `mapstructure:",remain"`
}

func (r *PointRegion) Kind() RegionKind { return RegionPoint }

// PlanarFaceRegion selects a planar face by its normal and a point on the
// plane, within a matching tolerance.
type PlanarFaceRegion struct {
	NormalVector []float64      `mapstructure:"normal_vector"`
	Origin       []float64      `mapstructure:"origin"`
	Tolerance    float64        `mapstructure:"tolerance"`
	Extra        map[string]any `mapstructure:",remain"`
}

func (r *PlanarFaceRegion) Kind() RegionKind { return RegionPlanarFace }

// CylindricalFaceRegion selects a cylindrical face by axis, a point on the
// axis and radius.
type CylindricalFaceRegion struct {
	Axis      []float64      `mapstructure:"axis"`
	Center    []float64      `mapstructure:"center"`
	RadiusMM  float64        `mapstructure:"radius_mm"`
	Tolerance float64        `mapstructure:"tolerance"`
	Extra     map[string]any `mapstructure:",remain"`
}

func (r *CylindricalFaceRegion) Kind() RegionKind { return RegionCylindricalFace }

// HolePatternRegion describes a regular pattern of holes.
type HolePatternRegion struct {
	HoleDiameterMM  float64        `mapstructure:"hole_diameter"`
	HoleCount       int            `mapstructure:"hole_count"`
	Pattern         string         `mapstructure:"pattern"`
	CenterSpacingMM float64        `mapstructure:"center_spacing"`
	Extra           map[string]any `mapstructure:",remain"`
}

func (r *HolePatternRegion) Kind() RegionKind { return RegionHolePattern }

// BoltCircleRegion describes holes on a circular pattern.
type BoltCircleRegion struct {
	CircleDiameterMM float64        `mapstructure:"circle_diameter"`
	HoleDiameterMM   float64        `mapstructure:"hole_diameter"`
	HoleCount        int            `mapstructure:"hole_count"`
	Center           []float64      `mapstructure:"center"`
	Extra            map[string]any `mapstructure:",remain"`
}

func (r *BoltCircleRegion) Kind() RegionKind { return RegionBoltCircle }

// GenericRegion is the forward-compatibility escape hatch: a mapping whose
// region_type this layer does not know, or that carries no region_type at
// all, passed through opaquely after the CAD-reference scan.
type GenericRegion struct {
	RegionType string
	Fields     map[string]any
}

func (r *GenericRegion) Kind() RegionKind { return RegionKind(r.RegionType) }

// ParseRegion decodes a free-form geometric_region mapping into its typed
// shape. Known shapes are validated strictly; unknown keys on a known shape
// pass through in Extra. Mappings with an unknown or absent region_type pass
// through as GenericRegion. The only hard constraints on an arbitrary mapping
// are non-emptiness and no CAD-internal references.
func ParseRegion(m map[string]any) (Region, error) {
	l := errList{entity: "geometric_region"}
	if len(m) == 0 {
		l.add("geometric_region", "must not be empty", nil)
		return nil, l.err()
	}
	if fe := checkNoCADRefs("geometric_region", m); fe != nil {
		l.addErr(fe)
		return nil, l.err()
	}
	rt, _ := m["region_type"].(string)

	rest := make(map[string]any, len(m))
	for k, v := range m {
		if k != "region_type" {
			rest[k] = v
		}
	}

	var region Region
	switch RegionKind(rt) {
	case RegionPoint:
		r := &PointRegion{}
		if err := decodeRegion(rest, r); err != nil {
			return nil, err
		}
		checkVec3(&l, "coordinates", r.Coordinates)
		region = r
	case RegionPlanarFace:
		r := &PlanarFaceRegion{}
		if err := decodeRegion(rest, r); err != nil {
			return nil, err
		}
		checkNonZeroVec3(&l, "normal_vector", r.NormalVector)
		if r.Origin != nil {
			checkVec3(&l, "origin", r.Origin)
		}
		region = r
	case RegionCylindricalFace:
		r := &CylindricalFaceRegion{}
		if err := decodeRegion(rest, r); err != nil {
			return nil, err
		}
		checkNonZeroVec3(&l, "axis", r.Axis)
		if r.Center != nil {
			checkVec3(&l, "center", r.Center)
		}
		if r.RadiusMM <= 0 {
			l.add("radius_mm", "must be > 0", r.RadiusMM)
		}
		region = r
	case RegionHolePattern:
		r := &HolePatternRegion{}
		if err := decodeRegion(rest, r); err != nil {
			return nil, err
		}
		if r.HoleCount <= 0 {
			l.add("hole_count", "must be > 0", r.HoleCount)
		}
		if r.HoleDiameterMM <= 0 {
			l.add("hole_diameter", "must be > 0", r.HoleDiameterMM)
		}
		region = r
	case RegionBoltCircle:
		r := &BoltCircleRegion{}
		if err := decodeRegion(rest, r); err != nil {
			return nil, err
		}
		if r.HoleCount <= 0 {
			l.add("hole_count", "must be > 0", r.HoleCount)
		}
		if r.CircleDiameterMM <= 0 {
			l.add("circle_diameter", "must be > 0", r.CircleDiameterMM)
		}
		if r.Center != nil {
			checkVec3(&l, "center", r.Center)
		}
		region = r
	default:
		region = &GenericRegion{RegionType: rt, Fields: rest}
	}

	if err := l.err(); err != nil {
		return nil, err
	}
	return region, nil
}

// decodeRegion maps a known region shape strictly: field types must match,
// leftover keys land in the shape's Extra map.
func decodeRegion(m map[string]any, out any) error {
	if err := mapstructure.Decode(m, out); err != nil {
		return &ValidationError{
			Entity: "geometric_region",
			Fields: []*FieldError{{Field: "geometric_region", Constraint: err.Error(), Value: m}},
		}
	}
	return nil
}
