package guard

import (
	"encoding/json"
	"fmt"
	"reflect"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Geometry is implemented by domain types that carry a GeoJSON geometry.
type Geometry interface {
	GeometryType() string
	GeometryCoordinates() any
}

// GeometryRule validates a GeoJSON Point, LineString, Polygon or MultiPolygon.
// The value may be a Geometry, a decoded JSON/BSON object or raw JSON bytes.
func GeometryRule(name string, value any) Rule {
	return Rule{
		Check: func() bool {
			typ, coords, ok := geometryParts(value)
			return ok && validGeometry(typ, coords)
		},
		Failure: InvalidInput(name, fmt.Sprintf("%s must be a valid geometry", name)),
	}
}

func geometryParts(value any) (string, any, bool) {
	switch v := value.(type) {
	case Geometry:
		return v.GeometryType(), v.GeometryCoordinates(), true
	case map[string]any:
		typ, _ := v["type"].(string)
		return typ, v["coordinates"], true
	case bson.M:
		typ, _ := v["type"].(string)
		return typ, v["coordinates"], true
	case json.RawMessage:
		return geometryFromJSON(v)
	case []byte:
		return geometryFromJSON(v)
	case string:
		return geometryFromJSON([]byte(v))
	}
	return "", nil, false
}

func geometryFromJSON(raw []byte) (string, any, bool) {
	var obj struct {
		Type        string `json:"type"`
		Coordinates any    `json:"coordinates"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", nil, false
	}
	return obj.Type, obj.Coordinates, true
}

func validGeometry(typ string, coords any) bool {
	switch typ {
	case "Point":
		return validPosition(coords)
	case "LineString":
		return validPositions(coords, 2)
	case "Polygon":
		return validPolygon(coords)
	case "MultiPolygon":
		polygons, ok := asList(coords)
		if !ok || len(polygons) == 0 {
			return false
		}
		for _, p := range polygons {
			if !validPolygon(p) {
				return false
			}
		}
		return true
	}
	return false
}

// validPolygon requires at least one linear ring; each ring is closed and has
// at least four positions.
func validPolygon(coords any) bool {
	rings, ok := asList(coords)
	if !ok || len(rings) == 0 {
		return false
	}
	for _, ring := range rings {
		positions, ok := asList(ring)
		if !ok || len(positions) < 4 || !validPositions(ring, 4) {
			return false
		}
		first, _ := asList(positions[0])
		last, _ := asList(positions[len(positions)-1])
		if !reflect.DeepEqual(numbers(first), numbers(last)) {
			return false
		}
	}
	return true
}

func validPositions(coords any, min int) bool {
	positions, ok := asList(coords)
	if !ok || len(positions) < min {
		return false
	}
	for _, p := range positions {
		if !validPosition(p) {
			return false
		}
	}
	return true
}

// validPosition accepts [lon, lat] with an optional altitude.
func validPosition(p any) bool {
	values, ok := asList(p)
	if !ok || len(values) < 2 || len(values) > 3 {
		return false
	}
	nums := numbers(values)
	if len(nums) != len(values) {
		return false
	}
	lon, lat := nums[0], nums[1]
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}

func asList(v any) ([]any, bool) {
	if !isSlice(v) {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range rv.Len() {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func numbers(values []any) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if _, isString := v.(string); isString {
			continue
		}
		if f, ok := toNumber(v); ok {
			out = append(out, f)
		}
	}
	return out
}
