package response

import (
	"math"
	"strconv"
)

// Float64 is a float64 that marshals NaN and ±Inf as JSON null. The
// computation core passes these through as sentinel values, but
// encoding/json refuses to serialize them, so the HTTP boundary maps them to
// null and leaves the guard to the client.
type Float64 float64

func (f Float64) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// Floats converts a float64 slice for JSON serialization.
func Floats(values []float64) []Float64 {
	out := make([]Float64, len(values))
	for i, v := range values {
		out[i] = Float64(v)
	}
	return out
}
