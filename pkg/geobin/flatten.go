package geobin

import (
	"encoding/json"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Compose runs each flatten function in order.
func Compose(fns ...FlattenFunc) FlattenFunc {
	return func(bin *FlatBin, members []Member) {
		for _, fn := range fns {
			if fn != nil {
				fn(bin, members)
			}
		}
	}
}

// Count writes the member count to attr.
func Count(attr string) FlattenFunc {
	return func(bin *FlatBin, members []Member) {
		bin.Attributes[attr] = len(members)
	}
}

// Sum writes the sum of the numeric property prop to attr. Members without
// a numeric value are skipped.
func Sum(prop, attr string) FlattenFunc {
	return func(bin *FlatBin, members []Member) {
		bin.Attributes[attr] = floats.Sum(numbers(members, prop))
	}
}

// Mean writes the mean of the numeric property prop to attr. Nothing is
// written when no member has a numeric value.
func Mean(prop, attr string) FlattenFunc {
	return func(bin *FlatBin, members []Member) {
		if v := numbers(members, prop); len(v) > 0 {
			bin.Attributes[attr] = stat.Mean(v, nil)
		}
	}
}

// Min writes the smallest value of the numeric property prop to attr.
func Min(prop, attr string) FlattenFunc {
	return func(bin *FlatBin, members []Member) {
		if v := numbers(members, prop); len(v) > 0 {
			bin.Attributes[attr] = floats.Min(v)
		}
	}
}

// Max writes the largest value of the numeric property prop to attr.
func Max(prop, attr string) FlattenFunc {
	return func(bin *FlatBin, members []Member) {
		if v := numbers(members, prop); len(v) > 0 {
			bin.Attributes[attr] = floats.Max(v)
		}
	}
}

func numbers(members []Member, prop string) []float64 {
	out := make([]float64, 0, len(members))
	for _, m := range members {
		if v, ok := number(m.Properties()[prop]); ok {
			out = append(out, v)
		}
	}
	return out
}

func number(v interface{}) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}
