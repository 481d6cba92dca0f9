package script

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/phanxgames/thicket"
)

func vectorObject(v thicket.Vector3) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: v.X},
		&tengo.Float{Value: v.Y},
		&tengo.Float{Value: v.Z},
	}}
}

// vectorArgs reads up to three numeric arguments over base, so
// set_position(1, 2) keeps the current z. A single array argument is
// unpacked the same way.
func vectorArgs(fn string, base thicket.Vector3, args []tengo.Object) (thicket.Vector3, error) {
	if len(args) == 1 {
		if arr, ok := args[0].(*tengo.Array); ok {
			args = arr.Value
		}
	}
	if len(args) > 3 {
		return base, fmt.Errorf("%s: want at most 3 arguments, got %d", fn, len(args))
	}
	out := [3]float64{base.X, base.Y, base.Z}
	for i, a := range args {
		f, ok := tengo.ToFloat64(a)
		if !ok {
			return base, fmt.Errorf("%s: argument %d: want a number, got %s", fn, i, a.TypeName())
		}
		out[i] = f
	}
	return thicket.Vector3{X: out[0], Y: out[1], Z: out[2]}, nil
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
