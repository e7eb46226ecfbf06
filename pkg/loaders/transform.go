package loaders

import (
	"encoding/json"
	"fmt"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// transformJSON is a single transform element. Exactly one of the keys is
// honored, checked in the order translate, rotate, scale, from, matrix.
type transformJSON struct {
	Translate json.RawMessage `json:"translate"`
	Rotate    json.RawMessage `json:"rotate"`
	Scale     json.RawMessage `json:"scale"`
	From      json.RawMessage `json:"from"`
	At        json.RawMessage `json:"at"`
	Up        json.RawMessage `json:"up"`
	Matrix    json.RawMessage `json:"matrix"`
}

// ParseTransform decodes a transform value: either one element object or an
// array of them. In an array each element is applied after the ones before
// it, so [{"scale":...}, {"translate":...}] scales first.
func ParseTransform(raw json.RawMessage, path string) (core.Transform, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err == nil {
		result := core.IdentityTransform()
		for i, element := range elements {
			t, err := parseTransformElement(element, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return core.Transform{}, err
			}
			result = t.Compose(result)
		}
		return result, nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return core.Transform{}, &ParseError{Path: path, Msg: "transformation must be an object or array", Err: err}
	}
	return parseTransformElement(raw, path)
}

func parseTransformElement(raw json.RawMessage, path string) (core.Transform, error) {
	var tj transformJSON
	if err := json.Unmarshal(raw, &tj); err != nil {
		return core.Transform{}, &ParseError{Path: path, Msg: "transformation must be an object", Err: err}
	}

	switch {
	case !isAbsent(tj.Translate):
		v, err := parseVec3(tj.Translate, path+".translate")
		if err != nil {
			return core.Transform{}, err
		}
		return core.Translate(v), nil

	case !isAbsent(tj.Rotate):
		v, err := parseFloats(tj.Rotate, 4, path+".rotate")
		if err != nil {
			return core.Transform{}, err
		}
		axis := core.NewVec3(v[1], v[2], v[3])
		if axis.LengthSquared() == 0 {
			return core.Transform{}, parseErrorf(path+".rotate", "rotation axis must be non-zero")
		}
		return core.Rotate(axis, v[0]), nil

	case !isAbsent(tj.Scale):
		v, err := parseVec3(tj.Scale, path+".scale")
		if err != nil {
			return core.Transform{}, err
		}
		return newTransform(core.Scaling(v), path+".scale")

	case !isAbsent(tj.From):
		from, err := parseVec3(tj.From, path+".from")
		if err != nil {
			return core.Transform{}, err
		}
		at, err := optionalVec3(tj.At, core.NewVec3(0, 0, 0), path+".at")
		if err != nil {
			return core.Transform{}, err
		}
		up, err := optionalVec3(tj.Up, core.NewVec3(0, 1, 0), path+".up")
		if err != nil {
			return core.Transform{}, err
		}
		if from.Subtract(at).LengthSquared() == 0 {
			return core.Transform{}, parseErrorf(path, "from and at must differ")
		}
		if up.Cross(from.Subtract(at)).LengthSquared() == 0 {
			return core.Transform{}, parseErrorf(path+".up", "up must not be parallel to the view direction")
		}
		return core.LookAtTransform(from, at, up), nil

	case !isAbsent(tj.Matrix):
		v, err := parseFloats(tj.Matrix, 16, path+".matrix")
		if err != nil {
			return core.Transform{}, err
		}
		var m core.Mat4
		for i := 0; i < 4; i++ {
			copy(m[i][:], v[i*4:i*4+4])
		}
		return newTransform(m, path+".matrix")

	default:
		return core.Transform{}, parseErrorf(path, "unrecognized transformation")
	}
}

// newTransform inverts m, reporting singular matrices as parse errors
func newTransform(m core.Mat4, path string) (core.Transform, error) {
	t, err := core.NewTransform(m)
	if err != nil {
		return core.Transform{}, &ParseError{Path: path, Msg: "transformation is not invertible", Err: err}
	}
	return t, nil
}
