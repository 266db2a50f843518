// Package codec implements the deep-copy used by the CopyOnTransition
// policy. Values travel through encoding/gob, so anything a machine carries
// under that policy must be gob-encodable.
package codec

import (
	"bytes"
	"encoding/gob"
)

func init() {
	// Concrete types commonly carried as machine data. Callers with their
	// own types use RegisterType.
	gob.Register(map[string]any{})
	gob.Register([]any{})
	gob.Register([]string{})
	gob.Register([]int{})
	gob.Register([]float64{})
}

// RegisterType records a concrete type with gob so values of that type can be
// deep-copied when carried as machine data. It is a thin wrapper over
// gob.Register.
func RegisterType(v any) {
	gob.Register(v)
}

// Clone returns a deep copy of v via a gob round trip. A nil input clones to
// nil.
func Clone(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	// Encode as interface{} so the copy decodes back into interface{}.
	iv := v
	if err := gob.NewEncoder(&buf).Encode(&iv); err != nil {
		return nil, err
	}

	var out any
	if err := gob.NewDecoder(&buf).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
