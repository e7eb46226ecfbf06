package material

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

var (
	// ErrMaterialNotFound is returned when a name has no registered material
	ErrMaterialNotFound = errors.New("material not found")

	// ErrDuplicateMaterial is returned when a name is registered twice
	ErrDuplicateMaterial = errors.New("duplicate material name")
)

// Library maps names to shared materials. Materials are immutable once
// registered, so surfaces can share them freely.
type Library struct {
	materials map[string]core.Material
}

// NewLibrary creates an empty material library
func NewLibrary() *Library {
	return &Library{materials: make(map[string]core.Material)}
}

// Add registers a material under name
func (l *Library) Add(name string, mat core.Material) error {
	if _, exists := l.materials[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateMaterial, name)
	}
	l.materials[name] = mat
	return nil
}

// Find returns the material registered under name
func (l *Library) Find(name string) (core.Material, error) {
	mat, ok := l.materials[name]
	if !ok {
		return nil, fmt.Errorf("%w: no material named '%s'", ErrMaterialNotFound, name)
	}
	return mat, nil
}

// MustAdd registers a material and panics on a duplicate name.
// Intended for built-in scenes whose names are fixed at compile time.
func (l *Library) MustAdd(name string, mat core.Material) core.Material {
	if err := l.Add(name, mat); err != nil {
		panic(err)
	}
	return mat
}

// Names returns the registered names in sorted order
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.materials))
	for name := range l.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered materials
func (l *Library) Len() int {
	return len(l.materials)
}
