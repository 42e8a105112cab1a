package material

import (
	"fmt"
	"slices"
)

// Library is a registry of materials keyed by name.
//
// A Library is filled at world-setup time and read-only afterwards; it is
// not safe to Add while other goroutines Lookup.
type Library struct {
	byName map[string]*Material
}

// NewLibrary creates a Library holding ms.
func NewLibrary(ms ...*Material) (*Library, error) {
	l := &Library{byName: make(map[string]*Material, len(ms))}
	for _, m := range ms {
		if err := l.Add(m); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Add registers m under its name. Registering a second material with the
// same name is an error.
func (l *Library) Add(m *Material) error {
	if m == nil {
		return fmt.Errorf("%w: nil material", ErrInvalidMaterial)
	}
	if _, ok := l.byName[m.name]; ok {
		return fmt.Errorf("%w: %q registered twice", ErrInvalidMaterial, m.name)
	}
	l.byName[m.name] = m
	return nil
}

// Lookup returns the material registered under name.
func (l *Library) Lookup(name string) (*Material, error) {
	m, ok := l.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
	}
	return m, nil
}

// Names returns the registered names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.byName))
	for name := range l.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered materials.
func (l *Library) Len() int { return len(l.byName) }
