// Package integrators provides fixed-step numerical steppers over a
// [dynamo.System]. Models hand one of these to their Tick method; the
// playback layer never integrates directly.
package integrators

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/allvis/internal/dynamo"
)

var ErrUnknownIntegrator = errors.New("integrators: unknown integrator")

var factories = map[string]func() dynamo.Integrator{
	"euler":  func() dynamo.Integrator { return NewEuler() },
	"rk4":    func() dynamo.Integrator { return NewRK4() },
	"verlet": func() dynamo.Integrator { return NewVerlet() },
}

// New returns a fresh integrator by name. Integrators keep scratch buffers,
// so each model gets its own instance.
func New(name string) (dynamo.Integrator, error) {
	fn, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIntegrator, name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
