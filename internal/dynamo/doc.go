// Package dynamo provides the numeric primitives shared by the physics models.
//
// The package defines the small vocabulary every model speaks:
//
//   - [State]: flat vector state for ODE-style models ([pos..., vel...] layout)
//   - [Vec2]: 2D vector used by particle, field and wave models
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical stepper over a [System]
//   - [Configurable]: runtime parameter access for the host layer
//
// # Example
//
//	proj := physics.NewProjectile(physics.DefaultProjectileParams())
//	integ := integrators.NewRK4()
//	x := integ.Step(proj, proj.DefaultState(), 0, 0.01)
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent mutation. Models are owned by
// exactly one playback controller at a time.
package dynamo
