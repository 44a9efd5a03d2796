// Package physics provides the simulation models behind the physics
// visualizers.
//
// Stepped models implement [Model] and are advanced once per tick by a fixed
// timestep; each tick depends on the previous tick's state:
//
//   - [Collisions]: rigid discs with gravity, wall reflection and pairwise
//     elastic collisions
//   - [GasBox]: ideal-gas particles reflecting off the container walls
//   - [Projectile]: launch under gravity with optional linear drag
//   - [String]: finite-difference vibrating string
//   - [WaveAnimation]: a [Superposition] on a clock, for playback
//
// Sampled models are pure functions of their parameters and the sample
// point, so a frame never depends on the previous frame:
//
//   - [Field]: Coulomb superposition and field-line tracing
//   - [Superposition]: circular wave sources summed at a point
//   - [Photoelectric]: photon frequency against a work function
//
// Most models also implement [dynamo.Configurable] for runtime parameter
// adjustment.
//
// # Units
//
// Models use consistent but unscaled units. Mapping to pixels, colours or
// human-scale speeds belongs to the render layer.
package physics
