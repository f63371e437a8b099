/*
Package ecpps provides an entity-component-system (ECS) core for games and
real-time simulations.

The package decouples entity identity from the data attached to it. An entity
is nothing but an ID; data lives in per-type component stores (a dense value
array paired with a sparse entity index); behavior lives in systems that a
World drives once per frame.

Core Concepts:

  - Entity: an opaque ID representing a live identity. IDs are recycled
    after destruction.
  - Component: a plain data struct attached to at most one entity per type,
    identified by a stable registered name.
  - Store: the per-type sparse-set container mapping entities to component
    values, with O(1) amortized insert and lookup.
  - System: a behavior unit invoked every update cycle. A RenderSystem
    additionally exposes a render hook driven by the presentation pass.

Basic Usage:

	world, _ := ecpps.NewWorld()

	// Register behavior
	world.RegisterSystem(&MovementSystem{})

	// Create an entity and attach data
	player := world.CreateEntity()
	ecpps.AddComponent(world, player, Position{X: 1, Y: 2})
	ecpps.AddComponent(world, player, Velocity{Y: 1})

	// Drive the world from the host loop
	world.Update()
	world.Render()

Systems query stores directly and iterate them in dense order:

	positions, _ := ecpps.GetStore[Position](world)
	for id, pos := range positions.All() {
		pos.Y += 1
		_ = id
	}

A store is locked while it is being iterated; structural mutations against a
locked store fail fast, while the Enqueue variants defer them to the next
phase boundary. The package is single threaded: nothing in a World may be
used concurrently.
*/
package ecpps
