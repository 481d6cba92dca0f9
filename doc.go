// Package thicket is a minimal retained-mode 2D game engine for [Ebitengine].
//
// A [Scene] holds a tree of [GameObject]s. Every object owns a [Transform]
// and any number of components: sprites, colliders, rigidbodies, cameras,
// tweens and user behaviours. Each frame the scene collects the components
// of all active objects, orders them by the priority of their [Kind] in the
// scene's [OrderTable], and dispatches Start, Update and FixedUpdate. The
// active [Camera] then composites every [Drawable] into an RGBA buffer with
// per-pixel depth testing and alpha blending.
//
// # Quick start
//
//	eng := thicket.NewEngine(thicket.SceneConfig{})
//	cam := eng.Scene.NewGameObject("camera", nil)
//	thicket.MustAdd(cam, thicket.NewCamera())
//
//	box := eng.Scene.NewGameObject("box", nil)
//	thicket.MustAdd(box, thicket.NewSpriteRenderer(
//		thicket.NewRectImage(50, 50, color.NRGBA{B: 255, A: 255})))
//
//	if err := thicket.Run(eng, nil); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, drive [Engine.Tick] and [Engine.Draw] from your own
// [ebiten.Game], or wrap the engine with [NewGame].
//
// # Coordinates
//
// World and view space have +y up. Screen space has its origin at the
// top-left of the surface with +y down; view space has its origin at the
// surface centre. The camera is a pure translation: view = world - camera.
// The z coordinate is a depth: higher z draws in front.
//
// # Collision and physics
//
// [Collider] holds a convex polygon and tests overlap with the Separating
// Axis Theorem. [Rigidbody] integrates velocity and acceleration with
// explicit Euler steps and freezes while its solid collider touches
// anything.
//
// # Extras
//
// Scenes can be described in YAML (package scenefile), scripted with tengo
// (package script), and contact events can be forwarded into a [Donburi]
// world (package ecs). Camera scrolling and [Tween] use [gween].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package thicket
