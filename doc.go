// Package tinsel is the interaction core of an interactive holiday scene for
// [Ebitengine]: a camera that climbs a spiral ribbon around a tree, a photo
// galaxy the camera orbits, and a focus view for a single photo.
//
// Input comes from two sources. A hand source classifies landmark frames
// from a [Detector] into fist, open and pinch gestures. A pointer source
// emulates the same vocabulary with the mouse and touch screen. The
// [Arbiter] makes the hand authoritative while it is tracked and falls back
// to the pointer otherwise; it is the only writer of the application state.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	cfg, _ := tinsel.LoadConfig("tinsel.toml")
//	feed := tinsel.NewEbitenPointerFeed()
//	scene := tinsel.NewScene(cfg, feed, nil, nil)
//	tinsel.Run(ctx, scene, tinsel.RunConfig{Title: "Tree", Feed: feed})
//
// For full control, call [Scene.Update] once per frame and render from
// [Scene.View]:
//
//	scene.Update(dt)
//	v := scene.View()
//	sx, sy, ok := proj.WorldToScreen(v.Camera, point)
//
// # States
//
// The [Machine] moves between [StateTree], [StateGalaxy] and [StateFocus]
// on gesture edges: fist returns to the tree, open spreads the galaxy, and
// pinch toggles focus from the galaxy. A pointer double-click toggles tree
// and galaxy directly.
//
// # Camera
//
// [StepCamera] is a pure function of the previous [CameraMotion], the
// [CameraInput] for this frame and dt. [CameraController] wraps it for
// callers that prefer a stateful object. Entering the tree from another
// state holds the camera in place for [CameraConfig.TransitionDelay]
// seconds, then resumes the climb from the nearest point on the ribbon.
//
// # Configuration
//
// [LoadConfig] reads TOML and applies TINSEL_* environment overrides. Every
// section has a Default constructor.
//
// # Testing without a window
//
// [Scene.Inject] returns a [ScriptedPointerFeed] whose frames take priority
// over live input, and [LoadTestScript] drives it from JSON. A
// [ReplayDetector] plays back recorded landmarks in place of a camera.
//
// [Ebitengine]: https://ebitengine.org
package tinsel
