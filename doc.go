// Package nodenet renders an animated node-network background for
// [Ebitengine] hosts: a field of drifting glyph particles joined by
// proximity-based connection trails, with pointer drag interaction,
// scroll-adaptive frame skipping, and device-scale-aware surface management.
//
// # Quick start
//
// Create an animation with a layout source, initialize it, and drive it from
// your game loop:
//
//	anim, err := nodenet.New(nodenet.Config{
//		Layout: func() (w, h, scale float64) {
//			fw, fh := ebiten.WindowSize()
//			return float64(fw), float64(fh), ebiten.Monitor().DeviceScaleFactor()
//		},
//	})
//	if err != nil { ... }
//	if err := anim.Init(); err != nil { ... }
//	anim.Activate()
//
//	// Per frame:
//	anim.Tick(nowMillis)   // from Update
//	anim.Draw(screen)      // from Draw
//
// The same instance also satisfies the [Lifecycle] contract
// (Init/Mount/Activate/Pause/Destroy) for component-framework hosts.
//
// # Settings
//
// The animation consumes user preferences through [SettingsSource]:
// enable-animations gates the loop entirely, reduce-motion freezes
// continuous drift while keeping the glyph shimmer, and psychedelic
// intensity scales the palette and refresh cadence. [FileSettings] persists
// them as TOML; the animation itself never writes settings.
//
// # Notifications
//
// Canvas creation, resizes, and low-frame-rate warnings are published to a
// fire-and-forget [Bus]. Subscribe before Init to observe canvas-created.
//
// [Ebitengine]: https://ebitengine.org
package nodenet
