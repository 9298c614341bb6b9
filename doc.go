// Package garden is a deterministic procedural garden engine for [Ebitengine].
//
// Garden turns arbitrary input (free text, a story id, an explicit seed)
// into reproducible flower geometry, and renders declaratively configured
// parallax layers in an infinitely wrapping horizontal scene. Story markers
// ("dots") are placed deterministically against the same wrap geometry, so
// they stay visually locked to the garden while scrolling.
//
// # Quick start
//
// Load a scene configuration, build a view, and run it:
//
//	cfg, err := garden.LoadConfig(yamlData)
//	if err != nil {
//		log.Fatal(err)
//	}
//	view, err := garden.NewView(cfg, resolver, repo)
//	if err != nil {
//		log.Fatal(err)
//	}
//	garden.Run(view, garden.RunConfig{Title: "Garden", Width: 1280, Height: 720})
//
// For full control, implement [ebiten.Game] yourself and call [View.Mount],
// [View.Update], [View.Draw], and [View.Layout] directly.
//
// # Determinism
//
// Every derived structure is a pure function of its inputs. [HashString]
// turns text into a 32-bit seed, [NewRNG] turns seeds into a reproducible
// stream, and [GenerateFlower] and [PlaceDots] consume only those streams;
// no ambient randomness leaks into geometry. The same seed and viewport
// metrics always produce bit-for-bit identical flowers, layers, and dots.
//
// # Wrapping and parallax
//
// The scroll position lives in three concatenated segments; a snap of
// exactly one segment width keeps it centered while [Viewport.LocalX] stays
// continuous in [0, segmentWidth). Each layer inherits a fraction of the
// scroll given by its parallax factor: factor 1 rides the scroll 1:1
// (foreground), factor 0 stays fixed (far background). See [LayerShift].
//
// [Ebitengine]: https://ebitengine.org
package garden
