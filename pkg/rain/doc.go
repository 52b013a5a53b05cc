// Package rain animates lines of text as falling trails on a character grid.
//
// Each submitted line becomes a trail that drops one row per tick down a
// single column. Behind its head the trail fades through a fixed gradient of
// 28 palette colours (see [Gradient]); once the dimmest character has passed,
// the cell it leaves behind is blanked and the trail is removed.
//
// # Engine
//
// An [Engine] owns the screen grid and the set of active trails:
//
//	e, err := rain.New(rain.Options{
//	    Width:    80,
//	    Height:   24,
//	    Renderer: terminal.NewRenderer(os.Stdout),
//	})
//	if err != nil {
//	    return err
//	}
//	e.Start()
//	defer e.Stop()
//
//	e.Submit("hello, world")
//	e.AwaitIdle(ctx)
//
// Every tick the engine computes the cells that changed and hands them to
// its [Renderer] in one batch. Cells that already show the wanted glyph and
// colour are skipped; a space matches any colour.
//
// # Placement
//
// [Allocate] chooses the column for a new line. It prefers columns whose
// neighbours are idle, then any idle column, and when every column is busy
// it picks the one whose trail sits closest to two thirds of the way down.
// Ties are broken with an injected [Rand], so placement is reproducible
// under a seeded source.
//
// # Failures
//
// A tick that fails, whether by a renderer error or a panic, is dropped and
// reported to [observability.EngineHooks.OnTickError]. The ticker keeps
// running.
package rain
