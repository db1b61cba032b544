package interaction

import "github.com/montagehq/montage/internal/composition"

// Nudge distances in stage percent.
const (
	nudgeStep      = 1.0
	nudgeLargeStep = 5.0
)

// HandleKey applies keyboard editing shortcuts. Delete removes the
// current selection; arrows nudge a selected, unlocked canvas asset by
// one percent (five with the large modifier held). All of it is
// edit-mode only; the store's clamps keep nudged assets on stage.
func (e *Engine) HandleKey(key Key, large bool) {
	if e.store.Mode() != composition.ModeEdit {
		return
	}

	if key == KeyDelete {
		e.store.RemoveSelected()
		return
	}

	sel := e.store.Selected()
	if sel.Kind != composition.SelectionCanvas {
		return
	}
	asset, ok := e.store.Asset(sel.ID)
	if !ok || asset.Locked {
		return
	}

	step := nudgeStep
	if large {
		step = nudgeLargeStep
	}
	var dx, dy float64
	switch key {
	case KeyLeft:
		dx = -step
	case KeyRight:
		dx = step
	case KeyUp:
		dy = -step
	case KeyDown:
		dy = step
	default:
		return
	}
	x := asset.Transform.X + dx
	y := asset.Transform.Y + dy
	e.store.UpdateTransform(sel.ID, composition.TransformPatch{X: &x, Y: &y})
}
