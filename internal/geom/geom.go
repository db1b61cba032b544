package geom

// Stage and clip bounds. The stage is always 100x100 percent units; assets
// must keep a visible minimum footprint, and clips a minimum duration, so
// a drag can never collapse an entity into something unclickable.
const (
	StageMax        = 100.0
	MinAssetPercent = 5.0
	MinClipSeconds  = 1.0
)

// Zoom bounds for the timeline, in pixels per second of media time.
const (
	MinPixelsPerSecond     = 20.0
	MaxPixelsPerSecond     = 320.0
	DefaultPixelsPerSecond = 50.0
)

// minMarkerSpacing is the smallest on-screen gap between ruler markers that
// is still legible.
const minMarkerSpacing = 80.0

// markerSteps are the candidate ruler intervals, in seconds, smallest first.
var markerSteps = []float64{0.25, 0.5, 1, 2, 5, 10, 15, 30, 60}

// Clamp returns v limited to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampPercent limits v to the stage range [0, 100].
func ClampPercent(v float64) float64 {
	return Clamp(v, 0, StageMax)
}

// ClampOpacity limits v to [0, 1].
func ClampOpacity(v float64) float64 {
	return Clamp(v, 0, 1)
}

// ClampZoom limits a pixels-per-second zoom factor to the supported range.
func ClampZoom(pps float64) float64 {
	return Clamp(pps, MinPixelsPerSecond, MaxPixelsPerSecond)
}

// MarkerStep picks the ruler interval for the given zoom: the smallest
// candidate step whose on-screen spacing meets the legibility threshold.
// At extreme zoom-out no candidate qualifies and the largest step is used.
func MarkerStep(pixelsPerSecond float64) float64 {
	for _, step := range markerSteps {
		if step*pixelsPerSecond >= minMarkerSpacing {
			return step
		}
	}
	return markerSteps[len(markerSteps)-1]
}

// StageRect locates the stage within a render surface, in pixels.
type StageRect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// PercentX converts a pointer x coordinate to stage percent space.
func (r StageRect) PercentX(px float64) float64 {
	if r.Width <= 0 {
		return 0
	}
	return Clamp((px-r.Left)/r.Width, 0, 1) * StageMax
}

// PercentY converts a pointer y coordinate to stage percent space.
func (r StageRect) PercentY(py float64) float64 {
	if r.Height <= 0 {
		return 0
	}
	return Clamp((py-r.Top)/r.Height, 0, 1) * StageMax
}

// DeltaPercentX converts a horizontal pixel delta to a percent delta.
// Deltas are deliberately unclamped; the store clamps the resulting
// absolute position.
func (r StageRect) DeltaPercentX(dpx float64) float64 {
	if r.Width <= 0 {
		return 0
	}
	return dpx / r.Width * StageMax
}

// DeltaPercentY converts a vertical pixel delta to a percent delta.
func (r StageRect) DeltaPercentY(dpy float64) float64 {
	if r.Height <= 0 {
		return 0
	}
	return dpy / r.Height * StageMax
}

// TimeAtPixel converts a pointer x coordinate to a timeline position.
// trackAreaLeft is the pixel offset of the track area within the surface,
// scrollOffset the horizontal scroll of the timeline viewport.
func TimeAtPixel(px, trackAreaLeft, scrollOffset, pixelsPerSecond, duration float64) float64 {
	if pixelsPerSecond <= 0 {
		return 0
	}
	offset := Clamp(px-trackAreaLeft+scrollOffset, 0, duration*pixelsPerSecond)
	return offset / pixelsPerSecond
}

// PixelsAtTime converts a timeline position to a pixel offset within the
// track area. The inverse of TimeAtPixel, unclamped.
func PixelsAtTime(t, pixelsPerSecond float64) float64 {
	return t * pixelsPerSecond
}

// SecondsPerPixelDelta converts a horizontal pixel delta to seconds at the
// given zoom.
func SecondsPerPixelDelta(dpx, pixelsPerSecond float64) float64 {
	if pixelsPerSecond <= 0 {
		return 0
	}
	return dpx / pixelsPerSecond
}
