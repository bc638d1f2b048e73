package retained

import (
	"fmt"
	"image"
	"math"
	"time"
)

// ============================================================================
// Images
// ============================================================================

type animatedImage struct {
	frame animatedFrame
}

func (i *animatedImage) kind() viewKind                { return viewImage }
func (i *animatedImage) animating(now time.Time) bool { return i.frame.animating(now) }

// Image draws a raster image from a file path or inline data. While loading,
// and after a failed load, it draws nothing and reports a zero size.
type Image struct {
	Node       NodeID
	Path       string // Loaded through the asset cache's spawner
	Data       []byte // Used when Path is empty
	Transition *Timing
}

func (i *Image) ID() NodeID      { return i.Node }
func (i *Image) Timing() *Timing { return i.Transition }

func (i *Image) asset(f *Frame) Asset {
	if i.Path != "" {
		return f.Assets.Image(i.Path)
	}
	return f.Assets.ImageData(i.Data)
}

func (i *Image) SizeConstraints(_ Area, f *Frame) (Constraints, bool) {
	a := i.asset(f)
	switch a.State {
	case AssetReady:
		return Fixed(a.Size.Width, a.Size.Height), true
	case AssetFailed:
		return Fixed(0, 0), true
	default:
		return Constraints{}, false
	}
}

func (i *Image) DrawInterpolated(area Area, f *Frame, visible bool, visibleAmount float32) {
	if skipDraw(visible, visibleAmount) {
		return
	}
	a := i.asset(f)
	if a.State != AssetReady {
		return
	}
	now := f.Now
	timing := f.timing(i.Transition)

	st, ok := takeView[*animatedImage](f.Store, i.Node, viewImage)
	if !ok {
		st = &animatedImage{frame: newAnimatedFrame(area, timing)}
	} else {
		st.frame.setTiming(timing)
		st.frame.transition(area, now)
	}

	f.Scene.DrawImage(ImageRef{Key: a.Key, Image: a.Image, Opacity: opacity(visibleAmount)}, st.frame.value(now))
	f.Store.put(i.Node, st)
}

// ============================================================================
// SVG
// ============================================================================

type animatedSVG struct {
	frame animatedFrame

	// Last rasterization, reused while the drawn size is unchanged.
	raster     image.Image
	rasterSize image.Point
	rasterKey  string
}

func (s *animatedSVG) kind() viewKind                { return viewSVG }
func (s *animatedSVG) animating(now time.Time) bool { return s.frame.animating(now) }

// SVG draws a vector document rasterized at its interpolated size.
// Parse failures degrade to a blank, zero-size placeholder.
type SVG struct {
	Node       NodeID
	Path       string
	Data       []byte
	Transition *Timing
}

func (s *SVG) ID() NodeID      { return s.Node }
func (s *SVG) Timing() *Timing { return s.Transition }

func (s *SVG) asset(f *Frame) Asset {
	if s.Path != "" {
		return f.Assets.SVG(s.Path)
	}
	return f.Assets.SVGData(s.Data)
}

func (s *SVG) SizeConstraints(_ Area, f *Frame) (Constraints, bool) {
	a := s.asset(f)
	switch a.State {
	case AssetReady:
		return Fixed(a.Size.Width, a.Size.Height), true
	case AssetFailed:
		return Fixed(0, 0), true
	default:
		return Constraints{}, false
	}
}

func (s *SVG) DrawInterpolated(area Area, f *Frame, visible bool, visibleAmount float32) {
	if skipDraw(visible, visibleAmount) {
		return
	}
	a := s.asset(f)
	if a.State != AssetReady {
		return
	}
	now := f.Now
	timing := f.timing(s.Transition)

	st, ok := takeView[*animatedSVG](f.Store, s.Node, viewSVG)
	if !ok {
		st = &animatedSVG{frame: newAnimatedFrame(area, timing)}
	} else {
		st.frame.setTiming(timing)
		st.frame.transition(area, now)
	}

	drawn := st.frame.value(now)
	size := image.Pt(int(math.Ceil(float64(drawn.Width))), int(math.Ceil(float64(drawn.Height))))
	if size.X > 0 && size.Y > 0 {
		if st.raster == nil || st.rasterSize != size || st.rasterKey != a.Key {
			st.raster = rasterizeSVG(a.Icon, size.X, size.Y)
			st.rasterSize = size
			st.rasterKey = a.Key
		}
		key := fmt.Sprintf("%s@%dx%d", a.Key, size.X, size.Y)
		f.Scene.DrawImage(ImageRef{Key: key, Image: st.raster, Opacity: opacity(visibleAmount)}, drawn)
	}

	f.Store.put(s.Node, st)
}
