package main

// overlayButton identifies a button of the controls overlay
type overlayButton int

const (
	buttonNone overlayButton = iota
	buttonClose
	buttonDelete
	buttonFavorite
	buttonZoom
	buttonPrevious
	buttonNext
)

func (b overlayButton) String() string {
	switch b {
	case buttonClose:
		return "close"
	case buttonDelete:
		return "delete"
	case buttonFavorite:
		return "favorite"
	case buttonZoom:
		return "zoom"
	case buttonPrevious:
		return "previous"
	case buttonNext:
		return "next"
	default:
		return "none"
	}
}

// Overlay layout in pixels
const (
	topBarHeight    = 56.0
	bottomBarHeight = 64.0
	buttonSize      = 44.0
	buttonMargin    = 8.0
	navButtonWidth  = 150.0
	navButtonHeight = 40.0
	navButtonInset  = 24.0
)

type buttonRect struct {
	Button     overlayButton
	X, Y, W, H float64
}

func (r buttonRect) contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// overlayButtons lays out the buttons of both bars for a viewport.
// Top bar: close on the left; delete, favorite and zoom on the right.
// Bottom bar: previous and next at the edges around the counter.
func overlayButtons(vp Viewport) []buttonRect {
	topY := (topBarHeight - buttonSize) / 2
	bottomY := vp.Height - bottomBarHeight + (bottomBarHeight-navButtonHeight)/2
	rightSlot := func(n int) float64 {
		return vp.Width - float64(n)*(buttonSize+buttonMargin)
	}

	return []buttonRect{
		{buttonClose, buttonMargin, topY, buttonSize, buttonSize},
		{buttonDelete, rightSlot(3), topY, buttonSize, buttonSize},
		{buttonFavorite, rightSlot(2), topY, buttonSize, buttonSize},
		{buttonZoom, rightSlot(1), topY, buttonSize, buttonSize},
		{buttonPrevious, navButtonInset, bottomY, navButtonWidth, navButtonHeight},
		{buttonNext, vp.Width - navButtonInset - navButtonWidth, bottomY, navButtonWidth, navButtonHeight},
	}
}

// hitOverlayButton returns the button under (x, y), or buttonNone
func hitOverlayButton(x, y float64, vp Viewport) overlayButton {
	for _, r := range overlayButtons(vp) {
		if r.contains(x, y) {
			return r.Button
		}
	}
	return buttonNone
}

// buttonEnabled reports whether a button acts at index of count photos.
// The bar buttons stop at the ends like a swipe does.
func buttonEnabled(b overlayButton, index, count int) bool {
	switch b {
	case buttonPrevious:
		return index > 0
	case buttonNext:
		return index < count-1
	case buttonNone:
		return false
	default:
		return count > 0
	}
}
