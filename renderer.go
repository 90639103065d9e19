package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Common colors used in rendering
var (
	colorWhite     = color.RGBA{255, 255, 255, 255}
	colorGray      = color.RGBA{180, 180, 180, 255}
	colorDimGray   = color.RGBA{110, 110, 110, 255}
	colorYellow    = color.RGBA{255, 255, 100, 255}
	colorCyan      = color.RGBA{100, 255, 255, 255}
	colorLightBlue = color.RGBA{200, 200, 255, 255}
	colorGreen     = color.RGBA{100, 255, 100, 255}
	colorOrange    = color.RGBA{255, 200, 100, 255}
	colorLightRed  = color.RGBA{255, 150, 150, 255}
	colorFavorite  = color.RGBA{230, 40, 60, 255}
	colorAccent    = color.RGBA{49, 77, 140, 178} // premultiplied, 70% opaque

	// Background colors for semi-transparent overlays
	bgColorLight  = color.RGBA{0, 0, 0, 128}
	bgColorMedium = color.RGBA{0, 0, 0, 160}
	bgColorDark   = color.RGBA{0, 0, 0, 200}
	bgColorBar    = color.RGBA{0, 0, 0, 178}
)

const (
	// Swipe indicators appear once the swipe passes this fraction
	swipeIndicatorMin  = 0.05
	swipeIndicatorSize = 48.0
	minHelpFontSizePx  = 12.0
)

// Renderer draws the viewer from RenderState and the Animator only
type Renderer struct {
	renderState    RenderState
	helpFontSource *text.GoTextFaceSource
	lastSnapshot   *RenderStateSnapshot // Previous frame's state for comparison
}

// NewRenderer creates a new Renderer; InitGraphics must have run
func NewRenderer(renderState RenderState) *Renderer {
	if globalFontSource == nil {
		if err := InitGraphics(); err != nil {
			log.Fatal(err)
		}
	}
	return &Renderer{
		renderState:    renderState,
		helpFontSource: globalFontSource,
	}
}

func (r *Renderer) face(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: r.helpFontSource, Size: size}
}

// NeedsRedraw reports whether the non-input state changed since the last call
func (r *Renderer) NeedsRedraw(windowWidth, windowHeight int) bool {
	snapshot := NewRenderStateSnapshot(r.renderState, windowWidth, windowHeight)
	changed := !snapshot.Equals(r.lastSnapshot)
	r.lastSnapshot = snapshot
	return changed
}

// Draw renders the entire screen
func (r *Renderer) Draw(screen *ebiten.Image) {
	// Clear the screen since SetScreenClearedEveryFrame(false) is enabled
	screen.Clear()

	idx, photo, ok := r.renderState.GetCurrentPhoto()
	if !ok {
		return
	}

	vp := Viewport{Width: float64(screen.Bounds().Dx()), Height: float64(screen.Bounds().Dy())}
	state := r.renderState.GetViewerState()
	anim := r.renderState.GetAnimator()

	r.drawAdjacentPhotos(screen, vp, state, anim)
	r.drawCurrentPhoto(screen, vp, photo, anim)
	r.drawSwipeIndicators(screen, vp, idx, state)

	if anim.ControlsAlpha > 0 {
		r.drawControls(screen, vp, idx, photo, state, anim.ControlsAlpha)
	}

	if r.renderState.IsShowingInfo() {
		r.drawInfoDisplay(screen, idx, photo)
	}

	if r.renderState.IsShowingInstructions() {
		r.drawInstructions(screen, vp)
	}

	if r.renderState.IsShowingHelp() {
		r.drawHelpOverlay(screen)
	}

	if isOverlayActive(r.renderState.GetOverlayMessage(), r.renderState.GetOverlayMessageTime()) {
		r.drawOverlayMessage(screen)
	}
}

// photoTransform fits a photo of iw x ih into the viewport, scales it about
// the viewport center and then translates it by (tx, ty)
func photoTransform(iw, ih float64, vp Viewport, scale, tx, ty float64) ebiten.GeoM {
	var geoM ebiten.GeoM
	if iw <= 0 || ih <= 0 {
		return geoM
	}
	fit := math.Min(vp.Width/iw, vp.Height/ih)
	geoM.Translate(-iw/2, -ih/2)
	geoM.Scale(fit*scale, fit*scale)
	geoM.Translate(vp.Width/2+tx, vp.Height/2+ty)
	return geoM
}

// photoTranslationX is the horizontal shift of the current photo: the pan
// when zoomed, the swipe otherwise
func photoTranslationX(vp Viewport, anim *Animator) float64 {
	if anim.Scale.Value > minScale {
		return anim.OffsetX.Value
	}
	return anim.DragProgress.Value * vp.Width
}

func (r *Renderer) drawPhoto(screen, img *ebiten.Image, vp Viewport, scale, tx, ty float64) {
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM = photoTransform(float64(img.Bounds().Dx()), float64(img.Bounds().Dy()), vp, scale, tx, ty)
	screen.DrawImage(img, op)
}

func (r *Renderer) drawCurrentPhoto(screen *ebiten.Image, vp Viewport, photo Photo, anim *Animator) {
	img := r.renderState.GetPhotoImage(photo.URL)
	r.drawPhoto(screen, img, vp, anim.Scale.Value, photoTranslationX(vp, anim), anim.OffsetY.Value)
}

// drawAdjacentPhotos slides the neighbour in from the side the swipe reveals
func (r *Renderer) drawAdjacentPhotos(screen *ebiten.Image, vp Viewport, state ViewerState, anim *Animator) {
	shift := anim.DragProgress.Value * vp.Width

	if state.SwipeProgress > 0 {
		if prev, ok := r.renderState.GetAdjacentPhoto(-1); ok {
			r.drawPhoto(screen, r.renderState.GetPhotoImage(prev.URL), vp, minScale, -vp.Width+shift, 0)
		}
	}
	if state.SwipeProgress < 0 {
		if next, ok := r.renderState.GetAdjacentPhoto(1); ok {
			r.drawPhoto(screen, r.renderState.GetPhotoImage(next.URL), vp, minScale, vp.Width+shift, 0)
		}
	}
}

// swipeIndicatorAlpha is the opacity of the arrow for a swipe, 0 when hidden
func swipeIndicatorAlpha(swipe float64) float64 {
	if math.Abs(swipe) <= swipeIndicatorMin {
		return 0
	}
	return math.Min(1, math.Abs(swipe)*2)
}

func (r *Renderer) drawSwipeIndicators(screen *ebiten.Image, vp Viewport, idx int, state ViewerState) {
	alpha := swipeIndicatorAlpha(state.SwipeProgress)
	if alpha == 0 {
		return
	}

	count := r.renderState.GetTotalPhotosCount()
	pointLeft := state.SwipeProgress > 0
	if pointLeft && idx <= 0 {
		return
	}
	if !pointLeft && idx >= count-1 {
		return
	}

	const inset = 20.0
	radius := swipeIndicatorSize / 2
	cx := inset + radius
	if !pointLeft {
		cx = vp.Width - inset - radius
	}
	cy := vp.Height / 2

	DrawDisc(screen, cx, cy, radius, fadeColor(colorAccent, alpha))
	DrawChevron(screen, cx, cy, radius, pointLeft, fadeColor(colorWhite, alpha))
}

func (r *Renderer) drawControls(screen *ebiten.Image, vp Viewport, idx int, photo Photo, state ViewerState, alpha float64) {
	count := r.renderState.GetTotalPhotosCount()
	barFont := r.face(r.renderState.GetFontSize())

	// Top bar: back, title, delete, favorite, zoom
	DrawFilledRect(screen, 0, 0, vp.Width, topBarHeight, fadeColor(bgColorBar, alpha))
	// Bottom bar: previous, counter, next
	DrawFilledRect(screen, 0, vp.Height-bottomBarHeight, vp.Width, bottomBarHeight, fadeColor(bgColorBar, alpha))

	for _, b := range overlayButtons(vp) {
		enabled := buttonEnabled(b.Button, idx, count)
		fg := colorWhite
		if !enabled {
			fg = colorDimGray
		}
		cx, cy := b.X+b.W/2, b.Y+b.H/2

		switch b.Button {
		case buttonClose:
			DrawCenteredText(screen, "←", barFont, cx, cy, fadeColor(fg, alpha))
		case buttonDelete:
			DrawCenteredText(screen, "×", barFont, cx, cy, fadeColor(fg, alpha))
		case buttonFavorite:
			heart := fg
			if photo.Favorite {
				heart = colorFavorite
			}
			DrawCenteredText(screen, "♥", barFont, cx, cy, fadeColor(heart, alpha))
		case buttonZoom:
			label := "+"
			if state.IsZoomed() {
				label = "−"
			}
			DrawCenteredText(screen, label, barFont, cx, cy, fadeColor(fg, alpha))
		case buttonPrevious, buttonNext:
			DrawFrame(screen, b.X, b.Y, b.W, b.H, 2, fadeColor(fg, alpha))
			label := "← Previous"
			if b.Button == buttonNext {
				label = "Next →"
			}
			DrawCenteredText(screen, label, barFont, cx, cy, fadeColor(fg, alpha))
		}
	}

	title := truncateToWidth(photo.Title, barFont, vp.Width-2*(3*(buttonSize+buttonMargin)+buttonMargin))
	DrawCenteredText(screen, title, barFont, vp.Width/2, topBarHeight/2, fadeColor(colorWhite, alpha))

	counter := fmt.Sprintf("%d / %d", idx+1, count)
	DrawCenteredText(screen, counter, barFont, vp.Width/2, vp.Height-bottomBarHeight/2, fadeColor(colorWhite, alpha))
}

// truncateToWidth shortens s with an ellipsis until it fits maxWidth
func truncateToWidth(s string, face *text.GoTextFace, maxWidth float64) string {
	if maxWidth <= 0 {
		return ""
	}
	if w, _ := text.Measure(s, face, 0); w <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if w, _ := text.Measure(candidate, face, 0); w <= maxWidth {
			return candidate
		}
	}
	return ""
}

// instructionLines is the first-use gesture help
var instructionLines = []string{
	"Swipe left/right to navigate",
	"Pinch or scroll to zoom in/out",
	"Double-tap to toggle zoom",
	"Tap to toggle controls",
}

func (r *Renderer) drawInstructions(screen *ebiten.Image, vp Viewport) {
	fontSize := r.renderState.GetFontSize()
	titleFont := r.face(fontSize * 1.2)
	bodyFont := r.face(fontSize)
	lineHeight := fontSize * 1.8

	DrawFilledRect(screen, 0, 0, vp.Width, vp.Height, bgColorDark)

	totalHeight := lineHeight * float64(len(instructionLines)+3)
	y := vp.Height/2 - totalHeight/2

	DrawCenteredText(screen, "Gesture Controls", titleFont, vp.Width/2, y, colorWhite)
	y += lineHeight * 1.5
	for _, line := range instructionLines {
		DrawCenteredText(screen, line, bodyFont, vp.Width/2, y, colorLightBlue)
		y += lineHeight
	}
	y += lineHeight / 2
	DrawCenteredText(screen, "Tap anywhere to dismiss", bodyFont, vp.Width/2, y, colorGray)
}

// helpRow is one line of the help overlay
type helpRow struct {
	action      string
	keys        string
	gestures    string
	description string
}

// helpRows returns the bound actions in name order
func (r *Renderer) helpRows() []helpRow {
	keybindings := r.renderState.GetKeybindings()
	gestureBindings := r.renderState.GetGestureBindings()
	descriptions := GetActionDescriptions()

	actionSet := make(map[string]bool)
	for action := range keybindings {
		actionSet[action] = true
	}
	for action := range gestureBindings {
		actionSet[action] = true
	}

	actions := make([]string, 0, len(actionSet))
	for action := range actionSet {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	rows := make([]helpRow, 0, len(actions))
	for _, action := range actions {
		keys := keybindings[action]
		gestures := gestureBindings[action]
		if len(keys) == 0 && len(gestures) == 0 {
			continue
		}
		description := descriptions[action]
		if description == "" {
			description = "No description available"
		}
		rows = append(rows, helpRow{
			action:      action,
			keys:        strings.Join(keys, ", "),
			gestures:    strings.Join(gestures, ", "),
			description: description,
		})
	}
	return rows
}

func (row helpRow) input() string {
	switch {
	case row.keys != "" && row.gestures != "":
		return row.keys + " | " + row.gestures
	case row.keys != "":
		return row.keys
	default:
		return row.gestures
	}
}

// configWarningLines returns at most two shortened warnings
func configWarningLines(status ConfigLoadResult) []string {
	var lines []string
	for i, warning := range status.Warnings {
		if i >= 2 {
			break
		}
		if len(warning) > 50 {
			warning = warning[:47] + "..."
		}
		lines = append(lines, "• "+warning)
	}
	return lines
}

// helpColumns are the x offsets of the help table relative to the left padding
type helpColumns struct {
	action, arrow, input, desc, width float64
}

func measureHelpColumns(rows []helpRow, face *text.GoTextFace) helpColumns {
	var maxAction, maxInput, maxDesc float64
	for _, row := range rows {
		if w, _ := text.Measure(row.action, face, 0); w > maxAction {
			maxAction = w
		}
		if w, _ := text.Measure(row.input(), face, 0); w > maxInput {
			maxInput = w
		}
		if w, _ := text.Measure(row.description, face, 0); w > maxDesc {
			maxDesc = w
		}
	}
	c := helpColumns{action: 40}
	c.arrow = c.action + maxAction + 20
	c.input = c.arrow + 30
	c.desc = c.input + maxInput + 20
	c.width = c.desc + maxDesc
	return c
}

// calculateRequiredDimensions returns the size the help content needs at fontSize
func (r *Renderer) calculateRequiredDimensions(fontSize float64) (float64, float64) {
	rows := r.helpRows()
	configStatus := r.renderState.GetConfigStatus()
	face := r.face(fontSize)

	padding := 40.0
	lineHeight := fontSize * 1.5

	height := padding * 2
	height += fontSize * 2     // Title
	height += lineHeight * 1.5 // Controls title
	height += float64(len(rows)) * lineHeight
	height += lineHeight * 3 // Spacing, "System:" and the config status line
	height += float64(len(configWarningLines(configStatus))) * lineHeight

	width := measureHelpColumns(rows, face).width + padding*2
	for _, line := range append([]string{"Controls (Keyboard | Gesture):", fmt.Sprintf("Config Status: %s", configStatus.Status)},
		configWarningLines(configStatus)...) {
		if w, _ := text.Measure(line, face, 0); w+padding*2+80 > width {
			width = w + padding*2 + 80
		}
	}

	return width, height
}

// calculateOptimalFontSize finds the largest font size that fits within the given dimensions
func (r *Renderer) calculateOptimalFontSize(availableWidth, availableHeight float64) (float64, bool) {
	maxFontSize := r.renderState.GetFontSize()
	minFontSize := minHelpFontSizePx

	minWidth, minHeight := r.calculateRequiredDimensions(minFontSize)
	if minWidth > availableWidth || minHeight > availableHeight {
		return minFontSize, false
	}

	maxWidth, maxHeight := r.calculateRequiredDimensions(maxFontSize)
	if maxWidth <= availableWidth && maxHeight <= availableHeight {
		return maxFontSize, true
	}

	// Binary search for optimal font size
	low, high := minFontSize, maxFontSize
	bestSize := minFontSize
	for high-low > 0.5 {
		mid := (low + high) / 2.0
		reqWidth, reqHeight := r.calculateRequiredDimensions(mid)
		if reqWidth <= availableWidth && reqHeight <= availableHeight {
			bestSize = mid
			low = mid
		} else {
			high = mid
		}
	}

	return bestSize, true
}

func (r *Renderer) drawHelpOverlay(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())

	padding := 40.0
	fontSize, canFit := r.calculateOptimalFontSize(w-padding*2, h-padding*2)
	if !canFit {
		r.drawMarginTooSmallMessage(screen)
		return
	}

	rows := r.helpRows()
	configStatus := r.renderState.GetConfigStatus()
	helpFont := r.face(fontSize)
	lineHeight := fontSize * 1.5

	DrawFilledRect(screen, 0, 0, w, h, bgColorLight)
	DrawFilledRect(screen, padding, padding, w-padding*2, h-padding*2, bgColorMedium)

	titleY := padding + 30
	DrawText(screen, "HELP:", helpFont, padding+20, titleY, colorWhite)

	currentY := titleY + fontSize*2
	DrawText(screen, "Controls (Keyboard | Gesture):", helpFont, padding+20, currentY, colorWhite)
	currentY += lineHeight * 1.5

	cols := measureHelpColumns(rows, helpFont)
	for _, row := range rows {
		DrawText(screen, row.action, helpFont, padding+cols.action, currentY, colorLightBlue)
		DrawText(screen, "→", helpFont, padding+cols.arrow, currentY, colorWhite)

		x := padding + cols.input
		if row.keys != "" {
			DrawText(screen, row.keys, helpFont, x, currentY, colorYellow)
			kw, _ := text.Measure(row.keys, helpFont, 0)
			x += kw
		}
		if row.keys != "" && row.gestures != "" {
			DrawText(screen, " | ", helpFont, x, currentY, colorWhite)
			sw, _ := text.Measure(" | ", helpFont, 0)
			x += sw
		}
		if row.gestures != "" {
			DrawText(screen, row.gestures, helpFont, x, currentY, colorCyan)
		}

		DrawText(screen, row.description, helpFont, padding+cols.desc, currentY, colorGray)
		currentY += lineHeight
	}

	currentY += lineHeight
	DrawText(screen, "System:", helpFont, padding+20, currentY, colorWhite)
	currentY += lineHeight

	statusColor := colorGreen
	if configStatus.Status == "Warning" || configStatus.Status == "Error" {
		statusColor = colorOrange
	}
	DrawText(screen, fmt.Sprintf("Config Status: %s", configStatus.Status), helpFont, padding+40, currentY, statusColor)
	currentY += lineHeight

	for _, line := range configWarningLines(configStatus) {
		DrawText(screen, line, helpFont, padding+40, currentY, colorLightRed)
		currentY += lineHeight
	}
}

// drawMarginTooSmallMessage displays Fermat's margin joke when help cannot fit
func (r *Renderer) drawMarginTooSmallMessage(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())

	DrawFilledRect(screen, 0, 0, w, h, bgColorLight)

	jokeFont := r.face(16.0)
	message := "Hanc marginis exiguitas non caperet."
	subtitle := "(This margin is too small to contain it.)"

	_, messageHeight := text.Measure(message, jokeFont, 0)
	DrawCenteredText(screen, message, jokeFont, w/2, h/2, colorWhite)
	DrawCenteredText(screen, subtitle, jokeFont, w/2, h/2+messageHeight+10, colorGray)
}

// infoLines builds the info panel text for a photo
func infoLines(idx, count, favorites int, photo Photo, info PhotoInfo, infoErr error) []string {
	lines := []string{
		photo.Title,
		fmt.Sprintf("%d / %d", idx+1, count),
	}
	if infoErr != nil {
		lines = append(lines, "Info unavailable: "+infoErr.Error())
	} else {
		lines = append(lines, fmt.Sprintf("%dx%d %s, %d KB", info.Width, info.Height, info.Format, info.Bytes/1024))
		keys := make([]string, 0, len(info.EXIFData))
		for k := range info.EXIFData {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			lines = append(lines, k+": "+info.EXIFData[k])
		}
	}
	if photo.Favorite {
		lines = append(lines, "♥ Favorite")
	}
	lines = append(lines, fmt.Sprintf("Favorites: %d", favorites))
	return lines
}

func (r *Renderer) drawInfoDisplay(screen *ebiten.Image, idx int, photo Photo) {
	infoFont := r.face(r.renderState.GetFontSize())
	info, err := r.renderState.GetPhotoInfo()
	lines := infoLines(idx, r.renderState.GetTotalPhotosCount(), r.renderState.GetFavoriteCount(), photo, info, err)

	lineHeight := r.renderState.GetFontSize() * 1.4
	maxWidth := 0.0
	for _, line := range lines {
		if w, _ := text.Measure(line, infoFont, 0); w > maxWidth {
			maxWidth = w
		}
	}

	// Below the top bar, left aligned
	padding := 10.0
	x := padding
	y := topBarHeight + padding
	DrawFilledRect(screen, x-5, y-5, maxWidth+10, lineHeight*float64(len(lines))+10, bgColorLight)
	for _, line := range lines {
		DrawText(screen, line, infoFont, x, y, colorWhite)
		y += lineHeight
	}
}

func (r *Renderer) drawOverlayMessage(screen *ebiten.Image) {
	messageFont := r.face(r.renderState.GetFontSize())
	message := r.renderState.GetOverlayMessage()

	textWidth, textHeight := text.Measure(message, messageFont, 0)

	padding := 20.0
	boxWidth := textWidth + padding*2
	boxHeight := textHeight + padding*2
	boxX := (float64(screen.Bounds().Dx()) - boxWidth) / 2
	boxY := (float64(screen.Bounds().Dy()) - boxHeight) / 2

	DrawFilledRect(screen, boxX, boxY, boxWidth, boxHeight, bgColorDark)
	DrawText(screen, message, messageFont, boxX+padding, boxY+padding, colorWhite)
}

// overlayMessageExpired reports whether a message shown at shownAt is gone at now
func overlayMessageExpired(shownAt, now time.Time) bool {
	return now.Sub(shownAt) >= overlayMessageDuration
}
