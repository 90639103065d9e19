package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Longest animation step per tick; a stalled frame must not fling the springs
const maxFrameDelta = 100 * time.Millisecond

// Game hosts one viewer session inside the Ebiten loop
type Game struct {
	config       Config
	configResult ConfigLoadResult

	store        *PhotoStore
	viewer       *Viewer
	recognizer   *GestureRecognizer
	poller       *pointerPoller
	animator     *Animator
	imageManager ImageManager
	renderer     *Renderer

	keybindingManager *KeybindingManager
	inputHandler      *InputHandler

	fullscreen bool
	savedWinW  int
	savedWinH  int

	showHelp           bool
	showInfo           bool
	overlayMessage     string
	overlayMessageTime time.Time

	screenW, screenH int
	lastTick         time.Time
	closing          bool
	needsRedraw      bool

	clock func() time.Time
}

// NewGame wires a game around an already collected photo store
func NewGame(store *PhotoStore, sources []PhotoSource, configResult ConfigLoadResult) *Game {
	config := configResult.Config

	g := &Game{
		config:       config,
		configResult: configResult,
		store:        store,
		recognizer:   NewGestureRecognizer(config.Pointer),
		poller:       &pointerPoller{settings: config.Pointer},
		animator:     NewAnimator(NewViewerState()),
		fullscreen:   config.Fullscreen,
		screenW:      config.WindowWidth,
		screenH:      config.WindowHeight,
		needsRedraw:  true,
		clock:        time.Now,
	}

	imageManager := NewImageManager(store, config.CacheSize, config.PreloadCount, config.PreloadEnabled)
	imageManager.SetSources(sources)
	g.imageManager = imageManager

	g.keybindingManager = NewKeybindingManager(config.Keybindings)
	g.inputHandler = NewInputHandler(g, g, g.keybindingManager)
	g.renderer = NewRenderer(g)

	return g
}

// Open starts the viewer session at startIndex
func (g *Game) Open(startIndex int) error {
	now := g.clock()
	g.lastTick = now

	viewer, err := OpenViewer(g.store, startIndex, g, now, ViewerOptions{
		Viewport:         g.viewport(),
		ShowInstructions: g.config.ShowInstructions,
		OnIndexChange:    g.onIndexChange,
	})
	if err != nil {
		return err
	}
	g.viewer = viewer

	idx, _, _ := g.store.Current()
	g.imageManager.StartPreload(idx, NavigationJump)
	return nil
}

func (g *Game) viewport() Viewport {
	return Viewport{Width: float64(g.screenW), Height: float64(g.screenH)}
}

// CloseViewer is called by the viewer when the session ends
func (g *Game) CloseViewer() {
	g.closing = true
}

func (g *Game) onIndexChange(index int, direction NavigationDirection) {
	g.animator.Handoff(g.viewer.State(), direction)
	g.imageManager.StartPreload(index, direction)
	g.needsRedraw = true
}

func (g *Game) saveCurrentWindowSize() {
	if g.fullscreen {
		// Save the size from before fullscreen
		if g.savedWinW > 0 && g.savedWinH > 0 {
			g.config.WindowWidth = g.savedWinW
			g.config.WindowHeight = g.savedWinH
		}
	} else {
		w, h := ebiten.WindowSize()
		g.config.WindowWidth = w
		g.config.WindowHeight = h
	}
	g.config.Fullscreen = g.fullscreen
	saveConfig(g.config)
}

func (g *Game) shutdown() error {
	g.saveCurrentWindowSize()
	stats := g.imageManager.GetPreloadStats()
	debugLog("Preload: %d loaded, %d failed", stats.LoadedCount, stats.FailedCount)
	g.imageManager.StopPreload()
	return ebiten.Termination
}

func (g *Game) Update() error {
	if g.closing || g.viewer == nil || g.viewer.Closed() {
		return g.shutdown()
	}

	now := g.clock()
	dt := now.Sub(g.lastTick)
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	g.lastTick = now

	g.viewer.SetViewport(g.viewport())

	inputProcessed := g.inputHandler.HandleInput()

	events := g.recognizer.Process(g.poller.pollPointerFrame(), now)
	for _, ev := range events {
		g.handleGesture(ev, now)
	}

	g.viewer.Update(now)
	if g.closing {
		return g.shutdown()
	}

	state := g.viewer.State()
	g.animator.Update(state, dt, g.recognizer.Tracking())

	if g.overlayMessage != "" && overlayMessageExpired(g.overlayMessageTime, now) {
		g.overlayMessage = ""
	}

	if inputProcessed || len(events) > 0 || !g.animator.Settled(state) ||
		g.renderer.NeedsRedraw(g.screenW, g.screenH) {
		g.needsRedraw = true
	}

	return nil
}

// handleGesture routes taps on the visible overlay to its buttons and
// everything else to the viewer
func (g *Game) handleGesture(ev GestureEvent, now time.Time) {
	if g.showHelp {
		if ev.Kind == GestureTap {
			g.showHelp = false
		}
		return
	}

	if ev.Kind == GestureTap && !g.viewer.IsShowingInstructions() && g.viewer.State().ControlsVisible {
		if btn := hitOverlayButton(ev.X, ev.Y, g.viewport()); btn != buttonNone {
			g.pressButton(btn, now)
			return
		}
	}

	g.viewer.HandleGesture(ev, now)
}

func (g *Game) pressButton(btn overlayButton, now time.Time) {
	idx, _, ok := g.store.Current()
	if !ok || !buttonEnabled(btn, idx, g.store.Count()) {
		return
	}
	debugLog("Overlay button: %s", btn)

	switch btn {
	case buttonClose:
		g.Close()
		return
	case buttonDelete:
		g.DeleteCurrent()
	case buttonFavorite:
		g.ToggleFavorite()
	case buttonZoom:
		g.viewer.ToggleZoom(now)
	case buttonPrevious:
		g.viewer.Previous(now)
	case buttonNext:
		g.viewer.Next(now)
	}
	g.viewer.KeepControls(now)
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.needsRedraw {
		return
	}
	g.renderer.Draw(screen)
	g.needsRedraw = false
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenW, g.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// InputActions implementation

func (g *Game) Close() {
	g.viewer.Close()
}

func (g *Game) ToggleHelp() {
	g.showHelp = !g.showHelp
}

func (g *Game) ToggleInfo() {
	g.showInfo = !g.showInfo
}

func (g *Game) ToggleFullscreen() {
	g.fullscreen = !g.fullscreen
	if g.fullscreen {
		g.savedWinW, g.savedWinH = ebiten.WindowSize()
		ebiten.SetFullscreen(true)
	} else {
		ebiten.SetFullscreen(false)
		if g.savedWinW > 0 && g.savedWinH > 0 {
			ebiten.SetWindowSize(g.savedWinW, g.savedWinH)
		}
	}
}

func (g *Game) ToggleControls() {
	g.viewer.ToggleControls(g.clock())
}

func (g *Game) NavigateNext() {
	g.viewer.Next(g.clock())
}

func (g *Game) NavigatePrevious() {
	g.viewer.Previous(g.clock())
}

func (g *Game) JumpToPhoto(n int) {
	if n < 1 || n > g.store.Count() {
		g.ShowOverlayMessage(fmt.Sprintf("No photo %d", n))
		return
	}
	g.viewer.JumpTo(n-1, g.clock())
}

func (g *Game) ToggleFavorite() {
	g.viewer.ToggleFavorite()
	if _, photo, ok := g.store.Current(); ok {
		if photo.Favorite {
			g.ShowOverlayMessage("Added to favorites")
		} else {
			g.ShowOverlayMessage("Removed from favorites")
		}
	}
}

func (g *Game) ClearFavorites() {
	if g.store.FavoriteCount() == 0 {
		g.ShowOverlayMessage("No favorites")
		return
	}
	g.store.ClearFavorites()
	g.ShowOverlayMessage("Favorites cleared")
}

func (g *Game) DeleteCurrent() {
	_, photo, ok := g.store.Current()
	if !ok {
		return
	}
	g.viewer.DeleteCurrent(g.clock())
	if !g.closing {
		g.ShowOverlayMessage("Deleted " + photo.Title)
	}
}

func (g *Game) ToggleZoom() {
	g.viewer.ToggleZoom(g.clock())
}

func (g *Game) ShowOverlayMessage(message string) {
	g.overlayMessage = message
	g.overlayMessageTime = g.clock()
}

func (g *Game) GetTotalPhotosCount() int {
	return g.store.Count()
}

// InputState and RenderState implementation

func (g *Game) IsShowingInstructions() bool {
	return g.viewer != nil && g.viewer.IsShowingInstructions()
}

func (g *Game) IsShowingHelp() bool { return g.showHelp }
func (g *Game) IsShowingInfo() bool { return g.showInfo }
func (g *Game) IsFullscreen() bool  { return g.fullscreen }

func (g *Game) GetCurrentPhoto() (int, Photo, bool) {
	return g.store.Current()
}

func (g *Game) GetAdjacentPhoto(offset int) (Photo, bool) {
	idx, _, ok := g.store.Current()
	if !ok {
		return Photo{}, false
	}
	return g.store.PhotoAt(idx + offset)
}

func (g *Game) GetPhotoImage(url string) *ebiten.Image {
	return g.imageManager.GetImage(url)
}

func (g *Game) GetPhotoInfo() (PhotoInfo, error) {
	_, photo, ok := g.store.Current()
	if !ok {
		return PhotoInfo{}, ErrEmptyCollection
	}
	return g.imageManager.GetPhotoInfo(photo.URL)
}

func (g *Game) GetFavoriteCount() int {
	return g.store.FavoriteCount()
}

func (g *Game) GetViewerState() ViewerState {
	if g.viewer == nil {
		return NewViewerState()
	}
	return g.viewer.State()
}

func (g *Game) GetAnimator() *Animator                  { return g.animator }
func (g *Game) GetOverlayMessage() string               { return g.overlayMessage }
func (g *Game) GetOverlayMessageTime() time.Time        { return g.overlayMessageTime }
func (g *Game) GetFontSize() float64                    { return g.config.HelpFontSize }
func (g *Game) GetConfigStatus() ConfigLoadResult       { return g.configResult }
func (g *Game) GetKeybindings() map[string][]string     { return g.keybindingManager.GetKeybindings() }
func (g *Game) GetGestureBindings() map[string][]string { return GetGestureBindings() }

func main() {
	startFlag := flag.Int("start", 1, "photo to open first (1-based)")
	fullscreenFlag := flag.Bool("fullscreen", false, "start in fullscreen")
	flag.Parse()

	configResult := loadConfig()
	config := configResult.Config
	for _, warning := range configResult.Warnings {
		log.Printf("Warning: %s", warning)
	}

	photos, sources, err := collectPhotos(flag.Args(), config.SortMethod)
	if err != nil {
		log.Fatal(err)
	}
	debugLog("Collected %d photos (sort: %s)", len(photos), getSortMethodName(config.SortMethod))

	if err := InitGraphics(); err != nil {
		log.Fatal(err)
	}

	g := NewGame(NewPhotoStore(photos), sources, configResult)
	if err := g.Open(*startFlag - 1); err != nil {
		if errors.Is(err, ErrEmptyCollection) {
			log.Fatal("no photos found in the given paths")
		}
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("Photo Viewer")
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)

	if *fullscreenFlag || config.Fullscreen {
		g.fullscreen = false
		g.ToggleFullscreen()
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
