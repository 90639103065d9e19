package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"runtime"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const (
	errorImageWidth  = 400
	errorImageHeight = 300
)

// PhotoInfo is the metadata shown in the info overlay
type PhotoInfo struct {
	Width    int
	Height   int
	Bytes    int
	Format   string
	EXIFData map[string]string
}

// PreloadRequest represents a request to preload the neighbours of a photo
type PreloadRequest struct {
	Index     int
	Direction NavigationDirection
}

// PreloadStats provides statistics about preloading
type PreloadStats struct {
	LoadedCount   int
	FailedCount   int
	LastDirection NavigationDirection
}

// PreloadManager decodes the photos next to the displayed one in the background
type PreloadManager struct {
	requestChan  chan PreloadRequest
	ctx          context.Context
	cancel       context.CancelFunc
	imageManager *DefaultImageManager
	collection   PhotoCollection
	mu           sync.RWMutex
	stats        PreloadStats
	maxPreload   int
	enabled      bool
}

// NewPreloadManager creates a PreloadManager and starts its worker
func NewPreloadManager(imageManager *DefaultImageManager, collection PhotoCollection, maxPreload int) *PreloadManager {
	ctx, cancel := context.WithCancel(context.Background())
	pm := &PreloadManager{
		requestChan:  make(chan PreloadRequest, 16),
		ctx:          ctx,
		cancel:       cancel,
		imageManager: imageManager,
		collection:   collection,
		maxPreload:   maxPreload,
		enabled:      true,
	}

	go pm.worker()

	return pm
}

// SetEnabled enables or disables preloading
func (pm *PreloadManager) SetEnabled(enabled bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = enabled
}

// IsEnabled returns whether preloading is enabled
func (pm *PreloadManager) IsEnabled() bool {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.enabled
}

// GetStats returns current preload statistics
func (pm *PreloadManager) GetStats() PreloadStats {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.stats
}

// Stop stops the preload worker; later requests are dropped
func (pm *PreloadManager) Stop() {
	pm.SetEnabled(false)
	pm.cancel()
}

// StartPreload replaces any queued request with one for currentIdx
func (pm *PreloadManager) StartPreload(currentIdx int, direction NavigationDirection) {
	if !pm.IsEnabled() {
		return
	}

	// Only the latest position matters
drain:
	for {
		select {
		case <-pm.requestChan:
		default:
			break drain
		}
	}

	select {
	case pm.requestChan <- PreloadRequest{Index: currentIdx, Direction: direction}:
	default:
		debugLog("Preload request channel full, skipping preload request")
	}
}

func (pm *PreloadManager) worker() {
	for {
		select {
		case <-pm.ctx.Done():
			return
		case req := <-pm.requestChan:
			if pm.IsEnabled() {
				pm.processPreloadRequest(req)
			}
		}
	}
}

func (pm *PreloadManager) processPreloadRequest(req PreloadRequest) {
	pm.mu.Lock()
	pm.stats.LastDirection = req.Direction
	pm.mu.Unlock()

	count := pm.collection.Count()
	if count == 0 {
		return
	}

	for _, idx := range calculatePreloadIndices(req.Index, req.Direction, count, pm.maxPreload) {
		select {
		case <-pm.ctx.Done():
			return
		default:
		}
		photo, ok := pm.collection.PhotoAt(idx)
		if !ok {
			continue
		}
		pm.preloadPhoto(idx, photo.URL)
	}
}

// calculatePreloadIndices lists the indices to warm for a move in direction.
// Swipes do not wrap, so neither does the preload window.
func calculatePreloadIndices(currentIdx int, direction NavigationDirection, count, maxPreload int) []int {
	var indices []int
	forward := func(n int) {
		for i := 1; i <= n; i++ {
			if idx := currentIdx + i; idx < count {
				indices = append(indices, idx)
			}
		}
	}
	backward := func(n int) {
		for i := 1; i <= n; i++ {
			if idx := currentIdx - i; idx >= 0 {
				indices = append(indices, idx)
			}
		}
	}

	switch direction {
	case NavigationForward:
		forward(maxPreload)
	case NavigationBackward:
		backward(maxPreload)
	default:
		// Jumps and the first photo warm both neighbours
		half := (maxPreload + 1) / 2
		forward(half)
		backward(half)
	}

	return indices
}

func (pm *PreloadManager) preloadPhoto(idx int, url string) {
	if _, ok := pm.imageManager.cache.Get(url); ok {
		return
	}

	img, err := pm.imageManager.loadImage(url)
	if err != nil {
		pm.mu.Lock()
		pm.stats.FailedCount++
		pm.mu.Unlock()
		debugLog("Preload failed for [%d] %s: %v", idx+1, url, err)
		img = CreateErrorImage(errorImageWidth, errorImageHeight, url, err.Error())
	}

	pm.imageManager.cache.Add(url, img)

	pm.mu.Lock()
	pm.stats.LoadedCount++
	pm.mu.Unlock()

	debugLog("Preloaded [%d] %s (cache: %d items)", idx+1, url, pm.imageManager.cache.Len())
}

// ImageManager loads and caches decoded photos by URL
type ImageManager interface {
	GetImage(url string) *ebiten.Image
	GetPhotoInfo(url string) (PhotoInfo, error)
	SetSources(sources []PhotoSource)
	StartPreload(currentIdx int, direction NavigationDirection)
	StopPreload()
	GetPreloadStats() PreloadStats
}

// DefaultImageManager implements ImageManager
type DefaultImageManager struct {
	sources        map[string]PhotoSource
	cache          *lru.Cache[string, *ebiten.Image]
	infoCache      *lru.Cache[string, PhotoInfo]
	mu             sync.RWMutex
	preloadManager *PreloadManager
}

func newImageCache(cacheSize int) *lru.Cache[string, *ebiten.Image] {
	evict := func(_ string, img *ebiten.Image) {
		if img != nil {
			img.Deallocate()
		}
	}
	cache, err := lru.NewWithEvict[string, *ebiten.Image](cacheSize, evict)
	if err != nil {
		log.Printf("Error: Failed to create LRU cache of size %d: %v", cacheSize, err)
		cache, _ = lru.NewWithEvict[string, *ebiten.Image](defaultCacheSize, evict)
	}
	return cache
}

// NewImageManager creates a DefaultImageManager; the preload worker only
// runs when preloadEnabled is set
func NewImageManager(collection PhotoCollection, cacheSize, preloadCount int, preloadEnabled bool) *DefaultImageManager {
	infoCache, _ := lru.New[string, PhotoInfo](maxCacheSize)

	manager := &DefaultImageManager{
		sources:   make(map[string]PhotoSource),
		cache:     newImageCache(cacheSize),
		infoCache: infoCache,
	}

	if preloadEnabled {
		manager.preloadManager = NewPreloadManager(manager, collection, preloadCount)
	}

	return manager
}

// SetSources registers where each photo URL is read from
func (m *DefaultImageManager) SetSources(sources []PhotoSource) {
	m.mu.Lock()
	for _, src := range sources {
		m.sources[src.Path] = src
	}
	m.mu.Unlock()
	debugLog("SetSources: %d sources, cache preserved (%d items)", len(sources), m.cache.Len())
}

func (m *DefaultImageManager) source(url string) (PhotoSource, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	src, ok := m.sources[url]
	return src, ok
}

func (m *DefaultImageManager) StartPreload(currentIdx int, direction NavigationDirection) {
	if m.preloadManager != nil {
		m.preloadManager.StartPreload(currentIdx, direction)
	}
}

func (m *DefaultImageManager) StopPreload() {
	if m.preloadManager != nil {
		m.preloadManager.Stop()
	}
}

func (m *DefaultImageManager) GetPreloadStats() PreloadStats {
	if m.preloadManager != nil {
		return m.preloadManager.GetStats()
	}
	return PreloadStats{}
}

// GetImage returns the decoded photo, or an error placeholder. An empty URL
// returns nil.
func (m *DefaultImageManager) GetImage(url string) *ebiten.Image {
	if url == "" {
		return nil
	}

	if img, ok := m.cache.Get(url); ok {
		return img
	}

	img, err := m.loadImage(url)
	if err != nil {
		log.Printf("Error: Failed to load photo %s: %v", url, err)
		img = CreateErrorImage(errorImageWidth, errorImageHeight, url, err.Error())
	}
	m.cache.Add(url, img)

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	debugLog("Cache MISS: %s, loaded and cached (cache: %d items, memory: %dMB)",
		url, m.cache.Len(), mem.Alloc/1024/1024)

	return img
}

func (m *DefaultImageManager) loadImage(url string) (*ebiten.Image, error) {
	src, ok := m.source(url)
	if !ok {
		return nil, fmt.Errorf("no source registered for %s", url)
	}
	img, err := decodeSource(src)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

// GetPhotoInfo returns the dimensions and EXIF fields of a photo
func (m *DefaultImageManager) GetPhotoInfo(url string) (PhotoInfo, error) {
	if info, ok := m.infoCache.Get(url); ok {
		return info, nil
	}
	src, ok := m.source(url)
	if !ok {
		return PhotoInfo{}, fmt.Errorf("no source registered for %s", url)
	}
	info, err := readPhotoInfo(src)
	if err != nil {
		return PhotoInfo{}, err
	}
	m.infoCache.Add(url, info)
	return info, nil
}

// decodeSource reads and decodes one photo
func decodeSource(src PhotoSource) (image.Image, error) {
	data, err := readSource(src)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src.Path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", src.Path, err)
	}
	return img, nil
}

// readPhotoInfo decodes only the header and EXIF block of a photo
func readPhotoInfo(src PhotoSource) (PhotoInfo, error) {
	data, err := readSource(src)
	if err != nil {
		return PhotoInfo{}, fmt.Errorf("reading %s: %w", src.Path, err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return PhotoInfo{}, fmt.Errorf("decoding image config %s: %w", src.Path, err)
	}

	info := PhotoInfo{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Bytes:    len(data),
		Format:   format,
		EXIFData: make(map[string]string),
	}

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		// Most PNG, GIF and screenshots carry no EXIF
		return info, nil
	}

	if model, err := x.Get(exif.Model); err == nil {
		if s, err := model.StringVal(); err == nil {
			info.EXIFData["Camera Model"] = s
		}
	}
	if taken, err := x.DateTime(); err == nil {
		info.EXIFData["Taken"] = taken.Format("2006-01-02 15:04:05")
	}
	if fNum, err := x.Get(exif.FNumber); err == nil {
		if numer, denom, err := fNum.Rat2(0); err == nil && denom != 0 {
			info.EXIFData["F-Number"] = fmt.Sprintf("f/%.1f", float64(numer)/float64(denom))
		}
	}
	if expTime, err := x.Get(exif.ExposureTime); err == nil {
		if numer, denom, err := expTime.Rat2(0); err == nil {
			info.EXIFData["Exposure Time"] = fmt.Sprintf("%d/%d s", numer, denom)
		}
	}

	return info, nil
}
