package main

import (
	"errors"
	"sync"
)

// ErrEmptyCollection is returned when a viewer is opened on no photos
var ErrEmptyCollection = errors.New("photo collection is empty")

// Photo is one entry of the collection
type Photo struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
	Title     string `json:"title"`
	Favorite  bool   `json:"favorite"`
}

// PhotoCollection is the host-owned ordered photo list the viewer reads live.
// The grid screen may mutate it between viewer frames.
type PhotoCollection interface {
	Photos() []Photo
	Count() int
	CurrentIndex() int
	// SetCurrentIndex ignores out of range indices
	SetCurrentIndex(idx int)
	// Current returns the index and its photo read together, ok is false when empty
	Current() (int, Photo, bool)
	PhotoAt(idx int) (Photo, bool)
	ToggleFavorite(id string)
	// DeletePhoto reports true when the collection became empty
	DeletePhoto(id string) bool
	Next()
	Previous()
}

// PhotoStore implements PhotoCollection
type PhotoStore struct {
	mu     sync.RWMutex
	photos []Photo
	index  int
}

// NewPhotoStore creates a store holding a copy of photos. Later photos
// repeating an id are dropped.
func NewPhotoStore(photos []Photo) *PhotoStore {
	ps := &PhotoStore{
		photos: make([]Photo, 0, len(photos)),
	}
	for _, p := range photos {
		if !ps.AddPhoto(p) {
			debugLog("NewPhotoStore: skipping duplicate id %s (%s)", p.ID, p.URL)
		}
	}
	return ps
}

// Photos returns a snapshot of the ordered photos
func (ps *PhotoStore) Photos() []Photo {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	result := make([]Photo, len(ps.photos))
	copy(result, ps.photos)
	return result
}

func (ps *PhotoStore) Count() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.photos)
}

// CurrentIndex returns the current index, -1 when the store is empty
func (ps *PhotoStore) CurrentIndex() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	if len(ps.photos) == 0 {
		return -1
	}
	return ps.index
}

func (ps *PhotoStore) SetCurrentIndex(idx int) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if idx < 0 || idx >= len(ps.photos) {
		return
	}
	ps.index = idx
}

func (ps *PhotoStore) Current() (int, Photo, bool) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	if len(ps.photos) == 0 {
		return -1, Photo{}, false
	}
	return ps.index, ps.photos[ps.index], true
}

func (ps *PhotoStore) PhotoAt(idx int) (Photo, bool) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	if idx < 0 || idx >= len(ps.photos) {
		return Photo{}, false
	}
	return ps.photos[idx], true
}

// indexOfUnlocked must be called with the lock held
func (ps *PhotoStore) indexOfUnlocked(id string) int {
	for i, p := range ps.photos {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (ps *PhotoStore) ToggleFavorite(id string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if i := ps.indexOfUnlocked(id); i >= 0 {
		ps.photos[i].Favorite = !ps.photos[i].Favorite
	}
}

func (ps *PhotoStore) DeletePhoto(id string) bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	i := ps.indexOfUnlocked(id)
	if i < 0 {
		return len(ps.photos) == 0
	}
	ps.photos = append(ps.photos[:i], ps.photos[i+1:]...)

	if len(ps.photos) == 0 {
		ps.index = 0
		return true
	}
	if ps.index >= len(ps.photos) {
		ps.index = len(ps.photos) - 1
	}
	return false
}

// Next moves to the following photo, wrapping to the first
func (ps *PhotoStore) Next() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if len(ps.photos) == 0 {
		return
	}
	ps.index = wrapNext(ps.index, len(ps.photos))
}

// Previous moves to the preceding photo, wrapping to the last
func (ps *PhotoStore) Previous() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if len(ps.photos) == 0 {
		return
	}
	ps.index = wrapPrevious(ps.index, len(ps.photos))
}

// AddPhoto appends a photo, ignoring one whose id is already present
func (ps *PhotoStore) AddPhoto(p Photo) bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.indexOfUnlocked(p.ID) >= 0 {
		return false
	}
	ps.photos = append(ps.photos, p)
	return true
}

// FavoriteCount returns the number of favorite photos
func (ps *PhotoStore) FavoriteCount() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	n := 0
	for _, p := range ps.photos {
		if p.Favorite {
			n++
		}
	}
	return n
}

// ClearFavorites unmarks every photo
func (ps *PhotoStore) ClearFavorites() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for i := range ps.photos {
		ps.photos[i].Favorite = false
	}
}
