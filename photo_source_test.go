package main

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func TestIsSupportedExt(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"PNG file", "test.png", true},
		{"JPG file", "test.jpg", true},
		{"JPEG file", "test.jpeg", true},
		{"WebP file", "test.webp", true},
		{"BMP file", "test.bmp", true},
		{"GIF file", "test.gif", true},
		{"JPG uppercase", "test.JPG", true},
		{"Text file", "test.txt", false},
		{"Archive", "album.zip", false},
		{"No extension", "test", false},
		{"Empty string", "", false},
		{"Multiple dots", "test.backup.jpg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := isSupportedExt(tt.path); result != tt.expected {
				t.Errorf("isSupportedExt(%s) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestIsArchiveExt(t *testing.T) {
	for path, expected := range map[string]bool{
		"a.zip": true, "a.RAR": true, "a.7z": true, "a.tar": false, "a.png": false,
	} {
		if result := isArchiveExt(path); result != expected {
			t.Errorf("isArchiveExt(%s) = %v, want %v", path, result, expected)
		}
	}
}

func touchFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to create test file %s: %v", name, err)
		}
	}
}

func writeTestZip(t *testing.T, path string, entries map[string][]byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create zip: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, data := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to add %s: %v", name, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func TestCollectSources(t *testing.T) {
	tempDir := t.TempDir()
	touchFiles(t, tempDir, "img10.jpg", "img2.png", "notes.txt", "img1.webp", "backup.bak")

	t.Run("Directory", func(t *testing.T) {
		sources, err := collectSources([]string{tempDir}, SortNatural)
		if err != nil {
			t.Fatalf("collectSources failed: %v", err)
		}
		expected := []string{
			filepath.Join(tempDir, "img1.webp"),
			filepath.Join(tempDir, "img2.png"),
			filepath.Join(tempDir, "img10.jpg"),
		}
		if !reflect.DeepEqual(sourcePaths(sources), expected) {
			t.Errorf("Expected %v, got %v", expected, sourcePaths(sources))
		}
	})

	t.Run("SingleFileAndDuplicates", func(t *testing.T) {
		single := filepath.Join(tempDir, "img2.png")
		sources, err := collectSources([]string{single, tempDir, single}, SortNatural)
		if err != nil {
			t.Fatalf("collectSources failed: %v", err)
		}
		if len(sources) != 3 {
			t.Fatalf("Expected 3 unique sources, got %v", sourcePaths(sources))
		}
		if sources[0].Path != single {
			t.Errorf("Expected the explicit file first, got %s", sources[0].Path)
		}
	})

	t.Run("MissingPath", func(t *testing.T) {
		if _, err := collectSources([]string{filepath.Join(tempDir, "nope")}, SortNatural); err == nil {
			t.Error("Expected an error for a missing path")
		}
	})
}

func TestCollectSourcesFromZip(t *testing.T) {
	tempDir := t.TempDir()
	archivePath := filepath.Join(tempDir, "album.zip")
	writeTestZip(t, archivePath, map[string][]byte{
		"p10.png":    testPNG(t, 2, 2),
		"p9.png":     testPNG(t, 3, 1),
		"readme.txt": []byte("not a photo"),
	})

	sources, err := collectSources([]string{archivePath}, SortNatural)
	if err != nil {
		t.Fatalf("collectSources failed: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("Expected 2 sources, got %v", sourcePaths(sources))
	}
	if sources[0].EntryPath != "p9.png" || sources[0].ArchivePath != archivePath {
		t.Errorf("Expected p9.png first, got %+v", sources[0])
	}
	if sources[0].Path != archivePath+":p9.png" {
		t.Errorf("Expected archive:entry path, got %s", sources[0].Path)
	}

	data, err := readSource(sources[0])
	if err != nil {
		t.Fatalf("readSource failed: %v", err)
	}
	if !bytes.Equal(data, testPNG(t, 3, 1)) {
		t.Error("Expected the entry bytes back")
	}

	if _, err := readArchiveEntry(archivePath, "missing.png"); err == nil {
		t.Error("Expected an error for a missing entry")
	}
}

func TestBrokenArchiveIsSkipped(t *testing.T) {
	tempDir := t.TempDir()
	touchFiles(t, tempDir, "broken.zip", "ok.png")

	sources, err := collectSources([]string{tempDir}, SortNatural)
	if err != nil {
		t.Fatalf("collectSources failed: %v", err)
	}
	if len(sources) != 1 || filepath.Base(sources[0].Path) != "ok.png" {
		t.Errorf("Expected only ok.png, got %v", sourcePaths(sources))
	}
}

func TestNewPhoto(t *testing.T) {
	p := newPhoto(PhotoSource{Path: "/photos/trip/beach.jpg"})

	if p.Title != "beach.jpg" {
		t.Errorf("Expected title beach.jpg, got %s", p.Title)
	}
	if p.URL != "/photos/trip/beach.jpg" {
		t.Errorf("Expected URL to be the path, got %s", p.URL)
	}
	if p.Thumbnail != "/photos/trip/beach.jpg" {
		t.Errorf("Expected the thumbnail to be the photo URL, got %s", p.Thumbnail)
	}
	if p.Favorite {
		t.Error("Expected new photos not to be favorites")
	}

	id, err := uuid.Parse(p.ID)
	if err != nil {
		t.Fatalf("Expected a UUID id, got %s: %v", p.ID, err)
	}
	if id.Version() != 5 {
		t.Errorf("Expected a name based (v5) UUID, got version %d", id.Version())
	}
	if again := newPhoto(PhotoSource{Path: "/photos/trip/beach.jpg"}); again.ID != p.ID {
		t.Error("Expected the same id for the same URL")
	}
	if other := newPhoto(PhotoSource{Path: "/photos/trip/dunes.jpg"}); other.ID == p.ID {
		t.Error("Expected different ids for different URLs")
	}

	entry := newPhoto(archiveEntrySource("album.zip", "day1/p1.png"))
	if entry.Title != "p1.png" {
		t.Errorf("Expected archive entry title p1.png, got %s", entry.Title)
	}
}

func TestCollectPhotos(t *testing.T) {
	tempDir := t.TempDir()
	touchFiles(t, tempDir, "b.png", "a.png")

	photos, sources, err := collectPhotos([]string{tempDir}, SortSimple)
	if err != nil {
		t.Fatalf("collectPhotos failed: %v", err)
	}
	if len(photos) != 2 || len(sources) != 2 {
		t.Fatalf("Expected 2 photos and sources, got %d and %d", len(photos), len(sources))
	}
	for i := range photos {
		if photos[i].URL != sources[i].Path {
			t.Errorf("Photo %d URL %s does not match source %s", i, photos[i].URL, sources[i].Path)
		}
	}
	if photos[0].Title != "a.png" {
		t.Errorf("Expected a.png first, got %s", photos[0].Title)
	}
}
