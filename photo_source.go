package main

import (
	"archive/zip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/google/uuid"
	"github.com/nwaples/rardecode"
)

// PhotoSource locates the bytes behind a photo URL
type PhotoSource struct {
	Path        string // Local file path or archive:entry format; used as the photo URL
	ArchivePath string // Empty for regular files
	EntryPath   string // Path inside the archive, empty for regular files
}

var supportedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true, ".webp": true,
}

var supportedArchiveExts = map[string]bool{
	".zip": true, ".rar": true, ".7z": true,
}

func isSupportedExt(name string) bool {
	return supportedImageExts[strings.ToLower(filepath.Ext(name))]
}

func isArchiveExt(name string) bool {
	return supportedArchiveExts[strings.ToLower(filepath.Ext(name))]
}

// photoIDFor derives a stable id from the photo URL
func photoIDFor(url string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String()
}

// newPhoto builds the collection entry for a source
func newPhoto(src PhotoSource) Photo {
	title := filepath.Base(src.Path)
	if src.EntryPath != "" {
		title = filepath.Base(src.EntryPath)
	}
	return Photo{
		ID:        photoIDFor(src.Path),
		URL:       src.Path,
		Thumbnail: src.Path, // no separate thumbnails, a grid scales the photo itself
		Title:     title,
	}
}

// photosFromSources builds one Photo per source, keeping the order
func photosFromSources(sources []PhotoSource) []Photo {
	photos := make([]Photo, 0, len(sources))
	for _, src := range sources {
		photos = append(photos, newPhoto(src))
	}
	return photos
}

func archiveEntrySource(archivePath, entry string) PhotoSource {
	return PhotoSource{
		Path:        archivePath + ":" + entry,
		ArchivePath: archivePath,
		EntryPath:   entry,
	}
}

// listArchiveEntries returns the image entries of a zip, rar or 7z archive
func listArchiveEntries(archivePath string) ([]string, error) {
	var names []string

	switch strings.ToLower(filepath.Ext(archivePath)) {
	case ".zip":
		r, err := zip.OpenReader(archivePath)
		if err != nil {
			return nil, fmt.Errorf("opening zip %s: %w", archivePath, err)
		}
		defer r.Close()
		for _, f := range r.File {
			if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
				names = append(names, f.Name)
			}
		}

	case ".rar":
		f, err := os.Open(archivePath)
		if err != nil {
			return nil, fmt.Errorf("opening rar %s: %w", archivePath, err)
		}
		defer f.Close()
		r, err := rardecode.NewReader(f, "")
		if err != nil {
			return nil, fmt.Errorf("reading rar %s: %w", archivePath, err)
		}
		for {
			header, err := r.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("reading rar %s: %w", archivePath, err)
			}
			if !header.IsDir && isSupportedExt(header.Name) {
				names = append(names, header.Name)
			}
		}

	case ".7z":
		r, err := sevenzip.OpenReader(archivePath)
		if err != nil {
			return nil, fmt.Errorf("opening 7z %s: %w", archivePath, err)
		}
		defer r.Close()
		for _, f := range r.File {
			if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
				names = append(names, f.Name)
			}
		}

	default:
		return nil, fmt.Errorf("unsupported archive format: %s", archivePath)
	}

	return names, nil
}

// readArchiveEntry returns the bytes of one archive entry
func readArchiveEntry(archivePath, entryPath string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(archivePath)) {
	case ".zip":
		r, err := zip.OpenReader(archivePath)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		for _, f := range r.File {
			if f.Name == entryPath {
				rc, err := f.Open()
				if err != nil {
					return nil, err
				}
				defer rc.Close()
				return io.ReadAll(rc)
			}
		}

	case ".rar":
		f, err := os.Open(archivePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r, err := rardecode.NewReader(f, "")
		if err != nil {
			return nil, err
		}
		for {
			header, err := r.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
			if header.Name == entryPath {
				return io.ReadAll(r)
			}
		}

	case ".7z":
		r, err := sevenzip.OpenReader(archivePath)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		for _, f := range r.File {
			if f.Name == entryPath {
				rc, err := f.Open()
				if err != nil {
					return nil, err
				}
				defer rc.Close()
				return io.ReadAll(rc)
			}
		}

	default:
		return nil, fmt.Errorf("unsupported archive format: %s", archivePath)
	}

	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

// readSource returns the raw bytes of a photo
func readSource(src PhotoSource) ([]byte, error) {
	if src.ArchivePath == "" {
		return os.ReadFile(src.Path)
	}
	return readArchiveEntry(src.ArchivePath, src.EntryPath)
}

// sourcesFromArchive lists an archive as sorted photo sources; a broken
// archive is logged and skipped
func sourcesFromArchive(archivePath string, sortMethod int) []PhotoSource {
	entries, err := listArchiveEntries(archivePath)
	if err != nil {
		log.Printf("Warning: Skipping problematic archive %s: %v", archivePath, err)
		return nil
	}
	sources := make([]PhotoSource, 0, len(entries))
	for _, entry := range entries {
		sources = append(sources, archiveEntrySource(archivePath, entry))
	}
	return sortPhotoSources(sources, sortMethod)
}

// sortPhotoSources sorts with the configured strategy, returning a new slice
func sortPhotoSources(sources []PhotoSource, sortMethod int) []PhotoSource {
	return GetSortStrategy(sortMethod).Sort(sources)
}

// collectSources expands files, directories and archives into photo
// sources. Each argument keeps its position; a URL seen twice is kept once.
func collectSources(args []string, sortMethod int) ([]PhotoSource, error) {
	var list []PhotoSource
	seen := make(map[string]bool)
	add := func(sources ...PhotoSource) {
		for _, src := range sources {
			if seen[src.Path] {
				continue
			}
			seen[src.Path] = true
			list = append(list, src)
		}
	}

	for _, p := range args {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}

		if !info.IsDir() {
			if isSupportedExt(p) {
				add(PhotoSource{Path: p})
			} else if isArchiveExt(p) {
				add(sourcesFromArchive(p, sortMethod)...)
			}
			continue
		}

		var dirSources []PhotoSource
		err = filepath.Walk(p, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				return nil
			}
			if isSupportedExt(path) {
				dirSources = append(dirSources, PhotoSource{Path: path})
			} else if isArchiveExt(path) {
				dirSources = append(dirSources, sourcesFromArchive(path, sortMethod)...)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", p, err)
		}
		add(sortPhotoSources(dirSources, sortMethod)...)
	}

	return list, nil
}

// collectPhotos is collectSources plus the Photo for each source
func collectPhotos(args []string, sortMethod int) ([]Photo, []PhotoSource, error) {
	sources, err := collectSources(args, sortMethod)
	if err != nil {
		return nil, nil, err
	}
	return photosFromSources(sources), sources, nil
}
