package main

import (
	"sort"

	"github.com/maruel/natural"
)

// SortStrategy orders photo sources by their path
type SortStrategy interface {
	// Sort returns a new sorted slice without modifying the original
	Sort(sources []PhotoSource) []PhotoSource
	// Name returns the human-readable name of the strategy
	Name() string
	// ID returns the numeric identifier for config storage
	ID() int
}

// sortedCopy copies sources and stable-sorts the copy by path with less.
// A nil less keeps the input order.
func sortedCopy(sources []PhotoSource, less func(a, b string) bool) []PhotoSource {
	result := make([]PhotoSource, len(sources))
	copy(result, sources)
	if less != nil {
		sort.SliceStable(result, func(i, j int) bool {
			return less(result[i].Path, result[j].Path)
		})
	}
	return result
}

// NaturalSortStrategy orders numbers by value (img2 before img10)
type NaturalSortStrategy struct{}

func (s *NaturalSortStrategy) Sort(sources []PhotoSource) []PhotoSource {
	return sortedCopy(sources, natural.Less)
}

func (s *NaturalSortStrategy) Name() string { return "Natural" }
func (s *NaturalSortStrategy) ID() int      { return SortNatural }

// SimpleSortStrategy implements lexicographical sorting
type SimpleSortStrategy struct{}

func (s *SimpleSortStrategy) Sort(sources []PhotoSource) []PhotoSource {
	return sortedCopy(sources, func(a, b string) bool { return a < b })
}

func (s *SimpleSortStrategy) Name() string { return "Simple" }
func (s *SimpleSortStrategy) ID() int      { return SortSimple }

// EntryOrderSortStrategy keeps the order photos were found in
type EntryOrderSortStrategy struct{}

func (s *EntryOrderSortStrategy) Sort(sources []PhotoSource) []PhotoSource {
	return sortedCopy(sources, nil)
}

func (s *EntryOrderSortStrategy) Name() string { return "Entry Order" }
func (s *EntryOrderSortStrategy) ID() int      { return SortEntryOrder }

// GetSortStrategy returns the strategy for a sort method id, natural by default
func GetSortStrategy(sortMethod int) SortStrategy {
	switch sortMethod {
	case SortSimple:
		return &SimpleSortStrategy{}
	case SortEntryOrder:
		return &EntryOrderSortStrategy{}
	default:
		return &NaturalSortStrategy{}
	}
}

// isKnownSortMethod reports whether a strategy exists for sortMethod
func isKnownSortMethod(sortMethod int) bool {
	for _, s := range GetAllSortStrategies() {
		if s.ID() == sortMethod {
			return true
		}
	}
	return false
}

// GetAllSortStrategies returns all available sort strategies
func GetAllSortStrategies() []SortStrategy {
	return []SortStrategy{
		&NaturalSortStrategy{},
		&SimpleSortStrategy{},
		&EntryOrderSortStrategy{},
	}
}
