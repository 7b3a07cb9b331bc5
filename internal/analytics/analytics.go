// Package analytics computes the dashboard snapshot from stored feedback.
package analytics

import (
	"sort"
	"time"

	"pulsecheck-backend/internal/models"
	"pulsecheck-backend/internal/store"
)

// TrendWindowDays is the trailing window covered by the trend series.
const TrendWindowDays = 7

// Snapshot is the full analytics payload for one filter combination. All
// aggregates cover the three canonical categories; entries recorded with the
// Error category are excluded everywhere, including Total.
type Snapshot struct {
	Appreciation int64 `json:"Appreciation"`
	Concerns     int64 `json:"Concerns"`
	Suggestions  int64 `json:"Suggestions"`
	Total        int64 `json:"Total"`

	BranchData []BranchBreakdown `json:"branchData"`
	TypeData   []TypeBreakdown   `json:"typeData"`
	TrendData  []TrendPoint      `json:"trendData"`
}

type BranchBreakdown struct {
	Branch       string `json:"branch"`
	Appreciation int64  `json:"Appreciation"`
	Concerns     int64  `json:"Concerns"`
	Suggestions  int64  `json:"Suggestions"`
}

type TypeBreakdown struct {
	Type         string `json:"type"`
	Appreciation int64  `json:"Appreciation"`
	Concerns     int64  `json:"Concerns"`
	Suggestions  int64  `json:"Suggestions"`
}

// TrendPoint is one calendar day in the trend series. Date is a short label
// like "Aug 29".
type TrendPoint struct {
	Date         string `json:"date"`
	Appreciation int64  `json:"Appreciation"`
	Concerns     int64  `json:"Concerns"`
	Suggestions  int64  `json:"Suggestions"`
}

// Store is the slice of the feedback store the engine reads from.
type Store interface {
	CountByCategory(f store.Filter) (map[models.Category]int64, error)
	CountByDimension(dim store.Dimension, f store.Filter) (map[string]map[models.Category]int64, error)
	Trend(f store.Filter, windowDays int, now time.Time) ([]store.TrendBucket, error)
}

type Engine struct {
	store Store
	now   func() time.Time
}

func New(s Store) *Engine {
	return &Engine{store: s, now: time.Now}
}

// Summarize builds the snapshot for one filter. Reading is idempotent; two
// calls over unchanged data return equal snapshots.
func (e *Engine) Summarize(f store.Filter) (*Snapshot, error) {
	totals, err := e.store.CountByCategory(f)
	if err != nil {
		return nil, err
	}

	byBranch, err := e.store.CountByDimension(store.DimensionBranch, f)
	if err != nil {
		return nil, err
	}

	byType, err := e.store.CountByDimension(store.DimensionType, f)
	if err != nil {
		return nil, err
	}

	trend, err := e.store.Trend(f, TrendWindowDays, e.now())
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Appreciation: totals[models.CategoryAppreciation],
		Concerns:     totals[models.CategoryConcerns],
		Suggestions:  totals[models.CategorySuggestions],
		BranchData:   []BranchBreakdown{},
		TypeData:     []TypeBreakdown{},
		TrendData:    []TrendPoint{},
	}
	snap.Total = snap.Appreciation + snap.Concerns + snap.Suggestions

	for _, branch := range sortedKeys(byBranch) {
		counts := byBranch[branch]
		snap.BranchData = append(snap.BranchData, BranchBreakdown{
			Branch:       branch,
			Appreciation: counts[models.CategoryAppreciation],
			Concerns:     counts[models.CategoryConcerns],
			Suggestions:  counts[models.CategorySuggestions],
		})
	}

	for _, typ := range sortedKeys(byType) {
		counts := byType[typ]
		snap.TypeData = append(snap.TypeData, TypeBreakdown{
			Type:         typ,
			Appreciation: counts[models.CategoryAppreciation],
			Concerns:     counts[models.CategoryConcerns],
			Suggestions:  counts[models.CategorySuggestions],
		})
	}

	for _, bucket := range trend {
		snap.TrendData = append(snap.TrendData, TrendPoint{
			Date:         bucket.Label,
			Appreciation: bucket.Counts[models.CategoryAppreciation],
			Concerns:     bucket.Counts[models.CategoryConcerns],
			Suggestions:  bucket.Counts[models.CategorySuggestions],
		})
	}

	return snap, nil
}

func sortedKeys(m map[string]map[models.Category]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
