// Package store is the durable read/write path for feedback entries.
package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"pulsecheck-backend/internal/models"
)

// MaxHistoryItems caps how many entries a history read can return.
const MaxHistoryItems = 50

// Dimension names a groupable feedback column. Only the two enumerated
// dimensions exist; column names never come from user input.
type Dimension string

const (
	DimensionBranch Dimension = "branch"
	DimensionType   Dimension = "feedback_type"
)

// Filter restricts queries to a branch and/or feedback type. Predicates
// combine with AND; an empty or "All" value places no restriction on that
// dimension.
type Filter struct {
	Branch       string
	FeedbackType string
}

func (f Filter) apply(tx *gorm.DB) *gorm.DB {
	if f.Branch != "" && f.Branch != "All" {
		tx = tx.Where("branch = ?", f.Branch)
	}
	if f.FeedbackType != "" && f.FeedbackType != "All" {
		tx = tx.Where("feedback_type = ?", f.FeedbackType)
	}
	return tx
}

type FeedbackStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *FeedbackStore {
	return &FeedbackStore{db: db}
}

// Append persists one feedback entry, assigning id and timestamp. A stale
// author reference is tolerated: the entry is stored with a null author
// rather than rejected.
func (s *FeedbackStore) Append(item *models.Feedback) (*models.Feedback, error) {
	if item.UserID != nil {
		var n int64
		if err := s.db.Model(&models.User{}).Where("id = ?", *item.UserID).Count(&n).Error; err == nil && n == 0 {
			item.UserID = nil
		}
	}

	err := s.db.Create(item).Error
	if err != nil && errors.Is(err, gorm.ErrForeignKeyViolated) {
		// The author disappeared between the existence check and the
		// insert. Retry without the reference.
		item.ID = 0
		item.UserID = nil
		err = s.db.Create(item).Error
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// List returns at most limit entries matching the filter, newest first.
// Limits outside (0, MaxHistoryItems] clamp to MaxHistoryItems.
func (s *FeedbackStore) List(f Filter, limit int) ([]models.Feedback, error) {
	if limit <= 0 || limit > MaxHistoryItems {
		limit = MaxHistoryItems
	}

	var items []models.Feedback
	err := f.apply(s.db).Order("created_at DESC").Limit(limit).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

type categoryCount struct {
	Category models.Category
	Count    int64
}

// CountByCategory returns the number of entries per category matching the
// filter. Categories with no entries are absent from the map.
func (s *FeedbackStore) CountByCategory(f Filter) (map[models.Category]int64, error) {
	var rows []categoryCount
	err := f.apply(s.db.Model(&models.Feedback{})).
		Select("category, COUNT(*) as count").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.Category]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Count
	}
	return counts, nil
}

type dimensionCount struct {
	Value    string
	Category models.Category
	Count    int64
}

// CountByDimension returns per-category counts grouped by the given
// dimension, e.g. branch -> category -> count.
func (s *FeedbackStore) CountByDimension(dim Dimension, f Filter) (map[string]map[models.Category]int64, error) {
	var rows []dimensionCount
	err := f.apply(s.db.Model(&models.Feedback{})).
		Select(string(dim) + " as value, category, COUNT(*) as count").
		Group(string(dim) + ", category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]map[models.Category]int64)
	for _, row := range rows {
		if counts[row.Value] == nil {
			counts[row.Value] = make(map[models.Category]int64)
		}
		counts[row.Value][row.Category] = row.Count
	}
	return counts, nil
}

// TrendBucket holds per-category counts for one calendar day.
type TrendBucket struct {
	Label    string
	Earliest time.Time
	Counts   map[models.Category]int64
}

type trendRow struct {
	CreatedAt time.Time
	Category  models.Category
}

// Trend buckets entries from the trailing windowDays days by calendar day,
// ordered by the earliest timestamp in each bucket. Bucketing happens here
// rather than in SQL so Postgres and the SQLite test driver agree.
func (s *FeedbackStore) Trend(f Filter, windowDays int, now time.Time) ([]TrendBucket, error) {
	cutoff := now.AddDate(0, 0, -windowDays)

	var rows []trendRow
	err := f.apply(s.db.Model(&models.Feedback{})).
		Select("created_at, category").
		Where("created_at >= ?", cutoff).
		Order("created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var buckets []TrendBucket
	index := make(map[string]int)
	for _, row := range rows {
		label := row.CreatedAt.Format("Jan 02")
		i, ok := index[label]
		if !ok {
			i = len(buckets)
			index[label] = i
			buckets = append(buckets, TrendBucket{
				Label:    label,
				Earliest: row.CreatedAt,
				Counts:   make(map[models.Category]int64),
			})
		}
		buckets[i].Counts[row.Category]++
	}
	return buckets, nil
}
