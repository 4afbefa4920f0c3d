// Package persistence stores finished match results on disk with gdata.
package persistence

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/automoto/pitchclash/match"
	"github.com/automoto/pitchclash/shared/netconfig"
	"github.com/quasilyte/gdata"
)

const (
	resultsItem = "results"
	maxResults  = 50
)

// SavedResult is the on-disk form of a finished match.
type SavedResult struct {
	Left       int       `json:"left"`
	Right      int       `json:"right"`
	Winner     string    `json:"winner"`
	Rounds     int       `json:"rounds"`
	FinishedAt time.Time `json:"finishedAt"`
}

// itemStore is the subset of *gdata.Manager the store needs.
type itemStore interface {
	LoadItem(name string) ([]byte, error)
	SaveItem(name string, data []byte) error
}

// Results keeps the most recent match results.
type Results struct {
	items itemStore
}

var _ match.ResultStore = (*Results)(nil)

// Open initializes the gdata manager for appName.
func Open(appName string) (*Results, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open result storage: %w", err)
	}
	return &Results{items: m}, nil
}

// Load returns the saved results, oldest first.
func (r *Results) Load() ([]SavedResult, error) {
	data, err := r.items.LoadItem(resultsItem)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	if data == nil {
		// Nothing saved yet
		return nil, nil
	}

	var saved []SavedResult
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return saved, nil
}

// SaveResult appends a result, dropping the oldest beyond the retention limit.
func (r *Results) SaveResult(res match.Result) error {
	saved, err := r.Load()
	if err != nil {
		return err
	}
	saved = append(saved, SavedResult{
		Left:       res.Left,
		Right:      res.Right,
		Winner:     winnerName(res.Winner),
		Rounds:     res.Rounds,
		FinishedAt: res.FinishedAt.UTC(),
	})
	if len(saved) > maxResults {
		saved = saved[len(saved)-maxResults:]
	}

	data, err := json.Marshal(saved)
	if err != nil {
		return fmt.Errorf("serialize results: %w", err)
	}
	if err := r.items.SaveItem(resultsItem, data); err != nil {
		return fmt.Errorf("save results: %w", err)
	}
	return nil
}

func winnerName(t netconfig.Team) string {
	if t == netconfig.TeamNone {
		return "draw"
	}
	return t.String()
}
