// Package analytics answers the fixed dashboard questions over the
// processed tables.  An Analytics value starts unloaded; Load moves it to
// loaded only when every table reads cleanly.  Until then every query
// returns an empty result.
package analytics

import (
	"fmt"
	"sync"
	"time"

	"github.com/iliyamo/movie-analytics/internal/dataset"
	"github.com/iliyamo/movie-analytics/internal/model"
)

type tables struct {
	movies  []model.MovieRecord
	sales   []model.DailySalesRecord
	genres  []model.GenreStats
	studios []model.StudioStats
	monthly []model.MonthlySales
}

type Analytics struct {
	dataPath string
	// Now stamps generated_at on reports; tests pin it.
	Now func() time.Time

	mu sync.RWMutex
	t  *tables
}

func New(dataPath string) *Analytics {
	return &Analytics{dataPath: dataPath, Now: time.Now}
}

// DataPath returns the directory the tables are read from.
func (a *Analytics) DataPath() string { return a.dataPath }

// Load reads the five processed tables.  On any failure the previous
// state is kept and the error is returned.
func (a *Analytics) Load() error {
	movies, err := dataset.ReadMovies(a.dataPath)
	if err != nil {
		return fmt.Errorf("load movies: %w", err)
	}
	sales, err := dataset.ReadSales(a.dataPath)
	if err != nil {
		return fmt.Errorf("load sales: %w", err)
	}
	genres, err := dataset.ReadGenreStats(a.dataPath)
	if err != nil {
		return fmt.Errorf("load genre stats: %w", err)
	}
	studios, err := dataset.ReadStudioStats(a.dataPath)
	if err != nil {
		return fmt.Errorf("load studio stats: %w", err)
	}
	monthly, err := dataset.ReadMonthlySales(a.dataPath)
	if err != nil {
		return fmt.Errorf("load monthly sales: %w", err)
	}

	a.mu.Lock()
	a.t = &tables{movies: movies, sales: sales, genres: genres, studios: studios, monthly: monthly}
	a.mu.Unlock()
	return nil
}

func (a *Analytics) IsLoaded() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.t != nil
}

// snapshot returns the loaded tables or nil.  Tables are never mutated
// after Load, so callers read them without holding the lock.
func (a *Analytics) snapshot() *tables {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.t
}

// MonthlySales returns the monthly rollup, or nil when unloaded.
func (a *Analytics) MonthlySales() []model.MonthlySales {
	t := a.snapshot()
	if t == nil {
		return nil
	}
	return t.monthly
}
