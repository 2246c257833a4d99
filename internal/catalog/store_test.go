// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/chart-splitter/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.CatalogConfig{Path: filepath.Join(t.TempDir(), "db", "catalog.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func report(site string, pages ...types.PageResult) types.RunReport {
	return types.RunReport{
		Source:    site + ".pdf",
		SiteCode:  site,
		OutputDir: "out/" + site,
		PageCount: len(pages),
		Pages:     pages,
	}
}

func exported(page int, title string, cat types.Category) types.PageResult {
	return types.PageResult{Page: page, Title: title, Category: cat, Path: title + ".pdf", Bytes: 100, Status: types.PageExported}
}

func TestNewStore_EmptyPath(t *testing.T) {
	_, err := NewStore(types.CatalogConfig{})
	require.Error(t, err)
}

func TestNewStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	s, err := NewStore(types.CatalogConfig{Path: path})
	require.NoError(t, err)
	_, err = s.Record(context.Background(), report("GMAD", exported(1, "Parking", types.CategoryGroundChart)))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewStore(types.CatalogConfig{Path: path})
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.Runs(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRecordAndRuns(t *testing.T) {
	s := openTestStore(t)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	failed := types.PageResult{Page: 2, Title: "Error_Page_2", Category: types.CategoryError, Status: types.PageFailed, Error: "corrupt"}
	first, err := s.Record(ctx, report("GMAD", exported(1, "ILS RWY 27L", types.CategoryApproach), failed))
	require.NoError(t, err)
	_, err = uuid.Parse(first)
	require.NoError(t, err, "run id should be a UUID")

	second, err := s.Record(ctx, report("LFPG", exported(1, "Parking", types.CategoryGroundChart)))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	runs, err := s.Runs(ctx, "")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID, "newest run first")
	assert.Equal(t, first, runs[1].ID)

	gmad := runs[1]
	assert.Equal(t, "GMAD", gmad.SiteCode)
	assert.Equal(t, "GMAD.pdf", gmad.Source)
	assert.Equal(t, 2, gmad.PageCount)
	assert.Equal(t, 1, gmad.Exported)
	assert.Equal(t, 1, gmad.Failed)
	assert.False(t, gmad.DryRun)
	assert.True(t, fixed.Equal(gmad.RecordedAt))

	runs, err = s.Runs(ctx, "lfpg")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, second, runs[0].ID)
}

func TestPages(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Record(ctx, report("GMAD",
		exported(1, "STAR AGALI2A RWY 27", types.CategorySTAR),
		exported(2, "ILS RWY 27L", types.CategoryApproach),
		exported(3, "Untitled_Page_3", types.CategoryUntitled),
	))
	require.NoError(t, err)
	latest, err := s.Record(ctx, report("LFPG",
		exported(1, "ILS RWY 09R", types.CategoryApproach),
		types.PageResult{Page: 2, Title: "Error_Page_2", Category: types.CategoryError, Status: types.PageFailed, Error: "corrupt"},
	))
	require.NoError(t, err)

	tests := []struct {
		name   string
		opts   QueryOptions
		titles []string
	}{
		{"all newest run first", QueryOptions{}, []string{"ILS RWY 09R", "Error_Page_2", "STAR AGALI2A RWY 27", "ILS RWY 27L", "Untitled_Page_3"}},
		{"by site", QueryOptions{Site: "gmad"}, []string{"STAR AGALI2A RWY 27", "ILS RWY 27L", "Untitled_Page_3"}},
		{"by category", QueryOptions{Category: types.CategoryApproach}, []string{"ILS RWY 09R", "ILS RWY 27L"}},
		{"by title", QueryOptions{Title: "agali"}, []string{"STAR AGALI2A RWY 27"}},
		{"combined", QueryOptions{Site: "LFPG", Category: types.CategoryApproach}, []string{"ILS RWY 09R"}},
		{"limit", QueryOptions{Limit: 2}, []string{"ILS RWY 09R", "Error_Page_2"}},
		{"no match", QueryOptions{Site: "EHAM"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, err := s.Pages(ctx, tt.opts)
			require.NoError(t, err)
			var titles []string
			for _, p := range pages {
				titles = append(titles, p.Title)
			}
			assert.Equal(t, tt.titles, titles)
		})
	}

	pages, err := s.Pages(ctx, QueryOptions{Site: "LFPG", Category: types.CategoryError})
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, Page{
		RunID:    latest,
		SiteCode: "LFPG",
		Page:     2,
		Title:    "Error_Page_2",
		Category: types.CategoryError,
		Status:   types.PageFailed,
		Error:    "corrupt",
	}, pages[0])
}
