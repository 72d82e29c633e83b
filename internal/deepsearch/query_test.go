package deepsearch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildMinimalQuery(t *testing.T) {
	q := DocumentQuery{Count: 100, Page: 1}

	expr, err := q.Build()
	require.NoError(t, err)
	require.Equal(t, `DocumentSearch(["news"], [""], count=100, page=1)`, expr)
}

func TestBuildFullQuery(t *testing.T) {
	q := DocumentQuery{
		Keyword:    "반도체",
		Sections:   []string{"economy"},
		Publishers: []string{"매일경제", "한국경제"},
		DateFrom:   "20250101",
		DateTo:     "20250131",
		Count:      100,
		Page:       3,
	}

	expr, err := q.Build()
	require.NoError(t, err)
	require.Equal(t,
		`DocumentSearch(["news"], ["economy"], "반도체 and publisher.raw :('매일경제' or '한국경제')", date_from=20250101, date_to=20250131, count=100, page=3)`,
		expr)
}

func TestBuildTimestampRange(t *testing.T) {
	q := DocumentQuery{
		TimeFrom: "2025-01-02 09:00:00",
		TimeTo:   "2025-01-02 15:30:00",
		Count:    50,
		Page:     1,
	}

	expr, err := q.Build()
	require.NoError(t, err)
	require.Contains(t, expr, `created_at:[\"2025-01-02 09:00:00\" to \"2025-01-02 15:30:00\"]`)
}

func TestBuildRejectsBadDates(t *testing.T) {
	q := DocumentQuery{DateFrom: "2025-01-01", DateTo: "20250131", Count: 100, Page: 1}
	_, err := q.Build()
	require.Error(t, err)
}

func TestBuildRejectsOutOfRangeCount(t *testing.T) {
	_, err := DocumentQuery{Count: 101, Page: 1}.Build()
	require.Error(t, err)

	_, err = DocumentQuery{Count: 0, Page: 1}.Build()
	require.Error(t, err)
}

func TestSectionAndPublisherPresets(t *testing.T) {
	slug, ok := SectionSlug("경제")
	require.True(t, ok)
	require.Equal(t, "economy", slug)

	slug, ok = SectionSlug("전체")
	require.True(t, ok)
	require.Empty(t, slug)

	pubs, ok := PublisherGroup("석간지")
	require.True(t, ok)
	require.Len(t, pubs, 5)

	_, ok = PublisherGroup("없는그룹")
	require.False(t, ok)
}
