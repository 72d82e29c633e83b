package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beaten-by-the-market/krx-radar/internal/issue"
	"github.com/beaten-by-the-market/krx-radar/internal/models"
)

func sampleRoster() []models.Entity {
	return []models.Entity{
		{Symbol: "KRX:100000", Name: "에이씨엠", Market: models.MarketKOSPI},
		{Symbol: "KRX:200000", Name: "베타물산", Market: models.MarketKOSDAQ},
	}
}

func TestRunEndToEnd(t *testing.T) {
	docs := []models.Document{
		{
			ID:    "doc1",
			Title: "에이씨엠, 대규모 공급 계약 체결",
			Polarity: models.Polarity{Name: "긍정"},
			Securities: []models.Mention{
				{Symbol: "KRX:100000"},
				{Symbol: "KRX:200000"},
			},
		},
		{
			ID:    "doc2",
			Title: "장 마감 시황",
			Polarity: models.Polarity{Name: "중립"},
		},
		{
			ID:    "doc3",
			Title: "에이씨엠 신임 대표 선임",
			Polarity: models.Polarity{Name: "부정"},
			Entities: []models.Mention{
				{Name: "에이씨엠"},
			},
		},
	}

	res := Run(docs, sampleRoster(), issue.ParseQuery("(계약 and 체결)"))

	// doc2 mentions nobody on the roster and is dropped entirely.
	require.Len(t, res.Documents, 2)
	require.Equal(t, "doc1", res.Documents[0].ID)
	require.Equal(t, "doc3", res.Documents[1].ID)

	require.True(t, res.Documents[0].TagMatched)
	require.Equal(t, []string{"(계약 and 체결)"}, res.Documents[0].MatchedClauses)
	require.False(t, res.Documents[1].TagMatched)
	require.Empty(t, res.Documents[1].MatchedClauses)

	// doc3 fails the clause but still counts toward the aggregate.
	require.Len(t, res.Stats, 2)
	require.Equal(t, "에이씨엠", res.Stats[0].Name)
	require.Equal(t, 2, res.Stats[0].Total)
	require.Equal(t, 1, res.Stats[0].Positive)
	require.Equal(t, 1, res.Stats[0].Negative)
	require.Equal(t, "베타물산", res.Stats[1].Name)
	require.Equal(t, 1, res.Stats[1].Total)

	filtered := res.Filtered()
	require.Len(t, filtered, 1)
	require.Equal(t, "doc1", filtered[0].ID)
}

func TestRunWithoutClausesKeepsEverything(t *testing.T) {
	docs := []models.Document{
		{ID: "a", Title: "베타물산 소식", Entities: []models.Mention{{Name: "베타물산"}}},
	}

	res := Run(docs, sampleRoster(), nil)

	require.Len(t, res.Documents, 1)
	require.True(t, res.Documents[0].TagMatched)
	require.Nil(t, res.Documents[0].MatchedClauses)
	require.Len(t, res.Filtered(), 1)
}

func TestRunWithEmptyRoster(t *testing.T) {
	docs := []models.Document{
		{ID: "a", Securities: []models.Mention{{Symbol: "KRX:100000"}}},
	}

	res := Run(docs, nil, nil)

	require.Empty(t, res.Documents)
	require.Empty(t, res.Stats)
	require.Empty(t, res.Filtered())
}
