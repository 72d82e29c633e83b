package issue

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beaten-by-the-market/krx-radar/internal/models"
)

func TestParseQuerySplitsOnOr(t *testing.T) {
	clauses := ParseQuery("인수 or 합병 or (계약 and 체결)")

	require.Len(t, clauses, 3)
	require.Equal(t, "인수", clauses[0].String())
	require.Equal(t, "합병", clauses[1].String())
	require.Equal(t, "(계약 and 체결)", clauses[2].String())
}

func TestParseQueryEmptyExpression(t *testing.T) {
	require.Nil(t, ParseQuery(""))
	require.Nil(t, ParseQuery("   "))
}

func TestClauseConjunctionRequiresAllTerms(t *testing.T) {
	tagger := NewTagger(ParseQuery("(실적 and 발표)"))

	matched, names := tagger.Tag(models.Document{Title: "분기 실적 발표"})
	require.True(t, matched)
	require.Equal(t, []string{"(실적 and 발표)"}, names)

	matched, names = tagger.Tag(models.Document{Title: "실적 전망 상향"})
	require.False(t, matched)
	require.Empty(t, names)

	matched, _ = tagger.Tag(models.Document{Title: "신제품 발표 행사"})
	require.False(t, matched)
}

func TestClauseConjunctionAcrossFields(t *testing.T) {
	tagger := NewTagger(ParseQuery("(실적 and 발표)"))

	// Terms may be satisfied by different text fields.
	matched, _ := tagger.Tag(models.Document{
		Title:   "실적 시즌 개막",
		Content: "주요 기업이 오늘 발표에 나선다",
	})
	require.True(t, matched)
}

func TestTagSubstringMatchingIsCaseInsensitive(t *testing.T) {
	tagger := NewTagger(ParseQuery("merger or IPO"))

	matched, names := tagger.Tag(models.Document{Title: "Upcoming ipo schedule"})
	require.True(t, matched)
	require.Equal(t, []string{"IPO"}, names)
}

func TestTagReportsEveryMatchedClauseInOrder(t *testing.T) {
	tagger := NewTagger(ParseQuery("인수 or 합병 or 분할"))

	matched, names := tagger.Tag(models.Document{Title: "합병 후 분할 재상장"})
	require.True(t, matched)
	require.Equal(t, []string{"합병", "분할"}, names)
}

func TestVacuousTaggerMatchesEverything(t *testing.T) {
	tagger := NewTagger(nil)

	matched, names := tagger.Tag(models.Document{Title: "아무 기사"})
	require.True(t, matched)
	require.Nil(t, names)

	matched, names = tagger.Tag(models.Document{})
	require.True(t, matched)
	require.Nil(t, names)
}

func TestHaystackSkipsEmptyFields(t *testing.T) {
	doc := models.Document{Title: "Alpha", Body: "Beta"}
	require.Equal(t, "alpha beta", Haystack(doc))
}

func TestCategoryPresets(t *testing.T) {
	names := CategoryNames()
	require.Equal(t, "전체", names[0])
	require.Contains(t, names, "실적")

	clauses, ok := CategoryClauses("전체")
	require.True(t, ok)
	require.Empty(t, clauses)

	clauses, ok = CategoryClauses("계약/수주")
	require.True(t, ok)
	require.Len(t, clauses, 4)

	_, ok = CategoryClauses("없는카테고리")
	require.False(t, ok)
}
