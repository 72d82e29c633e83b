package issue

// Built-in issue category presets. The "전체" preset carries an empty
// expression and therefore no clauses, which makes its tagger vacuous.
var categories = map[string]string{
	"전체":      "",
	"계약/수주":   "(수주 and 체결) or (수주 and 공급) or (계약 and 체결) or (계약 and 공급)",
	"인수/투자":   "인수 or 합병 or 분할 or 영업양도 or 영업양수 or 엠앤에이 or 출자 or 투자",
	"실적":      "(매출 and 발표) or (매출 and 공표) or (매출 and 결정) or (매출 and 기록) or (매출 and 달성) or (매출 and 공시) or (실적 and 발표) or (실적 and 공표) or (실적 and 결정) or (실적 and 기록) or (실적 and 달성) or (실적 and 공시) or (이익 and 발표) or (이익 and 공표) or (이익 and 결정) or (이익 and 기록) or (이익 and 달성) or (이익 and 공시) or (배당 and 발표) or (배당 and 공표) or (배당 and 결정) or (배당 and 기록) or (배당 and 달성) or (배당 and 공시)",
	"증자/감자":   "증자 or 감자 or 주식교환 or 주식이전 or 우회상장",
	"회계/감사":   "상장폐지 or 관리종목 or 자본잠식 or (비적정 and 감사) or (비적정 and 회계법인) or (의견거절 and 감사) or (의견거절 and 회계법인) or (회계처리 and 위반) or 분식",
	"소송/부도/회생": "소송 or 횡령 or 배임 or 부도 or 파산 or 회생 or (공소 and 대표이사) or (공소 and 임원) or (공소 and 이사) or (기소 and 대표이사) or (기소 and 임원) or (기소 and 이사) or (혐의 and 대표이사) or (혐의 and 임원) or (혐의 and 이사)",
}

// categoryOrder fixes the presentation order of presets.
var categoryOrder = []string{
	"전체",
	"계약/수주",
	"인수/투자",
	"실적",
	"증자/감자",
	"회계/감사",
	"소송/부도/회생",
}

// CategoryNames returns the preset names in display order.
func CategoryNames() []string {
	out := make([]string, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// CategoryClauses returns the parsed clauses of a named preset. The second
// return value is false for unknown names.
func CategoryClauses(name string) ([]Clause, bool) {
	expr, ok := categories[name]
	if !ok {
		return nil, false
	}
	return ParseQuery(expr), true
}

// CategoryExpr returns the raw filter expression of a named preset.
func CategoryExpr(name string) (string, bool) {
	expr, ok := categories[name]
	return expr, ok
}
