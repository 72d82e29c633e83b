package deepsearch

// News section presets: display name to the section slug the search API
// expects. The empty slug searches every section.
var sections = map[string]string{
	"전체":    "",
	"경제":    "economy",
	"기술/IT": "tech",
	"문화":    "culture",
	"사설":    "opinion",
	"사회":    "society",
	"세계":    "world",
	"연예":    "entertainment",
	"정치":    "politics",
}

var sectionOrder = []string{
	"전체", "경제", "기술/IT", "문화", "사설", "사회", "세계", "연예", "정치",
}

// SectionNames returns the section preset names in display order.
func SectionNames() []string {
	out := make([]string, len(sectionOrder))
	copy(out, sectionOrder)
	return out
}

// SectionSlug resolves a preset name to its API slug. The second return
// value is false for unknown names.
func SectionSlug(name string) (string, bool) {
	slug, ok := sections[name]
	return slug, ok
}

// Publisher group presets. The "전체" group is empty on purpose: no
// publisher clause means every outlet.
var publisherGroups = map[string][]string{
	"전체": nil,
	"중앙일간지": {
		"경향신문", "국민일보", "동아일보", "서울신문", "세계일보",
		"아시아투데이", "조선일보", "중앙일보", "한겨레", "한국일보",
	},
	"중앙경제지": {
		"뉴스토마토", "디지털타임스", "매일경제", "머니투데이", "서울경제",
		"아주경제", "이데일리", "이투데이", "전자신문", "파이낸셜뉴스", "한국경제",
	},
	"중앙일간지 및 경제지": {
		"경향신문", "국민일보", "동아일보", "서울신문", "세계일보",
		"아시아투데이", "조선일보", "중앙일보", "한겨레", "한국일보",
		"뉴스토마토", "디지털타임스", "매일경제", "머니투데이", "서울경제",
		"아주경제", "이데일리", "이투데이", "전자신문", "파이낸셜뉴스", "한국경제",
	},
	"석간지": {
		"내일신문", "문화일보", "아시아경제", "지역내일신문", "헤럴드경제",
	},
	"종합일간지, 지방지": {
		"메트로경제", "국제신문", "부산일보",
	},
}

var publisherGroupOrder = []string{
	"전체", "중앙일간지", "중앙경제지", "중앙일간지 및 경제지", "석간지", "종합일간지, 지방지",
}

// PublisherGroupNames returns the group names in display order.
func PublisherGroupNames() []string {
	out := make([]string, len(publisherGroupOrder))
	copy(out, publisherGroupOrder)
	return out
}

// PublisherGroup resolves a group name to its outlet list. The second
// return value is false for unknown names.
func PublisherGroup(name string) ([]string, bool) {
	pubs, ok := publisherGroups[name]
	if !ok {
		return nil, false
	}
	out := make([]string, len(pubs))
	copy(out, pubs)
	return out, true
}
