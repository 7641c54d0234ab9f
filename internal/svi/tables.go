package svi

// Category and perspective names shared by both variants. Category order is
// fixed: it drives the output ordering and the position of each digit in the
// diagnostic code.
const (
	CategoryOrgMission  = "조직미션"
	CategoryBizActivity = "사업활동"
	CategoryOrgOps      = "조직운영"
	CategoryFinance     = "재정성과"
	CategoryInnovation  = "기업혁신"

	PerspectiveSocial     = "사회적성과"
	PerspectiveEconomic   = "경제적성과"
	PerspectiveInnovation = "혁신성과"
)

// Categories is the fixed category ordering.
var Categories = []string{
	CategoryOrgMission,
	CategoryBizActivity,
	CategoryOrgOps,
	CategoryFinance,
	CategoryInnovation,
}

// Perspectives is the fixed perspective ordering.
var Perspectives = []string{
	PerspectiveSocial,
	PerspectiveEconomic,
	PerspectiveInnovation,
}

// codeThresholds are the per-category cut-offs for the diagnostic code,
// in category order. A category at or above its threshold emits '2',
// below it '1'. Shared by both variants.
var codeThresholds = []CategoryThreshold{
	{Category: CategoryOrgMission, Threshold: 3.25},
	{Category: CategoryBizActivity, Threshold: 3.20},
	{Category: CategoryOrgOps, Threshold: 2.10},
	{Category: CategoryFinance, Threshold: 2.60},
	{Category: CategoryInnovation, Threshold: 2.50},
}

// fallbackCodeComment is returned for a code absent from the comment table.
// The code space is fully enumerated so this should be unreachable; it
// exists so a table edit can never make scoring panic.
const fallbackCodeComment = "진단 결과에 대한 종합 분석이 필요합니다."

// graphAggregates maps a display factor name to the internal factor names
// it averages. Display names absent from this map match a single internal
// factor by exact name. The map is shared: each variant only contains a
// subset of the listed internal factors and absent names are skipped.
var graphAggregates = map[string][]string{
	"기업의 사회적가치": {"기업의 사회적가치", "사회적가치(다중)", "근로자 보건 및 안전 운영", "사회적 가치 실천_근로자 권리", "사업의 사회적가치"},
	"사회환원":      {"사회환원", "사회환원계획", "사회적이익"},
	"고용":        {"고용", "고용계획", "고용운영"},
	"내부역량향상":    {"내부역량향상", "교육참여", "근로자교육"},
	"사업아이템":     {"사업아이템", "아이템경쟁력", "아이템검증"},
	"경제적성과":     {"경제적성과", "고정매출"},
	"소셜미션":      {"소셜미션", "소셜미션실천"},
	"사업계획수립":    {"성과관리체계", "사업계획수립", "성과관리"},
}
