package svi

// 기초진단 (basic variant) lookup data. Scores and comments are transcribed
// from the Excel-based scoring sheet; do not edit without regenerating from
// the sheet.

var basicScoring = map[string][]ScoreComment{
	"q1": {
		{Score: 0.5, Comment: "해결하고자 하는 사회적문제를 명확히 정의하고"},
		{Score: 1, Comment: "사회적문제 해결을 위한 구체적인 해결 계획을 수립하고"},
		{Score: 4, Comment: "사회적문제 해결을 위한 계획과 목표달성을 위한 세부전략을 마련하고"},
		{Score: 5, Comment: "사회적문제 해결을 위한 시도의 결과를 분석하며 개선점을 도출하고"},
	},
	"q2": {
		{Score: 0.5, Comment: "사업계획 목표와 전략을 명확히 문서화하여 공유해야할 필요있음"},
		{Score: 1, Comment: "사업계획을 팀원과 공유하며 주기적으로 검토해야함"},
		{Score: 4, Comment: "사업계획 내 성과 지표를 설정하며 목표 달성을 위한 실행 계획수립을 권장함"},
		{Score: 5, Comment: "사업성과를 정기적으로 평가하며 피드백을 통해 계획을 보완하여야함"},
	},
	"q3": {
		{Score: 0.5, Comment: "업무재해 위험 요소를 파악하여 안전 교육을 실시하고"},
		{Score: 1, Comment: "근로자를 위한 업무재해 위험요소의 대비책 마련을 하고"},
		{Score: 4, Comment: "근로자 안전을 위한 체계적인 교육 시스템을 구축하고"},
		{Score: 5, Comment: "근로자 안전을 위한 안전 문화를 정착시키고"},
	},
	// q4 is multi-select: score = count × 1.25, comment keyed by count.
	"q4": {
		{Score: 1.25, Comment: "상품의 차별성을 강조하며 마케팅 전략을 강화해야함"},
		{Score: 2.5, Comment: "상품 가격 경쟁력을 유지하고 품질보장 방법을 모색해야함"},
		{Score: 3.75, Comment: "지속적인 취약계층의 고용을 유지하길 권장함"},
		{Score: 5, Comment: "지역 자원의 활용도 증대와 지역 사회와의 협력을 강화해야함"},
	},
	"q5": {
		{Score: 0, Comment: "사회적경제 협력활동 관련정보를 조사하며 참여기회를 찾고"},
		{Score: 0.5, Comment: "사회적경제 협력활동 모임에 적극참여하며 협력기회를 모색하고"},
		{Score: 1, Comment: "사회적경제 협력 회원사들과 실질적 협력 방안을 마련하고"},
		{Score: 1.5, Comment: "사회적경제기업과 협력사업을 확대하며 지속가능한 관계를 구축하고"},
	},
	"q6": {
		{Score: 0.5, Comment: "사회적경제기업 관련 기업을 조사하며 거래 기회를 찾아"},
		{Score: 1, Comment: "사회적경제기업과 거래 조건을 검토하며 협력방안을 논의하고"},
		{Score: 2, Comment: "사회적경제기업과 협력사례를 분석하며 추가 협력방안을 모색하고"},
		{Score: 3.5, Comment: "사회적경제기업과 협력 성과를 평가하며 지속가능한 관계를 유지하고"},
	},
	"q7": {
		{Score: 0.5, Comment: "지역기업과의 거래를 우선하여 지역경제 활성화에 기여해야함"},
		{Score: 1, Comment: "지역기업과의 구체적인 계획을 수립하며 협력을 강화해야함"},
		{Score: 4, Comment: "지역거래 기업과의 관계를 지속적으로 발전시키길 권장함"},
		{Score: 5, Comment: "추가적으로 지역사회에 기여하는 방안을 모색해야함"},
	},
	"q8": {
		{Score: 0.5, Comment: "(예비)사회적기업 인지정 요건으로 사회적환원 필요성을 인지하고"},
		{Score: 1, Comment: "사회적환원 범위에 대한 내용을 인지하고 계획을 수립하고"},
		{Score: 4, Comment: "사회적환원 비율을 높이기위한 계획 수립과 실행을하고"},
		{Score: 5, Comment: "사회적 환원 활동의 효과를 평가해 향후 환원 계획을 수립해야함"},
	},
	"q9": {
		{Score: 0.5, Comment: "사회서비스 제공을 위해 자원과 인력 확보 방안 모색해야함"},
		{Score: 1, Comment: "사회서비스 제공 계획을 실행 가능 방안을 마련해야함"},
		{Score: 4, Comment: "정기적 사회서비스 제공 활동으로 지속적 지원체계를 구축해야함"},
		{Score: 5, Comment: "사회서비스 제공 성과 개선 방안 도출이 필요함"},
	},
	"q10": {
		{Score: 0.5, Comment: "이사회 또는 운영위원회를 조속히 구성하여 운영 방안을 마련하고"},
		{Score: 1, Comment: "정기적인 회의를 통해 의사결정 과정을 투명하게 운영하고"},
		{Score: 2, Comment: "최소 반기별 1회를 정기적인 의사결정기구를 운영하고"},
		{Score: 3, Comment: "의사결정기구 회의결과를 근로자에게 공유해야하고"},
		{Score: 5, Comment: "근로자들이 회의결과에 대해 의견을 제시할 수 있는 기회를 제공하고"},
	},
	"q11": {
		{Score: 0.5, Comment: "고용 계획 수립과 인력확보 방안 모색이 필요함"},
		{Score: 1, Comment: "구체적인 고용 계획 실행방안이 필요함"},
		{Score: 2, Comment: "고용 계획수립과 인력확보 방안을 모색해야함"},
		{Score: 3, Comment: "구체적인 고용 계획 수립과 실천노력이 필요함"},
		{Score: 4, Comment: "지속적인 고용유지와 확대를 위한 노력을 권장함"},
		{Score: 5, Comment: "향후 인력 관리체계를 수립하길 권장함"},
	},
	"q12": {
		{Score: 0, Comment: "법정의무교육 정보를 찾아서 교육계획을 수립하고"},
		{Score: 0.5, Comment: "구체적인 법정의무교육계획을 수립하고"},
		{Score: 1, Comment: "법정의무교육을 실시하며 추가교육 계획을 수립하고"},
		{Score: 1.5, Comment: "이슈현황을 문서화하여 체계적으로 관리하고"},
	},
	"q13": {
		{Score: 0, Comment: "대표자가 교육을 적극적으로 찾고 참여해야함"},
		{Score: 1, Comment: "대표자의 지속적인 학습을 위해 노력해야함"},
		{Score: 2, Comment: "대표자가 교육내용을 기업에 적용할 수 있도록함"},
		{Score: 3.5, Comment: "대표자의 교육수료 내용을 구성원들과 공유하길 권장함"},
	},
	"q14": {
		{Score: 0.5, Comment: "사업의 내용을 명확히 정의하고"},
		{Score: 1, Comment: "제품/서비스 프로토타입 제작과 테스트를 실시하며 개선하고"},
		{Score: 2, Comment: "제품/서비스 안정적인 공급망을 유지하며 품질관리를 위해 노력하고"},
		{Score: 3, Comment: "제품/서비스 품질을 지속적으로 개선하고"},
		{Score: 4, Comment: "제품/서비스 유통 경로를 다각화고"},
		{Score: 5, Comment: "제품/서비스의 수익성을 극대화하고"},
	},
	"q15": {
		{Score: 0.5, Comment: "지원사업 정보도 관심을 갖기를 권함"},
		{Score: 1, Comment: "지원사업신청에 집중을 권장함"},
		{Score: 4, Comment: "지원사업 경험을 바탕으로 지속 가능한 수익모델을 개발해야함"},
		{Score: 5, Comment: "지원사업 종료 후의 후속사업을 준비해야함"},
	},
	// q16–q18 are Likert 1–5: the answer is matched against the entry with
	// that exact score.
	"q16": {
		{Score: 1, Comment: "실패 사례를 분석하여 새로운 시도의 방향성을 설정하고"},
		{Score: 2, Comment: "외부 전문가 컨설팅을 통해 전략점검/개선 방안을 모색하고"},
		{Score: 3, Comment: "새로운 아이디어를 제안하는 시스템을 도입하여 직원들의 참여를 유도하고"},
		{Score: 4, Comment: "정기적인 내부 교육과 워크숍을 통해 직원들의 역량을 지속적으로 강화하고"},
		{Score: 5, Comment: "혁신적인 프로젝트를 통해 새로운 시장 진입을 적극적으로 시도하고"},
	},
	"q17": {
		{Score: 1, Comment: "경쟁사의 성공 사례를 벤치마킹하여 전략을 수립하고"},
		{Score: 2, Comment: "경쟁사와의 비교 분석을 통해 자사 제품의 차별성을 강조하는 마케팅 전략을 수립하고"},
		{Score: 3, Comment: "정기적으로 경쟁사 모니터링을 실시하여 시장 변화에 신속하게 대응하고"},
		{Score: 4, Comment: "정기적으로 경쟁사 모니터링을 실시하여 시장 변화에 신속하게 대응하고"},
		{Score: 5, Comment: "정기적으로 경쟁사 모니터링을 실시하여 시장 변화에 신속하게 대응하고"},
	},
	"q18": {
		{Score: 1, Comment: "업계 전문가와의 네트워킹 등을 통해 최신 정보를 지속적으로 확보한다"},
		{Score: 2, Comment: "업계 전문가와의 네트워킹 등을 통해 최신 정보를 지속적으로 확보한다"},
		{Score: 3, Comment: "기업 내부에서 대외환경 변화에 대한 의견을 수렴하고 논의한다"},
		{Score: 4, Comment: "점검, 분석결과를 통해 대응방안을 마련한다"},
		{Score: 5, Comment: "점검, 분석결과를 통해 대응방안을 마련한다"},
	},
}

var basicFactors = []FactorDef{
	{Name: "소셜미션", Category: CategoryOrgMission, Perspective: PerspectiveSocial, Questions: []string{"q1"}, Calc: CalcLookup},
	{Name: "성과관리체계", Category: CategoryOrgMission, Perspective: PerspectiveSocial, Questions: []string{"q2"}, Calc: CalcLookup},
	{Name: "기업의 사회적가치", Category: CategoryBizActivity, Perspective: PerspectiveSocial, Questions: []string{"q3"}, Calc: CalcLookup},
	{Name: "사회적가치(다중)", Category: CategoryBizActivity, Perspective: PerspectiveSocial, Questions: []string{"q4"}, Calc: CalcMultiSelect},
	{Name: "사회적경제기업 협력", Category: CategoryBizActivity, Perspective: PerspectiveSocial, Questions: []string{"q5", "q6"}, Calc: CalcSum},
	{Name: "지역협력", Category: CategoryBizActivity, Perspective: PerspectiveSocial, Questions: []string{"q7"}, Calc: CalcLookup},
	{Name: "사회환원", Category: CategoryBizActivity, Perspective: PerspectiveSocial, Questions: []string{"q8", "q9"}, Calc: CalcAverage},
	{Name: "조직 거버넌스", Category: CategoryOrgOps, Perspective: PerspectiveSocial, Questions: []string{"q10"}, Calc: CalcLookup},
	{Name: "고용", Category: CategoryOrgOps, Perspective: PerspectiveSocial, Questions: []string{"q11"}, Calc: CalcLookup},
	{Name: "내부역량향상", Category: CategoryOrgOps, Perspective: PerspectiveSocial, Questions: []string{"q12", "q13"}, Calc: CalcSum},
	{Name: "비즈니스모델", Category: CategoryFinance, Perspective: PerspectiveEconomic, Questions: []string{"q14"}, Calc: CalcLookup},
	{Name: "경제적성과", Category: CategoryFinance, Perspective: PerspectiveEconomic, Questions: []string{"q15"}, Calc: CalcLookup},
	{Name: "성장잠재력", Category: CategoryInnovation, Perspective: PerspectiveInnovation, Questions: []string{"q16"}, Calc: CalcLikert},
	{Name: "사업아이템", Category: CategoryInnovation, Perspective: PerspectiveInnovation, Questions: []string{"q17"}, Calc: CalcLikert},
	{Name: "시장분석", Category: CategoryInnovation, Perspective: PerspectiveInnovation, Questions: []string{"q18"}, Calc: CalcLikert},
}

// basicGraphFactors is the 13-entry bar-chart list for the basic report.
var basicGraphFactors = []GraphFactorDef{
	{Group: CategoryOrgMission, Name: "소셜미션"},
	{Group: CategoryOrgMission, Name: "성과관리체계"},
	{Group: CategoryBizActivity, Name: "기업의 사회적가치"},
	{Group: CategoryBizActivity, Name: "사회적경제기업 협력"},
	{Group: CategoryBizActivity, Name: "지역협력"},
	{Group: CategoryBizActivity, Name: "사회환원"},
	{Group: CategoryOrgOps, Name: "조직 거버넌스"},
	{Group: CategoryOrgOps, Name: "고용"},
	{Group: CategoryOrgOps, Name: "내부역량향상"},
	{Group: CategoryFinance, Name: "비즈니스모델"},
	{Group: CategoryFinance, Name: "경제적성과"},
	{Group: CategoryInnovation, Name: "성장잠재력"},
	{Group: CategoryInnovation, Name: "사업아이템"},
}

var basicCodeComments = map[string]string{
	"22222": "전 영역이 고르게 우수합니다. 현재의 균형잡힌 발전 전략을 지속하면서, 사회적 가치와 경제적 성과의 시너지를 더욱 강화하시기 바랍니다. 타기업과의 협업을 증진시키고 성과 공유를 통해 기업 전체의 목표를 통합적으로 달성할 수 있는 환경을 조성해야 합니다. 또한 정기적인 성과 평가를 통해 지속 가능한 발전을 도모하고 사회적 책임을 다하는 기업으로 나아가야 합니다.",
	"22122": "조직운영 체계 보완이 필요합니다. 근로자 권익보호와 민주적 의사결정 구조 강화를 통해 사회적 가치 실현의 완성도를 높이시기 바랍니다.",
	"21222": "사업활동 영역 강화가 필요합니다. 사회적 가치 창출을 위한 구체적 사업계획 수립과 실행방안 모색이 요구됩니다.",
	"21122": "사업활동과 조직운영이 취약합니다. 사회적 미션은 명확하나 이를 실현하기 위한 구체적 실행체계 구축이 시급합니다.",
	"12222": "소셜미션 구체화가 필요합니다. 사업성과는 우수하나, 해결하고자 하는 사회문제와 그 해결방안을 더욱 명확히 하시기 바랍니다.",
	"12122": "조직 미션과 운영체계 보완이 필요합니다. 사업성과는 우수하나 사회적 가치 지향성 강화와 내부 운영시스템 개선이 요구됩니다.",
	"11222": "소셜미션 구체화와 사업활동 보완이 필요합니다. 경제적 성과는 우수하나 사회적 가치 창출 방안을 구체화하시기 바랍니다.",
	"11122": "사회적 가치 영역 전반의 보완이 필요합니다. 경제적 및 혁신 성과는 우수하나 사회적기업으로서의 기본 요건 강화가 시급합니다.",
	"22221": "혁신성과 제고가 필요합니다. 사회적·경제적 성과는 우수하나 지속가능한 성장을 위한 혁신 노력 강화가 요구됩니다.",
	"22121": "조직운영과 혁신성과 개선이 필요합니다. 시장환경 변화에 대응할 수 있는 조직체계 구축과 혁신역량 강화가 요구됩니다.",
	"21221": "사업활동과 혁신성과 개선이 필요합니다. 사회가치 실현을 위한 사업모델 혁신과 새로운 시도가 요구됩니다.",
	"21121": "사업운영 전반의 혁신이 필요합니다. 소셜미션 실현을 위한 조직운영 체계 개선과 혁신적 사업방식 도입이 요구됩니다.",
	"12221": "미션 구체화와 혁신역량 강화가 필요합니다. 안정적 사업기반 위에 사회적 가치 창출을 위한 혁신적 접근이 요구됩니다.",
	"12121": "조직 미션·운영과 혁신역량 강화가 필요합니다. 경제적 성과를 사회적 가치로 연계하는 혁신적 방안 모색이 요구됩니다.",
	"11221": "사회적가치 창출 기반 강화가 필요합니다. 조직운영은 양호하나 사회적 미션 구체화와 혁신적 사업방식 도입이 요구됩니다.",
	"11121": "사회적 가치 영역 전반의 혁신이 필요합니다. 경제적 성과를 사회적 가치로 전환하는 혁신적 사업모델 구축이 시급합니다.",
	"22212": "경제적 성과 제고가 필요합니다. 사회적 가치 실현 기반은 우수하나 수익모델 강화와 시장 확대가 요구됩니다.",
	"22112": "조직운영과 경제적 성과 개선이 필요합니다. 혁신역량을 경제적 성과로 연계하는 사업전략 수립이 요구됩니다.",
	"21212": "사업활동과 경제적 성과 개선이 필요합니다. 혁신적 시도를 실질적 매출성과로 연계하는 방안 모색이 시급합니다.",
	"21112": "사업운영과 경제성과 개선이 필요합니다. 혁신역량을 활용한 수익모델 구체화와 시장 확대 전략 수립이 요구됩니다.",
	"12212": "소셜미션 구체화와 경제적 성과 개선이 필요합니다. 혁신역량을 활용한 안정적 수익구조 확보가 시급합니다.",
	"12112": "조직 미션·운영 체계와 경제적 성과 개선이 필요합니다. 혁신역량의 경제적 성과 연계가 요구됩니다.",
	"11212": "사업활동 강화와 경제적 성과 개선이 필요합니다. 혁신역량을 활용한 실질적 매출 증대 방안 수립이 시급합니다.",
	"11112": "사회적 가치 기반 강화와 경제적 성과 개선이 필요합니다. 혁신역량을 활용한 수익모델 확립이 시급합니다.",
	"22211": "경영역량 강화가 시급합니다. 사회적 가치 기반은 우수하나 지속가능성 확보를 위한 경영/혁신 역량 강화가 필요합니다.",
	"22111": "조직운영과 경영역량 강화가 시급합니다. 체계적 운영시스템 구축과 경영/혁신 역량 확보가 요구됩니다.",
	"21211": "사업활동과 경영역량 강화가 시급합니다. 실행가능한 사업계획 수립과 혁신역량 확보가 요구됩니다.",
	"21111": "전반적인 역량 강화가 시급합니다. 소셜미션 외 사업운영 전반의 체계적 관리와 혁신역량 확보가 필요합니다.",
	"12211": "소셜미션과 경영역량 강화가 시급합니다. 사업활동은 양호하나 지속가능한 성장을 위한 전반적 역량 강화가 필요합니다.",
	"12111": "전반적인 역량 강화가 시급합니다. 사회적 가치 실현을 위한 조직 역량과 경영/혁신 역량 확보가 필요합니다.",
	"11211": "사업활동과 경영역량 강화가 시급합니다. 조직운영은 양호하나 지속가능한 성장을 위한 역량 강화가 필요합니다.",
	"11111": "전 영역의 체계적 역량 강화가 시급합니다. 사회적기업으로서 기본 요건부터 단계적 보완이 필요합니다. (예비)사회적기업 요건을 준수하여 기업 운영 구조를 만들고 지속 가능한 비즈니스 모델을 개발하여 지역 사회와의 상생을 도모함으로써 장기적인 성장 기반을 마련해야 합니다.",
}

var basicConfig = &VariantConfig{
	Variant: VariantBasic,
	Scoring: basicScoring,
	Kinds: map[string]QuestionKind{
		"q4":          KindMultiSelect,
		"q16":         KindLikert,
		"q17":         KindLikert,
		"q18":         KindLikert,
		"businessExp": KindBinary,
		"industryExp": KindBinary,
	},
	PerUnit: map[string]float64{
		"q4": 1.25, // 4 options scaled to max 5
	},
	Factors:      basicFactors,
	GraphFactors: basicGraphFactors,
	CodeComments: basicCodeComments,
}
