package svi_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/socialcampus/svi-diagnosis-backend/internal/svi"
)

// allMaxBasic answers every basic question with its highest-scoring option.
func allMaxBasic() svi.Responses {
	return svi.Responses{
		"q1": 4, "q2": 4, "q3": 4,
		"q4": []any{1, 2, 3, 4},
		"q5": 4, "q6": 4, "q7": 4, "q8": 4, "q9": 4,
		"q10": 5, "q11": 6, "q12": 4, "q13": 4,
		"q14": 6, "q15": 4,
		"q16": 5, "q17": 5, "q18": 5,
		"businessExp": "있다",
		"industryExp": "없다",
	}
}

func mustScore(t *testing.T, responses svi.Responses, variant svi.Variant) *svi.Result {
	t.Helper()
	res, err := svi.Score(responses, variant)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	return res
}

func factorByName(t *testing.T, res *svi.Result, name string) svi.FactorScore {
	t.Helper()
	for _, f := range res.FactorScores {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("factor %q not in result", name)
	return svi.FactorScore{}
}

func categoryByName(t *testing.T, res *svi.Result, name string) float64 {
	t.Helper()
	for _, c := range res.CategoryScores {
		if c.Category == name {
			return c.Score
		}
	}
	t.Fatalf("category %q not in result", name)
	return 0
}

func TestScoreUnknownVariant(t *testing.T) {
	if _, err := svi.Score(svi.Responses{}, svi.Variant("extended-svi")); err == nil {
		t.Fatal("expected error for unknown variant")
	}
}

func TestScoreDeterministic(t *testing.T) {
	responses := allMaxBasic()
	a := mustScore(t, responses, svi.VariantBasic)
	b := mustScore(t, responses, svi.VariantBasic)

	aj, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	bj, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(aj, bj) {
		t.Error("identical input produced different serialized results")
	}
}

func TestScoreEmptyResponses(t *testing.T) {
	tests := []struct {
		variant     svi.Variant
		wantFactors int
		wantGraph   int
	}{
		{svi.VariantBasic, 15, 13},
		{svi.VariantAdvanced, 26, 15},
	}
	for _, tt := range tests {
		t.Run(string(tt.variant), func(t *testing.T) {
			res := mustScore(t, svi.Responses{}, tt.variant)

			if got := len(res.FactorScores); got != tt.wantFactors {
				t.Errorf("factor count = %d, want %d", got, tt.wantFactors)
			}
			if got := len(res.GraphFactorScores); got != tt.wantGraph {
				t.Errorf("graph factor count = %d, want %d", got, tt.wantGraph)
			}
			for _, f := range res.FactorScores {
				if f.Score != 0 {
					t.Errorf("factor %q score = %v, want 0", f.Name, f.Score)
				}
			}
			for _, c := range res.CategoryScores {
				if c.Score != 0 {
					t.Errorf("category %q score = %v, want 0", c.Category, c.Score)
				}
			}
			if res.Code != "11111" {
				t.Errorf("code = %q, want 11111", res.Code)
			}
			if res.CodeComment == "" {
				t.Error("code comment is empty")
			}
			for _, g := range res.GraphFactorScores {
				if g.Score != 0 {
					t.Errorf("graph factor %q score = %v, want 0", g.Name, g.Score)
				}
			}
		})
	}
}

func TestScoreBasicAllMax(t *testing.T) {
	res := mustScore(t, allMaxBasic(), svi.VariantBasic)

	for _, c := range res.CategoryScores {
		if c.Score != 5 {
			t.Errorf("category %q score = %v, want 5", c.Category, c.Score)
		}
	}
	for _, p := range res.PerspectiveScores {
		if p.Score != 5 {
			t.Errorf("perspective %q score = %v, want 5", p.Perspective, p.Score)
		}
	}
	if res.Code != "22222" {
		t.Errorf("code = %q, want 22222", res.Code)
	}
	for _, g := range res.GraphFactorScores {
		if g.Score != 5 {
			t.Errorf("graph factor %q score = %v, want 5", g.Name, g.Score)
		}
	}
}

func TestScoreBasicMultiSelect(t *testing.T) {
	tests := []struct {
		name        string
		answer      any
		wantScore   float64
		wantComment string
	}{
		{"two selected", []any{1, 3}, 2.5, "상품 가격 경쟁력을 유지하고 품질보장 방법을 모색해야함"},
		{"all four selected", []any{1, 2, 3, 4}, 5, "지역 자원의 활용도 증대와 지역 사회와의 협력을 강화해야함"},
		{"none selected", []any{}, 0, ""},
		{"missing answer", nil, 0, ""},
		{"not a list", 3, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responses := svi.Responses{}
			if tt.answer != nil {
				responses["q4"] = tt.answer
			}
			res := mustScore(t, responses, svi.VariantBasic)
			f := factorByName(t, res, "사회적가치(다중)")
			if f.Score != tt.wantScore {
				t.Errorf("score = %v, want %v", f.Score, tt.wantScore)
			}
			if f.Comment != tt.wantComment {
				t.Errorf("comment = %q, want %q", f.Comment, tt.wantComment)
			}
		})
	}
}

func TestScoreLikert(t *testing.T) {
	tests := []struct {
		name      string
		answer    any
		wantScore float64
	}{
		{"in range int", 3, 3},
		{"in range float", float64(4), 4},
		{"numeric string", "5", 5},
		{"below range", 0, 0},
		{"above range", 7, 0},
		{"fractional", 2.5, 0},
		{"garbage string", "많이", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustScore(t, svi.Responses{"q16": tt.answer}, svi.VariantBasic)
			f := factorByName(t, res, "성장잠재력")
			if f.Score != tt.wantScore {
				t.Errorf("score = %v, want %v", f.Score, tt.wantScore)
			}
			if tt.wantScore == 0 && f.Comment != "" {
				t.Errorf("comment = %q, want empty", f.Comment)
			}
		})
	}
}

func TestScoreSingleChoiceOutOfRange(t *testing.T) {
	for _, answer := range []any{0, -1, 99, "x", []any{1}} {
		res := mustScore(t, svi.Responses{"q1": answer}, svi.VariantBasic)
		if f := factorByName(t, res, "소셜미션"); f.Score != 0 || f.Comment != "" {
			t.Errorf("answer %v: got score %v comment %q, want 0 and empty", answer, f.Score, f.Comment)
		}
	}
}

func TestScoreCombinedFactors(t *testing.T) {
	// 사회적경제기업 협력 sums q5+q6; 사회환원 averages q8+q9.
	res := mustScore(t, svi.Responses{"q5": 3, "q6": 2, "q8": 3, "q9": 1}, svi.VariantBasic)

	if f := factorByName(t, res, "사회적경제기업 협력"); f.Score != 2 { // 1 + 1
		t.Errorf("sum factor score = %v, want 2", f.Score)
	}
	if f := factorByName(t, res, "사회환원"); f.Score != 2.25 { // (4 + 0.5) / 2
		t.Errorf("average factor score = %v, want 2.25", f.Score)
	}
	// Comments join with a single space, in question order.
	f := factorByName(t, res, "사회적경제기업 협력")
	want := "사회적경제 협력 회원사들과 실질적 협력 방안을 마련하고 사회적경제기업과 거래 조건을 검토하며 협력방안을 논의하고"
	if f.Comment != want {
		t.Errorf("joined comment = %q, want %q", f.Comment, want)
	}
}

func TestScoreCategoryMean(t *testing.T) {
	// Only q14 answered: 재정성과 = (5 + 0) / 2.
	res := mustScore(t, svi.Responses{"q14": 6}, svi.VariantBasic)
	if got := categoryByName(t, res, "재정성과"); got != 2.5 {
		t.Errorf("재정성과 = %v, want 2.5", got)
	}
	// Social perspective averages the three social categories, all 0 here.
	for _, p := range res.PerspectiveScores {
		switch p.Perspective {
		case "사회적성과":
			if p.Score != 0 {
				t.Errorf("사회적성과 = %v, want 0", p.Score)
			}
		case "경제적성과":
			if p.Score != 2.5 {
				t.Errorf("경제적성과 = %v, want 2.5", p.Score)
			}
		}
	}
}

func TestScoreCodeDigits(t *testing.T) {
	// Max out 재정성과 only: code digit 4 flips to '2', the rest stay '1'.
	res := mustScore(t, svi.Responses{"q14": 6, "q15": 4}, svi.VariantBasic)
	if res.Code != "11121" {
		t.Errorf("code = %q, want 11121", res.Code)
	}
	if res.CodeComment == "" {
		t.Error("code comment is empty")
	}
}

func TestScoreAdvancedInnovationBands(t *testing.T) {
	tests := []struct {
		name        string
		selected    int
		wantScore   float64
		wantComment string
	}{
		{"none", 0, 0, "조직의 성장과 경쟁력 확보를 위해 혁신 노력이 절실히 필요함"},
		{"four selected", 4, 1, "조직의 성장과 경쟁력 확보를 위해 혁신 노력이 절실히 필요함"},
		{"ten selected", 10, 2.5, "내외부 혁신 노력으로 조직의 성장과 경쟁력 확보를 하도록 해야함"},
		{"all twenty", 20, 5, "내외부 혁신을 위한 노력이 우수함"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selections := make([]any, tt.selected)
			for i := range selections {
				selections[i] = i + 1
			}
			res := mustScore(t, svi.Responses{"q29": selections}, svi.VariantAdvanced)
			f := factorByName(t, res, "혁신노력")
			if f.Score != tt.wantScore {
				t.Errorf("score = %v, want %v", f.Score, tt.wantScore)
			}
			if f.Comment != tt.wantComment {
				t.Errorf("comment = %q, want %q", f.Comment, tt.wantComment)
			}
		})
	}
}

func TestScoreMultiSelectCap(t *testing.T) {
	// q7 scores 1.25 per selection; over-selection still caps at 5.
	selections := []any{1, 2, 3, 4, 5, 6}
	res := mustScore(t, svi.Responses{"q7": selections}, svi.VariantAdvanced)
	if f := factorByName(t, res, "사업의 사회적가치"); f.Score != 5 {
		t.Errorf("score = %v, want 5 (capped)", f.Score)
	}
}

func TestScoreAdvancedEducationSum(t *testing.T) {
	// 교육참여 sums q17+q18; both maxed is exactly 5.
	res := mustScore(t, svi.Responses{"q17": 4, "q18": 4}, svi.VariantAdvanced)
	if f := factorByName(t, res, "교육참여"); f.Score != 5 {
		t.Errorf("score = %v, want 5", f.Score)
	}
}

func TestScoreGraphAggregates(t *testing.T) {
	// Basic 기업의 사회적가치 bar averages the q3 factor and the q4 factor.
	res := mustScore(t, svi.Responses{"q3": 4, "q4": []any{1}}, svi.VariantBasic)
	for _, g := range res.GraphFactorScores {
		if g.Name == "기업의 사회적가치" {
			if want := (5 + 1.25) / 2; g.Score != want {
				t.Errorf("score = %v, want %v", g.Score, want)
			}
			return
		}
	}
	t.Fatal("기업의 사회적가치 not in graph factors")
}

func TestScoreFactorBounds(t *testing.T) {
	// Every factor of a fully answered advanced submission stays in [0, 5].
	responses := svi.Responses{}
	for _, q := range []string{"q1", "q2", "q3", "q4", "q5", "q8", "q9", "q10",
		"q11", "q12", "q13", "q14", "q15", "q16", "q17", "q18", "q20", "q21", "q23"} {
		responses[q] = 3
	}
	for _, q := range []string{"q19", "q24", "q25", "q26", "q27", "q28"} {
		responses[q] = 5
	}
	responses["q6"] = []any{1, 2, 3, 4, 5, 6}
	responses["q7"] = []any{1, 2, 3, 4}
	responses["q22"] = []any{1, 2, 3}
	responses["q29"] = []any{1, 2, 3, 4, 5, 6, 7, 8}

	res := mustScore(t, responses, svi.VariantAdvanced)
	for _, f := range res.FactorScores {
		if f.Score < 0 || f.Score > 5 {
			t.Errorf("factor %q score %v outside [0, 5]", f.Name, f.Score)
		}
	}
	for _, c := range res.CategoryScores {
		if c.Score < 0 || c.Score > 5 {
			t.Errorf("category %q score %v outside [0, 5]", c.Category, c.Score)
		}
	}
}

func TestScoreJSONShape(t *testing.T) {
	res := mustScore(t, allMaxBasic(), svi.VariantBasic)
	raw, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"variant", "factorScores", "categoryScores",
		"perspectiveScores", "code", "codeComment", "graphFactorScores"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("serialized result missing %q", key)
		}
	}
}
