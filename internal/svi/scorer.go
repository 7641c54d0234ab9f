package svi

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ─────────────────────────── INPUT / OUTPUT ───────────────────────────

// Responses is the raw answer map as submitted, question id → answer.
// Values arrive through JSON so their dynamic types are loose: numbers may
// be float64 or json.Number, selections may be []any. The scorer coerces
// defensively and treats anything it cannot read as unanswered.
type Responses map[string]any

// FactorScore is one scored factor with its narrative fragment.
type FactorScore struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Perspective string  `json:"perspective"`
	Score       float64 `json:"score"`
	Comment     string  `json:"comment"`
}

// CategoryScore is the mean of a category's factors.
type CategoryScore struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// PerspectiveScore is one of the three report perspectives.
type PerspectiveScore struct {
	Perspective string  `json:"perspective"`
	Score       float64 `json:"score"`
}

// GraphFactorScore is one bar of the report chart, in display order.
type GraphFactorScore struct {
	Group string  `json:"group"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Result is the complete derived output for one submission. All slices are
// in declared table order, so marshaling a Result is byte-stable for a
// given (responses, variant) pair.
type Result struct {
	Variant           Variant            `json:"variant"`
	FactorScores      []FactorScore      `json:"factorScores"`
	CategoryScores    []CategoryScore    `json:"categoryScores"`
	PerspectiveScores []PerspectiveScore `json:"perspectiveScores"`
	Code              string             `json:"code"`
	CodeComment       string             `json:"codeComment"`
	GraphFactorScores []GraphFactorScore `json:"graphFactorScores"`
}

// ─────────────────────────── ENTRY POINT ───────────────────────────

// Score derives the full diagnostic result for a raw response map. It is
// pure and deterministic: the same responses and variant always produce an
// identical Result. Missing or malformed answers degrade to score 0; the
// only error condition is an unknown variant.
func Score(responses Responses, variant Variant) (*Result, error) {
	cfg, err := ConfigFor(variant)
	if err != nil {
		return nil, err
	}

	factors := make([]FactorScore, 0, len(cfg.Factors))
	for _, def := range cfg.Factors {
		factors = append(factors, scoreFactor(cfg, def, responses))
	}

	categories := categoryScores(cfg, factors)
	code := diagnosticCode(categories)

	return &Result{
		Variant:           variant,
		FactorScores:      factors,
		CategoryScores:    categories,
		PerspectiveScores: perspectiveScores(categories),
		Code:              code,
		CodeComment:       codeComment(cfg, code),
		GraphFactorScores: graphFactorScores(cfg, factors),
	}, nil
}

// ─────────────────────────── QUESTION SCORING ───────────────────────────

// scoreQuestion resolves one question's raw answer to a (score, comment)
// pair. Unanswered or unreadable answers score 0 with an empty comment.
func scoreQuestion(cfg *VariantConfig, q string, raw any) (float64, string) {
	table := cfg.Scoring[q]
	switch cfg.kindOf(q) {
	case KindMultiSelect:
		count := selectionCount(raw)
		if count == 0 {
			return 0, ""
		}
		score := float64(count) * cfg.PerUnit[q]
		if score > 5 {
			score = 5
		}
		comment := ""
		if len(table) > 0 {
			i := count
			if i > len(table) {
				i = len(table)
			}
			comment = table[i-1].Comment
		}
		return score, comment

	case KindLikert:
		v, ok := asInt(raw)
		if !ok {
			return 0, ""
		}
		for _, entry := range table {
			if entry.Score == float64(v) {
				return entry.Score, entry.Comment
			}
		}
		// A value outside the declared scale is treated as unanswered.
		return 0, ""

	case KindBinary:
		return 0, ""

	default: // single choice: 1-based index into the table
		idx, ok := asInt(raw)
		if !ok || idx < 1 || idx > len(table) {
			return 0, ""
		}
		entry := table[idx-1]
		return entry.Score, entry.Comment
	}
}

// scoreFactor combines a factor's question scores per its calc type and
// joins the non-empty comments with single spaces.
func scoreFactor(cfg *VariantConfig, def FactorDef, responses Responses) FactorScore {
	var (
		total    float64
		comments []string
	)
	for _, q := range def.Questions {
		score, comment := scoreQuestion(cfg, q, responses[q])
		total += score
		if comment != "" {
			comments = append(comments, comment)
		}
	}

	score := total
	if def.Calc == CalcAverage && len(def.Questions) > 0 {
		score = total / float64(len(def.Questions))
	}

	fs := FactorScore{
		Name:        def.Name,
		Category:    def.Category,
		Perspective: def.Perspective,
		Score:       score,
		Comment:     strings.Join(comments, " "),
	}

	if cfg.Variant == VariantAdvanced && def.Name == innovationEffortFactor {
		fs.Comment = innovationBandComment(fs.Score)
	}
	return fs
}

// innovationBandComment maps the 혁신노력 factor score to its band comment:
// the first band whose upper bound covers the score, or the top band.
func innovationBandComment(score float64) string {
	for _, band := range innovationBands {
		if score <= band.Score {
			return band.Comment
		}
	}
	return innovationBands[len(innovationBands)-1].Comment
}

// ─────────────────────────── AGGREGATION ───────────────────────────

// categoryScores averages each category's factors in fixed category order.
// A category with no factors scores 0.
func categoryScores(cfg *VariantConfig, factors []FactorScore) []CategoryScore {
	out := make([]CategoryScore, 0, len(Categories))
	for _, cat := range Categories {
		var sum float64
		var n int
		for _, f := range factors {
			if f.Category == cat {
				sum += f.Score
				n++
			}
		}
		score := 0.0
		if n > 0 {
			score = sum / float64(n)
		}
		out = append(out, CategoryScore{Category: cat, Score: score})
	}
	return out
}

// perspectiveScores derives the three report perspectives from the category
// scores: social = mean of the first three categories, economic = 재정성과,
// innovation = 기업혁신.
func perspectiveScores(categories []CategoryScore) []PerspectiveScore {
	byName := make(map[string]float64, len(categories))
	for _, c := range categories {
		byName[c.Category] = c.Score
	}
	social := (byName[CategoryOrgMission] + byName[CategoryBizActivity] + byName[CategoryOrgOps]) / 3
	return []PerspectiveScore{
		{Perspective: PerspectiveSocial, Score: social},
		{Perspective: PerspectiveEconomic, Score: byName[CategoryFinance]},
		{Perspective: PerspectiveInnovation, Score: byName[CategoryInnovation]},
	}
}

// diagnosticCode emits one digit per category in threshold order: '2' at or
// above the cut-off, '1' below it.
func diagnosticCode(categories []CategoryScore) string {
	byName := make(map[string]float64, len(categories))
	for _, c := range categories {
		byName[c.Category] = c.Score
	}
	var b strings.Builder
	b.Grow(len(codeThresholds))
	for _, t := range codeThresholds {
		if byName[t.Category] >= t.Threshold {
			b.WriteByte('2')
		} else {
			b.WriteByte('1')
		}
	}
	return b.String()
}

func codeComment(cfg *VariantConfig, code string) string {
	if c, ok := cfg.CodeComments[code]; ok {
		return c
	}
	return fallbackCodeComment
}

// graphFactorScores projects internal factors onto the display list. A
// display name with an aggregate group averages the group members present
// in this variant; otherwise it matches an internal factor by exact name.
func graphFactorScores(cfg *VariantConfig, factors []FactorScore) []GraphFactorScore {
	byName := make(map[string]float64, len(factors))
	for _, f := range factors {
		byName[f.Name] = f.Score
	}

	out := make([]GraphFactorScore, 0, len(cfg.GraphFactors))
	for _, gf := range cfg.GraphFactors {
		score := 0.0
		if members, ok := graphAggregates[gf.Name]; ok {
			var sum float64
			var n int
			for _, m := range members {
				if s, present := byName[m]; present {
					sum += s
					n++
				}
			}
			if n > 0 {
				score = sum / float64(n)
			}
		} else if s, ok := byName[gf.Name]; ok {
			score = s
		}
		out = append(out, GraphFactorScore{Group: gf.Group, Name: gf.Name, Score: score})
	}
	return out
}

// ─────────────────────────── COERCION ───────────────────────────

// asInt reads an integral answer from the loose dynamic types JSON decoding
// produces. Fractional floats, unparsable strings, and foreign types all
// report false.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// selectionCount reads the number of selected options from a multi-select
// answer. Non-slice answers count as no selection.
func selectionCount(v any) int {
	switch s := v.(type) {
	case []any:
		return len(s)
	case []string:
		return len(s)
	case []int:
		return len(s)
	case []float64:
		return len(s)
	default:
		return 0
	}
}
