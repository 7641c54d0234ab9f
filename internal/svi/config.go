// Package svi implements the deterministic scoring engine for the SVI
// self-assessment questionnaire. Raw responses go in, a fully derived
// Result comes out: per-factor scores with narrative comments, category
// and perspective aggregates, the 5-character diagnostic code with its
// canned paragraph, and the display-oriented graph-factor projection.
//
// The package is intentionally dependency-free: it imports nothing from
// internal/ and can be tested without a database. All lookup tables are
// process-wide constants mirrored from the questionnaire's Excel-based
// scoring sheets.
package svi

import "fmt"

// Variant selects which of the two questionnaire forms is in effect. It
// determines the active scoring table, factor set, graph-factor list, and
// code-comment table. The string values match the survey frontend so they
// can be round-tripped through JSON without conversion.
type Variant string

const (
	VariantBasic    Variant = "basic-svi"    // 기초진단: q1–q18
	VariantAdvanced Variant = "advanced-svi" // 심화진단: q1–q29
)

// QuestionKind tags how a question's raw answer is scored. Kinds are
// resolved once at config-build time so the scorer never has to infer a
// question's type from the runtime shape of its answer.
type QuestionKind string

const (
	// KindSingleChoice answers are a 1-based index into the question's
	// ordered score table.
	KindSingleChoice QuestionKind = "singleChoice"

	// KindMultiSelect answers are a set of selected option indices; the
	// score is count × per-unit value, capped at 5.
	KindMultiSelect QuestionKind = "multiSelect"

	// KindLikert answers are an integer on the 1–5 scale, matched against
	// the table entry with that exact score.
	KindLikert QuestionKind = "likert"

	// KindBinary answers are one of two fixed string literals (있다/없다).
	// Binary questions are informational only and never contribute a score.
	KindBinary QuestionKind = "binary"
)

// CalcType declares how a factor combines its question scores.
type CalcType string

const (
	CalcLookup      CalcType = "lookup"
	CalcLikert      CalcType = "likert"
	CalcMultiSelect CalcType = "multiselect"
	CalcSum         CalcType = "sum"
	CalcAverage     CalcType = "average"

	// CalcCombined is treated identically to CalcSum. The source scoring
	// sheet names the q8+q9 combination separately but never gave it
	// different semantics; see DESIGN.md.
	CalcCombined CalcType = "combined"
)

// ScoreComment is one entry of a per-question score table: "if you picked
// option i (or selected i options), you get this score and this narrative
// fragment". Entries are immutable and indexed by position.
type ScoreComment struct {
	Score   float64 `json:"score"`
	Comment string  `json:"comment"`
}

// FactorDef declares a factor: its constituent questions, where it rolls
// up to, and how its question scores are combined.
type FactorDef struct {
	Name        string
	Category    string
	Perspective string
	Questions   []string
	Calc        CalcType
}

// GraphFactorDef is one entry of the fixed, display-facing factor list
// used by the report's bar chart.
type GraphFactorDef struct {
	Group string // category name
	Name  string // display factor name
}

// CategoryThreshold pairs a category with the cut-off used for the
// diagnostic code. Thresholds are shared by both variants.
type CategoryThreshold struct {
	Category  string
	Threshold float64
}

// VariantConfig bundles everything variant-specific the pipeline needs.
// Both variants share identical pipeline logic; only the bundle differs.
type VariantConfig struct {
	Variant Variant

	// Scoring maps question id → ordered score table.
	Scoring map[string][]ScoreComment

	// Kinds maps question id → how its answer is scored. Questions absent
	// from this map are single-choice.
	Kinds map[string]QuestionKind

	// PerUnit maps a multi-select question id → the score value of one
	// selected option (e.g. 1.25 for a 4-option question scaled to 5).
	PerUnit map[string]float64

	// Factors in declared order. Output ordering follows this slice.
	Factors []FactorDef

	// GraphFactors in declared display order: 13 for basic, 15 for advanced.
	GraphFactors []GraphFactorDef

	// CodeComments maps each of the 32 diagnostic codes to its paragraph.
	CodeComments map[string]string
}

// ConfigFor returns the immutable configuration bundle for a variant.
// An unrecognised variant is a caller error, not a scoring condition.
func ConfigFor(v Variant) (*VariantConfig, error) {
	switch v {
	case VariantBasic:
		return basicConfig, nil
	case VariantAdvanced:
		return advancedConfig, nil
	default:
		return nil, fmt.Errorf("svi: unknown variant %q", v)
	}
}

// kindOf resolves a question's kind, defaulting to single-choice.
func (c *VariantConfig) kindOf(q string) QuestionKind {
	if k, ok := c.Kinds[q]; ok {
		return k
	}
	return KindSingleChoice
}

// Validate checks the internal consistency of the bundle: every factor
// question has a score table (except multi-select questions, whose tables
// may be shorter than their option count or empty), every multi-select
// question has a per-unit value, and the code-comment table covers the
// full 2^5 code space. Call once at startup or from tests, not per request.
func (c *VariantConfig) Validate() error {
	for _, f := range c.Factors {
		if len(f.Questions) == 0 {
			return fmt.Errorf("svi: factor %q has no questions", f.Name)
		}
		switch f.Calc {
		case CalcLookup, CalcLikert, CalcMultiSelect:
			if len(f.Questions) != 1 {
				return fmt.Errorf("svi: factor %q: calc %q takes exactly one question, got %d",
					f.Name, f.Calc, len(f.Questions))
			}
		case CalcSum, CalcAverage, CalcCombined:
			if len(f.Questions) < 2 {
				return fmt.Errorf("svi: factor %q: calc %q combines multiple questions, got %d",
					f.Name, f.Calc, len(f.Questions))
			}
		default:
			return fmt.Errorf("svi: factor %q: unknown calc type %q", f.Name, f.Calc)
		}
		for _, q := range f.Questions {
			kind := c.kindOf(q)
			if kind == KindMultiSelect {
				if c.PerUnit[q] <= 0 {
					return fmt.Errorf("svi: multi-select question %q has no per-unit value", q)
				}
				continue
			}
			if kind == KindBinary {
				return fmt.Errorf("svi: binary question %q referenced by factor %q", q, f.Name)
			}
			if len(c.Scoring[q]) == 0 {
				return fmt.Errorf("svi: question %q referenced by factor %q has no score table", q, f.Name)
			}
		}
	}
	if n := len(c.CodeComments); n != 32 {
		return fmt.Errorf("svi: code-comment table has %d entries, want 32", n)
	}
	for code := range c.CodeComments {
		if len(code) != 5 {
			return fmt.Errorf("svi: malformed code %q in comment table", code)
		}
	}
	return nil
}
