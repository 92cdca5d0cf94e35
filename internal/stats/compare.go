package stats

import "stancelab/internal/dataset"

// MaxDisagreementExamples caps how many disagreements a comparison reports.
const MaxDisagreementExamples = 10

// Disagreement is one text the two models labeled differently.
type Disagreement struct {
	Text         string
	LabelA       string
	LabelB       string
	ExplanationA string
	ExplanationB string
}

// Comparison reports agreement between two models' result sets.
type Comparison struct {
	Joint         int // texts present in both sets
	Agreements    int
	AgreementRate float64 // percentage of Joint
	Disagreements []Disagreement
}

// CompareModels joins two result sets by text and measures label agreement.
// Texts present in only one set are excluded from the denominator. Duplicate
// texts within a set collide in the join map; the last occurrence wins. Up
// to MaxDisagreementExamples disagreements are returned for inspection.
func CompareModels(resultsA, resultsB []dataset.LabeledResult) Comparison {
	byText := make(map[string]dataset.LabeledResult, len(resultsB))
	for _, r := range resultsB {
		byText[r.Text] = r
	}

	var cmp Comparison
	for _, a := range resultsA {
		b, ok := byText[a.Text]
		if !ok {
			continue
		}
		labelA := normalize(a.LLMLabel)
		labelB := normalize(b.LLMLabel)
		if labelA == "" || labelB == "" {
			continue
		}

		cmp.Joint++
		if labelA == labelB {
			cmp.Agreements++
			continue
		}
		if len(cmp.Disagreements) < MaxDisagreementExamples {
			cmp.Disagreements = append(cmp.Disagreements, Disagreement{
				Text:         a.Text,
				LabelA:       labelA,
				LabelB:       labelB,
				ExplanationA: a.LLMExplanation,
				ExplanationB: b.LLMExplanation,
			})
		}
	}

	if cmp.Joint > 0 {
		cmp.AgreementRate = float64(cmp.Agreements) / float64(cmp.Joint) * 100
	}
	return cmp
}
