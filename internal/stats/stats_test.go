package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stancelab/internal/dataset"
)

func pairs(ps [][2]string) []dataset.LabeledResult {
	rows := make([]dataset.LabeledResult, len(ps))
	for i, p := range ps {
		rows[i] = dataset.LabeledResult{
			Text:       strings.Repeat("t", i+1),
			HumanLabel: p[0],
			LLMLabel:   p[1],
		}
	}
	return rows
}

func TestCompute_PerfectAgreement(t *testing.T) {
	rows := pairs([][2]string{{"for", "for"}, {"against", "against"}, {"for", "for"}})

	s := Compute(rows)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 3, s.Correct)
	assert.InDelta(t, 100.0, s.Accuracy, 1e-9)
	assert.InDelta(t, 1.0, s.MacroF1, 1e-9)

	// Diagonal confusion matrix.
	assert.Equal(t, 2, s.Confusion["for"]["for"])
	assert.Equal(t, 1, s.Confusion["against"]["against"])
	assert.Equal(t, 0, s.Confusion["for"]["against"])
	assert.Equal(t, 0, s.Confusion["against"]["for"])
}

func TestCompute_ConfusionMatrixMetrics(t *testing.T) {
	// (actual, predicted): (A,A), (A,B), (B,B), (B,B)
	rows := pairs([][2]string{{"a", "a"}, {"a", "b"}, {"b", "b"}, {"b", "b"}})

	s := Compute(rows)

	require.Equal(t, 4, s.Total)
	assert.Equal(t, 3, s.Correct)
	assert.InDelta(t, 75.0, s.Accuracy, 1e-9)

	a := s.PerLabel["a"]
	assert.Equal(t, 2, a.Total)
	assert.Equal(t, 1, a.Correct)
	assert.InDelta(t, 1.0, a.Precision, 1e-9)
	assert.InDelta(t, 0.5, a.Recall, 1e-9)
	assert.InDelta(t, 2.0/3.0, a.F1, 1e-9)

	b := s.PerLabel["b"]
	assert.Equal(t, 2, b.Total)
	assert.Equal(t, 2, b.Correct)
	assert.InDelta(t, 2.0/3.0, b.Precision, 1e-9)
	assert.InDelta(t, 1.0, b.Recall, 1e-9)
	assert.InDelta(t, 0.8, b.F1, 1e-9)

	assert.InDelta(t, (2.0/3.0+0.8)/2, s.MacroF1, 1e-9)
}

func TestCompute_LabelOnlyPredictedStillCounted(t *testing.T) {
	// "neutral" never appears as actual, but is in the label union with
	// total=0 and zero metrics.
	rows := pairs([][2]string{{"for", "neutral"}, {"for", "for"}})

	s := Compute(rows)

	require.Contains(t, s.Labels, "neutral")
	n := s.PerLabel["neutral"]
	assert.Equal(t, 0, n.Total)
	assert.Equal(t, 0.0, n.Precision)
	assert.Equal(t, 0.0, n.Recall)
	assert.Equal(t, 0.0, n.F1)
}

func TestCompute_NormalizesLabels(t *testing.T) {
	rows := pairs([][2]string{{" For ", "for"}, {"AGAINST", "against"}})

	s := Compute(rows)
	assert.InDelta(t, 100.0, s.Accuracy, 1e-9)
	assert.ElementsMatch(t, []string{"for", "against"}, s.Labels)
}

func TestCompute_SkipsRowsMissingALabel(t *testing.T) {
	rows := pairs([][2]string{{"for", ""}, {"", "for"}, {"for", "for"}})

	s := Compute(rows)
	assert.Equal(t, 1, s.Total)
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0.0, s.Accuracy)
	assert.Equal(t, 0.0, s.MacroF1)
}

func TestCompareModels_AgreementRate(t *testing.T) {
	var a, b []dataset.LabeledResult
	// 10 jointly-present texts, 7 agreements.
	for i := 0; i < 10; i++ {
		text := strings.Repeat("x", i+1)
		a = append(a, dataset.LabeledResult{Text: text, LLMLabel: "for", LLMExplanation: "a says"})
		label := "for"
		if i < 3 {
			label = "against"
		}
		b = append(b, dataset.LabeledResult{Text: text, LLMLabel: label, LLMExplanation: "b says"})
	}
	// Present only on one side: excluded from the denominator.
	a = append(a, dataset.LabeledResult{Text: "only-in-a", LLMLabel: "for"})
	b = append(b, dataset.LabeledResult{Text: "only-in-b", LLMLabel: "for"})

	cmp := CompareModels(a, b)

	assert.Equal(t, 10, cmp.Joint)
	assert.Equal(t, 7, cmp.Agreements)
	assert.InDelta(t, 70.0, cmp.AgreementRate, 1e-9)
	require.Len(t, cmp.Disagreements, 3)
	assert.Equal(t, "a says", cmp.Disagreements[0].ExplanationA)
	assert.Equal(t, "b says", cmp.Disagreements[0].ExplanationB)
}

func TestCompareModels_CapsDisagreementExamples(t *testing.T) {
	var a, b []dataset.LabeledResult
	for i := 0; i < 25; i++ {
		text := strings.Repeat("y", i+1)
		a = append(a, dataset.LabeledResult{Text: text, LLMLabel: "for"})
		b = append(b, dataset.LabeledResult{Text: text, LLMLabel: "against"})
	}

	cmp := CompareModels(a, b)
	assert.Equal(t, 25, cmp.Joint)
	assert.Equal(t, 0, cmp.Agreements)
	assert.Len(t, cmp.Disagreements, MaxDisagreementExamples)
}

func TestCompareModels_Empty(t *testing.T) {
	cmp := CompareModels(nil, nil)
	assert.Equal(t, 0, cmp.Joint)
	assert.Equal(t, 0.0, cmp.AgreementRate)
}
