// Package stats computes accuracy and agreement metrics over labeled
// results: per-label precision/recall/F1 from a confusion matrix, macro F1,
// and cross-model agreement.
package stats

import (
	"sort"
	"strings"

	"stancelab/internal/dataset"
)

// LabelStats holds per-label counts and metrics.
type LabelStats struct {
	Total     int // rows with this actual label
	Correct   int // of those, predicted correctly
	Precision float64
	Recall    float64
	F1        float64
}

// Statistics is the full accuracy report for one result set.
type Statistics struct {
	Total    int
	Correct  int
	Accuracy float64 // percentage
	MacroF1  float64 // mean per-label F1, 0..1

	// Labels is the sorted union of labels seen as actual or predicted.
	Labels   []string
	PerLabel map[string]LabelStats

	// Confusion maps actual label -> predicted label -> count.
	Confusion map[string]map[string]int
}

// normalize lower-cases and trims a label; parser output is passed through
// verbatim, so normalization happens here at the consumer.
func normalize(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Compute builds accuracy statistics from rows carrying both a human and an
// LLM label. Rows missing either label are excluded.
func Compute(rows []dataset.LabeledResult) Statistics {
	confusion := make(map[string]map[string]int)
	labelSet := make(map[string]bool)
	total, correct := 0, 0

	for _, row := range rows {
		actual := normalize(row.HumanLabel)
		predicted := normalize(row.LLMLabel)
		if actual == "" || predicted == "" {
			continue
		}

		if confusion[actual] == nil {
			confusion[actual] = make(map[string]int)
		}
		confusion[actual][predicted]++
		labelSet[actual] = true
		labelSet[predicted] = true

		total++
		if actual == predicted {
			correct++
		}
	}

	labels := make([]string, 0, len(labelSet))
	for label := range labelSet {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	perLabel := make(map[string]LabelStats, len(labels))
	var f1Sum float64

	for _, label := range labels {
		tp := confusion[label][label]

		actualTotal := 0
		for _, count := range confusion[label] {
			actualTotal += count
		}

		// FP: rows with a different actual label predicted as this one.
		fp := 0
		for other, row := range confusion {
			if other == label {
				continue
			}
			fp += row[label]
		}

		precision := 0.0
		if tp+fp > 0 {
			precision = float64(tp) / float64(tp+fp)
		}
		recall := 0.0
		if actualTotal > 0 {
			recall = float64(tp) / float64(actualTotal)
		}
		f1 := 0.0
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}

		perLabel[label] = LabelStats{
			Total:     actualTotal,
			Correct:   tp,
			Precision: precision,
			Recall:    recall,
			F1:        f1,
		}
		f1Sum += f1
	}

	stats := Statistics{
		Total:     total,
		Correct:   correct,
		Labels:    labels,
		PerLabel:  perLabel,
		Confusion: confusion,
	}
	if total > 0 {
		stats.Accuracy = float64(correct) / float64(total) * 100
	}
	if len(labels) > 0 {
		stats.MacroF1 = f1Sum / float64(len(labels))
	}
	return stats
}
