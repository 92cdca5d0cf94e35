package stats

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderStatistics writes an accuracy report as console tables.
func RenderStatistics(w io.Writer, title string, s Statistics) {
	fmt.Fprintf(w, "=== %s ===\n", title)
	fmt.Fprintf(w, "Accuracy: %.2f%% (%d/%d)   Macro F1: %.4f\n\n", s.Accuracy, s.Correct, s.Total, s.MacroF1)

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Label", "Total", "Correct", "Precision", "Recall", "F1"})
	for _, label := range s.Labels {
		ls := s.PerLabel[label]
		tbl.AppendRow(table.Row{
			label, ls.Total, ls.Correct,
			fmt.Sprintf("%.4f", ls.Precision),
			fmt.Sprintf("%.4f", ls.Recall),
			fmt.Sprintf("%.4f", ls.F1),
		})
	}
	tbl.Render()

	fmt.Fprintln(w)
	renderConfusion(w, s)
}

// renderConfusion prints the actual-by-predicted count matrix.
func renderConfusion(w io.Writer, s Statistics) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)

	header := table.Row{"actual \\ predicted"}
	for _, label := range s.Labels {
		header = append(header, label)
	}
	tbl.AppendHeader(header)

	for _, actual := range s.Labels {
		row := table.Row{actual}
		for _, predicted := range s.Labels {
			row = append(row, s.Confusion[actual][predicted])
		}
		tbl.AppendRow(row)
	}
	tbl.Render()
}

// RenderComparison writes the cross-model agreement section.
func RenderComparison(w io.Writer, nameA, nameB string, cmp Comparison) {
	fmt.Fprintf(w, "=== Agreement: %s vs %s ===\n", nameA, nameB)
	fmt.Fprintf(w, "Agreement rate: %.2f%% (%d/%d jointly labeled)\n\n", cmp.AgreementRate, cmp.Agreements, cmp.Joint)

	if len(cmp.Disagreements) == 0 {
		return
	}

	fmt.Fprintf(w, "Example disagreements (up to %d):\n", MaxDisagreementExamples)
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Text", nameA, nameB, nameA + " says", nameB + " says"})
	for _, d := range cmp.Disagreements {
		tbl.AppendRow(table.Row{truncate(d.Text, 60), d.LabelA, d.LabelB, truncate(d.ExplanationA, 50), truncate(d.ExplanationB, 50)})
	}
	tbl.Render()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
