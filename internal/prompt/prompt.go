// Package prompt builds the explain/classify prompts sent per batch.
package prompt

import (
	"fmt"
	"strings"

	"stancelab/internal/dataset"
)

// System is the shared system prompt for both actions.
const System = `You are an expert annotator of political stance in short social-media texts.
You always answer with tab-separated values only, one line per input text, no commentary.`

// Explain builds the prompt asking the model to justify existing human
// labels. Each input line is "text<TAB>label"; the model must answer
// "text<TAB>label<TAB>explanation".
func Explain(target, language string, rows []dataset.Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The texts below are written in %s. Each is labeled with its stance toward %q: \"for\" or \"against\".\n", language, target)
	b.WriteString("For every line, explain in one sentence why the given label fits the text.\n")
	b.WriteString("Answer one line per input, tab-separated: text<TAB>label<TAB>explanation.\n")
	b.WriteString("Repeat the text and label exactly as given. Do not add a header.\n\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "%s\t%s\n", row.Text, row.HumanLabel)
	}
	return b.String()
}

// Classify builds the prompt asking the model to label texts itself. The
// model must answer "text<TAB>label<TAB>explanation" with label "for" or
// "against".
func Classify(target, language string, rows []dataset.Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The texts below are written in %s. Classify each text's stance toward %q as \"for\" or \"against\".\n", language, target)
	b.WriteString("Answer one line per input, tab-separated: text<TAB>label<TAB>explanation.\n")
	b.WriteString("Repeat the text exactly as given, then your label, then a one-sentence justification. Do not add a header.\n\n")
	for _, row := range rows {
		b.WriteString(row.Text)
		b.WriteString("\n")
	}
	return b.String()
}
