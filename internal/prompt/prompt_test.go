package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"stancelab/internal/dataset"
)

func TestExplain(t *testing.T) {
	rows := []dataset.Row{
		{Text: "great guy", HumanLabel: "for"},
		{Text: "terrible", HumanLabel: "against"},
	}

	p := Explain("trump", "english", rows)

	assert.Contains(t, p, `"trump"`)
	assert.Contains(t, p, "english")
	assert.Contains(t, p, "great guy\tfor")
	assert.Contains(t, p, "terrible\tagainst")
	assert.Contains(t, p, "text<TAB>label<TAB>explanation")
}

func TestClassify(t *testing.T) {
	rows := []dataset.Row{
		{Text: "great guy"},
		{Text: "terrible"},
	}

	p := Classify("trump", "english", rows)

	assert.Contains(t, p, `"trump"`)
	assert.Contains(t, p, "great guy\n")
	assert.False(t, strings.Contains(p, "great guy\t"), "classify input carries no labels")
}
