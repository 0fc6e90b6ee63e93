package tui

import (
	"testing"

	"github.com/AlecAivazis/survey/v2/core"
)

func TestSelectPromptDefaultsByIndex(t *testing.T) {
	prompt := selectPrompt(SelectConfig{
		Message:      "Color",
		Options:      []string{"Same", "Same", "Other"},
		DefaultIndex: 1,
		PageSize:     5,
	})
	if idx, ok := prompt.Default.(int); !ok || idx != 1 {
		t.Fatalf("expected default index 1, got %#v", prompt.Default)
	}
	if prompt.PageSize != 5 {
		t.Fatalf("expected page size 5, got %d", prompt.PageSize)
	}

	if prompt := selectPrompt(SelectConfig{Options: []string{"a"}, DefaultIndex: 3}); prompt.Default != nil {
		t.Fatalf("out of range default must be left unset, got %#v", prompt.Default)
	}
}

func TestSelectAnswerKeepsIndexForRepeatedLabels(t *testing.T) {
	var out int
	if err := core.WriteAnswer(&out, "", core.OptionAnswer{Value: "Same", Index: 1}); err != nil {
		t.Fatalf("write answer: %v", err)
	}
	if out != 1 {
		t.Fatalf("expected the second of two equal labels, got %d", out)
	}
}
