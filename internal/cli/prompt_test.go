package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  PromptResult
	}{
		{name: "y", input: "y\n", want: PromptResult{Accepted: true}},
		{name: "YES", input: "YES\n", want: PromptResult{Accepted: true}},
		{name: "padded", input: "  yes  \n", want: PromptResult{Accepted: true}},
		{name: "no", input: "n\n", want: PromptResult{}},
		{name: "empty defaults to no", input: "\n", want: PromptResult{}},
		{name: "eof", input: "", want: PromptResult{}},
		{name: "other", input: "maybe\n", want: PromptResult{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got := Confirm(&out, strings.NewReader(tt.input), "Delete 7?")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Delete 7? ", out.String())
		})
	}
}

func TestConfirm_ReadError(t *testing.T) {
	var out bytes.Buffer
	got := Confirm(&out, failingReader{}, "Delete?")
	assert.True(t, got.Cancelled)
	assert.False(t, got.Accepted)
}

func TestConfirmDestructive(t *testing.T) {
	var out bytes.Buffer

	assert.NoError(t, confirmDestructive(&out, strings.NewReader(""), "q", true, false))
	assert.ErrorIs(t, confirmDestructive(&out, strings.NewReader(""), "q", false, false), ErrConfirmationRequired)
	assert.ErrorIs(t, confirmDestructive(&out, strings.NewReader("n\n"), "q", false, true), errAborted)
	assert.NoError(t, confirmDestructive(&out, strings.NewReader("y\n"), "q", false, true))
}
