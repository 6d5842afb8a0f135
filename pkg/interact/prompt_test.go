package interact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prompter(input string) *Prompter {
	return &Prompter{
		In:          strings.NewReader(input),
		Out:         &strings.Builder{},
		Interactive: true,
	}
}

func TestConfirmAnswers(t *testing.T) {
	assert.True(t, prompter("y\n").Confirm("export?", false))
	assert.True(t, prompter("yes\n").Confirm("export?", false))
	assert.False(t, prompter("n\n").Confirm("export?", true))
	assert.True(t, prompter("\n").Confirm("export?", true), "empty input takes the fallback")
	assert.False(t, prompter("\n").Confirm("export?", false))
}

func TestConfirmHeadlessUsesFallback(t *testing.T) {
	p := &Prompter{Interactive: false}
	assert.True(t, p.Confirm("export?", true))
	assert.False(t, p.Confirm("export?", false))
}

func TestSelectPicksItem(t *testing.T) {
	idx, err := prompter("2\n").Select("pick a subscription", []string{"sub-a", "sub-b"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestSelectRetriesInvalidInput(t *testing.T) {
	idx, err := prompter("0\nnope\n1\n").Select("pick", []string{"only"})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestSelectHeadlessFails(t *testing.T) {
	p := &Prompter{Interactive: false}
	_, err := p.Select("pick", []string{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flag")
}

func TestSelectEmptyList(t *testing.T) {
	_, err := prompter("").Select("pick", nil)
	require.Error(t, err)
}
