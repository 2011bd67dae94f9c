package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jonathan/career-compass/internal/llm/llmtest"
	"github.com/jonathan/career-compass/internal/types"
)

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

// questionnaire answers: defaults for step 1, two domains, a state, default salary.
var questionnaire = []string{
	"", "", "",
	"1, Law", "",
	"2", "Kerala", "",
}

func TestRunInteractive_BrowseAndQuit(t *testing.T) {
	stub := llmtest.New(llmtest.Reply{Text: sampleReply})
	input := script(append(questionnaire, "p", "job-2", "job-42", "q")...)
	var out bytes.Buffer

	err := runInteractive(context.Background(), input, &out, stubRequester(t, "key", stub), zaptest.NewLogger(t))
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Step 1 of 3")
	assert.Contains(t, text, "Step 3 of 3")
	assert.Contains(t, text, "[PRIVATE SECTOR]")
	assert.Contains(t, text, "DATA ANALYST")
	assert.Contains(t, text, `No recommendation with id "job-42".`)

	require.Equal(t, 1, stub.Calls())
	prompt := stub.Requests()[0].Prompt
	assert.Contains(t, prompt, "Defence/Police, Law")
	assert.Contains(t, prompt, "Kerala")
}

func TestRunInteractive_InvalidChoiceReprompts(t *testing.T) {
	stub := llmtest.New(llmtest.Reply{Text: sampleReply})
	input := script("9", "Graduate", "", "", "", "", "", "", "q")
	var out bytes.Buffer

	err := runInteractive(context.Background(), input, &out, stubRequester(t, "key", stub), zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Please enter a number between 1 and 4.")
	assert.Contains(t, stub.Requests()[0].Prompt, string(types.LevelGraduate))
}

func TestRunInteractive_RetryAfterFailure(t *testing.T) {
	stub := llmtest.New(
		llmtest.Reply{Err: errors.New("deadline exceeded")},
		llmtest.Reply{Text: sampleReply},
	)
	input := script(append(questionnaire, "y", "q")...)
	var out bytes.Buffer

	err := runInteractive(context.Background(), input, &out, stubRequester(t, "key", stub), zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, 2, stub.Calls())
	assert.Contains(t, out.String(), "SOMETHING WENT WRONG")
	assert.Contains(t, out.String(), "ELITE & DIFFICULT (1)")
	assert.Equal(t, stub.Requests()[0].Prompt, stub.Requests()[1].Prompt, "the retry resubmits the same answers")
}

func TestRunInteractive_GiveUpAfterFailure(t *testing.T) {
	input := script(append(questionnaire, "n")...)
	var out bytes.Buffer

	err := runInteractive(context.Background(), input, &out, stubRequester(t, "", llmtest.New()), zaptest.NewLogger(t))
	require.Error(t, err)
}

func TestRunInteractive_NewSearch(t *testing.T) {
	stub := llmtest.New(llmtest.Reply{Text: sampleReply})
	lines := append([]string{}, questionnaire...)
	lines = append(lines, "n")
	lines = append(lines, questionnaire...)
	lines = append(lines, "q")
	var out bytes.Buffer

	err := runInteractive(context.Background(), script(lines...), &out, stubRequester(t, "key", stub), zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 2, stub.Calls())
}

func TestRunInteractive_InputClosed(t *testing.T) {
	var out bytes.Buffer
	err := runInteractive(context.Background(), script("", ""), &out, stubRequester(t, "key", llmtest.New()), zaptest.NewLogger(t))
	require.ErrorIs(t, err, errInputClosed)
}

func TestSplitDomains(t *testing.T) {
	common := types.CommonDomains()

	assert.Equal(t, []string{"Defence/Police", "Teaching", "Agriculture"}, splitDomains("1, 8 , Agriculture, 1", common))
	assert.Empty(t, splitDomains(" , ", common))
}
