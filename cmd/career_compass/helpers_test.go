package main

import (
	"context"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/jonathan/career-compass/internal/llm"
	"github.com/jonathan/career-compass/internal/llm/llmtest"
	"github.com/jonathan/career-compass/internal/recommend"
)

const sampleReply = `[
	{"title":"UPSC CSE","sector":"Government","category":"High Competition","description":"Civil services","averageSalary":"8-12 LPA"},
	{"title":"Indian Coast Guard Navik","sector":"Government","category":"Hidden Gem","description":"Coastal security","eligibility":"12th with Maths and Physics"},
	{"title":"Data Analyst","sector":"Private","category":"Moderate Competition","description":"Analytics"},
	{"title":"","sector":"Private","category":"Hidden Gem","description":"missing title"}
]`

func stubRequester(t *testing.T, apiKey string, stub *llmtest.Stub) *recommend.Requester {
	t.Helper()
	return recommend.NewRequester(apiKey, recommend.Options{}, func(context.Context, string) (llm.Client, error) {
		return stub, nil
	}, zaptest.NewLogger(t))
}
