package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only meaningful with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, d := range []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o", Purpose: "summary", InputTokens: 1200, OutputTokens: 140, LatencyMs: 800, Success: true, RequestBody: "[system]\nsummarize", ResponseBody: `{"summary":"ok"}`},
		{Provider: "openai", Model: "gpt-4o", Purpose: "ask", InputTokens: 1500, OutputTokens: 200, LatencyMs: 900, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "ask", InputTokens: 1100, OutputTokens: 90, LatencyMs: 400, Success: false, ErrorMessage: "rate limited"},
	} {
		require.NoError(t, repo.AppendLLMRequest(ctx, d))
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 3)

	// Newest first.
	require.Equal(t, "ask", events[0].Purpose)
	require.Equal(t, "summary", events[2].Purpose)
	require.Greater(t, events[0].Sequence, events[1].Sequence)

	// Purpose filter and limit.
	events, err = repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "ask", Limit: 1})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "ask", events[0].Purpose)
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude-sonnet-4-20250514", Purpose: "evaluate",
		Success: true, RequestBody: "req", ResponseBody: "resp",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	e, err := repo.GetLLMEvent(ctx, events[0].ID)
	require.NoError(t, err)
	require.NotNil(t, e)
	require.Equal(t, "req", e.RequestBody)
	require.Equal(t, "resp", e.ResponseBody)

	missing, err := repo.GetLLMEvent(ctx, 99999)
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestLLMUsageAggregation(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, d := range []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o", Purpose: "ask", InputTokens: 100, OutputTokens: 10, LatencyMs: 100, Success: true},
		{Provider: "openai", Model: "gpt-4o", Purpose: "ask", InputTokens: 300, OutputTokens: 30, LatencyMs: 300, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "summary", InputTokens: 50, OutputTokens: 5, LatencyMs: 50, Success: true},
	} {
		require.NoError(t, repo.AppendLLMRequest(ctx, d))
	}

	stats, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	byPurpose := map[string]UsageStat{}
	for _, st := range stats {
		byPurpose[st.Purpose] = st
	}
	require.Equal(t, 2, byPurpose["ask"].Calls)
	require.Equal(t, 400, byPurpose["ask"].InputTokens)
	require.Equal(t, int64(200), byPurpose["ask"].AvgLatencyMs)

	models, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, models, 2)
}

func TestAppendSessionEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "11111111-2222-3333-4444-555555555555",
		Action:    "document_loaded",
		Document:  "paper.pdf",
	})
	require.NoError(t, err)
}

func TestSequenceMonotonicAcrossTypes(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s", Action: "document_loaded"}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "ask", Success: true}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	// The session event consumed sequence 1.
	require.Equal(t, int64(2), events[0].Sequence)
}
