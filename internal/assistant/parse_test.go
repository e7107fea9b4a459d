package assistant

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func TestParseSummary_Valid(t *testing.T) {
	s, err := parseSummary(json.RawMessage(`{"summary":"A short summary."}`), false)
	if err != nil {
		t.Fatalf("parseSummary: %v", err)
	}
	if s.Text != "A short summary." {
		t.Errorf("Text = %q", s.Text)
	}
	if s.Truncated {
		t.Error("Truncated = true, want false")
	}
}

func TestParseSummary_EnforcesWordCap(t *testing.T) {
	long := strings.Repeat("word ", 200)
	raw, _ := json.Marshal(map[string]string{"summary": long})
	s, err := parseSummary(raw, false)
	if err != nil {
		t.Fatalf("parseSummary: %v", err)
	}
	if n := len(strings.Fields(s.Text)); n > summaryWordCap {
		t.Errorf("summary has %d words, want <= %d", n, summaryWordCap)
	}
	if !strings.HasSuffix(s.Text, "…") {
		t.Error("capped summary missing ellipsis")
	}
}

func TestParseSummary_PropagatesTruncatedFlag(t *testing.T) {
	s, err := parseSummary(json.RawMessage(`{"summary":"ok"}`), true)
	if err != nil {
		t.Fatalf("parseSummary: %v", err)
	}
	if !s.Truncated {
		t.Error("Truncated = false, want true when context was cut")
	}
}

func TestParseSummary_Malformed(t *testing.T) {
	for name, raw := range map[string]string{
		"not json":      `not json`,
		"empty summary": `{"summary":"   "}`,
	} {
		if _, err := parseSummary(json.RawMessage(raw), false); !IsKind(err, KindMalformedResponse) {
			t.Errorf("%s: err = %v, want KindMalformedResponse", name, err)
		}
	}
}

func TestParseAnswer_GroundsCitations(t *testing.T) {
	ctx := "ATP is produced in the mitochondria."
	raw := json.RawMessage(`{
		"answer": "In the mitochondria.",
		"citations": ["ATP is produced in the mitochondria.", "made-up quote"],
		"declined": false
	}`)
	ans, err := parseAnswer(raw, ctx, false)
	if err != nil {
		t.Fatalf("parseAnswer: %v", err)
	}
	if len(ans.Citations) != 1 {
		t.Fatalf("Citations = %v, want fabricated quote dropped", ans.Citations)
	}
	if ans.Declined {
		t.Error("Declined = true")
	}
}

func TestParseAnswer_DeclinedCarriesNoCitations(t *testing.T) {
	raw := json.RawMessage(`{
		"answer": "The document does not discuss this.",
		"citations": ["some quote"],
		"declined": true
	}`)
	ans, err := parseAnswer(raw, "some quote and more", false)
	if err != nil {
		t.Fatalf("parseAnswer: %v", err)
	}
	if !ans.Declined {
		t.Fatal("Declined = false, want true")
	}
	if ans.Citations != nil {
		t.Errorf("Citations = %v, want none on a declined answer", ans.Citations)
	}
}

func TestParseAnswer_EmptyText(t *testing.T) {
	raw := json.RawMessage(`{"answer":"","citations":[],"declined":false}`)
	if _, err := parseAnswer(raw, "ctx", false); !IsKind(err, KindMalformedResponse) {
		t.Fatalf("err = %v, want KindMalformedResponse", err)
	}
}

func challengeJSON(prompts ...string) json.RawMessage {
	kinds := []string{"recall", "inference", "synthesis"}
	items := make([]string, len(prompts))
	for i, p := range prompts {
		items[i] = fmt.Sprintf(`{
			"prompt": %q,
			"expected_answer_summary": "summary %d",
			"source_reference": "Page 1",
			"reasoning": %q
		}`, p, i, kinds[i%len(kinds)])
	}
	return json.RawMessage(`{"questions":[` + strings.Join(items, ",") + `]}`)
}

func TestParseChallenge_Valid(t *testing.T) {
	qs, err := parseChallenge(challengeJSON("What is ATP?", "Why does the matrix matter?", "How do the two pathways relate?"))
	if err != nil {
		t.Fatalf("parseChallenge: %v", err)
	}
	if len(qs) != 3 {
		t.Fatalf("got %d questions, want 3", len(qs))
	}
	seen := map[string]bool{}
	for _, q := range qs {
		if q.ID == "" {
			t.Error("question has empty ID")
		}
		if seen[q.ID] {
			t.Errorf("duplicate question ID %q", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestParseChallenge_WrongCount(t *testing.T) {
	if _, err := parseChallenge(challengeJSON("a", "b")); !IsKind(err, KindMalformedResponse) {
		t.Fatalf("err = %v, want KindMalformedResponse for 2 questions", err)
	}
}

func TestParseChallenge_DuplicatePrompts(t *testing.T) {
	// Same question with different casing still counts as a repeat.
	raw := challengeJSON("What is ATP?", "what is atp?", "Another question?")
	if _, err := parseChallenge(raw); !IsKind(err, KindMalformedResponse) {
		t.Fatalf("err = %v, want KindMalformedResponse for duplicate prompts", err)
	}
}

func TestParseChallenge_UnknownReasoning(t *testing.T) {
	raw := json.RawMessage(`{"questions":[
		{"prompt":"a","expected_answer_summary":"s","source_reference":"r","reasoning":"guesswork"},
		{"prompt":"b","expected_answer_summary":"s","source_reference":"r","reasoning":"recall"},
		{"prompt":"c","expected_answer_summary":"s","source_reference":"r","reasoning":"recall"}
	]}`)
	if _, err := parseChallenge(raw); !IsKind(err, KindMalformedResponse) {
		t.Fatalf("err = %v, want KindMalformedResponse for unknown reasoning kind", err)
	}
}

func evaluationJSON(score int, verdict string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{
		"score": %d,
		"verdict": %q,
		"strengths": ["named the organelle"],
		"gaps": [],
		"justification": "Matches the passage on page 1."
	}`, score, verdict))
}

func TestParseEvaluation_Valid(t *testing.T) {
	eval, err := parseEvaluation(evaluationJSON(85, "correct"), "q-1", "mitochondria")
	if err != nil {
		t.Fatalf("parseEvaluation: %v", err)
	}
	if eval.Score != 85 || eval.Verdict != VerdictCorrect {
		t.Errorf("eval = %+v", eval)
	}
	if eval.QuestionID != "q-1" || eval.UserAnswer != "mitochondria" {
		t.Errorf("identity fields not carried: %+v", eval)
	}
}

func TestParseEvaluation_ClampsNearMissScores(t *testing.T) {
	eval, err := parseEvaluation(evaluationJSON(105, "correct"), "q", "a")
	if err != nil {
		t.Fatalf("score 105: %v", err)
	}
	if eval.Score != 100 {
		t.Errorf("score = %d, want clamped to 100", eval.Score)
	}

	eval, err = parseEvaluation(evaluationJSON(-5, "incorrect"), "q", "a")
	if err != nil {
		t.Fatalf("score -5: %v", err)
	}
	if eval.Score != 0 {
		t.Errorf("score = %d, want clamped to 0", eval.Score)
	}
}

func TestParseEvaluation_RejectsWildScores(t *testing.T) {
	for _, score := range []int{740, -60, 111} {
		if _, err := parseEvaluation(evaluationJSON(score, "correct"), "q", "a"); !IsKind(err, KindMalformedResponse) {
			t.Errorf("score %d: err = %v, want KindMalformedResponse", score, err)
		}
	}
}

func TestParseEvaluation_MissingScore(t *testing.T) {
	raw := json.RawMessage(`{"verdict":"correct","strengths":[],"gaps":[],"justification":"ok"}`)
	if _, err := parseEvaluation(raw, "q", "a"); !IsKind(err, KindMalformedResponse) {
		t.Fatalf("err = %v, want KindMalformedResponse", err)
	}
}

func TestParseEvaluation_UnknownVerdict(t *testing.T) {
	if _, err := parseEvaluation(evaluationJSON(50, "meh"), "q", "a"); !IsKind(err, KindMalformedResponse) {
		t.Fatalf("err = %v, want KindMalformedResponse", err)
	}
}
