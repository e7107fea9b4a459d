package document

import (
	"strings"
	"testing"
)

func TestDocument_Empty(t *testing.T) {
	if !New("a.txt", "").Empty() {
		t.Error("empty text must report Empty")
	}
	if !New("a.txt", "   \n\t  ").Empty() {
		t.Error("whitespace-only text must report Empty")
	}
	if New("a.txt", "hello").Empty() {
		t.Error("non-empty text must not report Empty")
	}
}

func TestComputeStats(t *testing.T) {
	d := New("paper.txt", "one two three\nfour five")
	stats := ComputeStats(d)

	if stats.Words != 5 {
		t.Errorf("expected 5 words, got %d", stats.Words)
	}
	if stats.Lines != 2 {
		t.Errorf("expected 2 lines, got %d", stats.Lines)
	}
	if stats.Characters != len(d.Text) {
		t.Errorf("expected %d characters, got %d", len(d.Text), stats.Characters)
	}
	if stats.ReadingMins != 1 {
		t.Errorf("short documents round up to 1 minute, got %d", stats.ReadingMins)
	}
}

func TestComputeStats_ReadingTime(t *testing.T) {
	d := New("long.txt", strings.Repeat("word ", 1000))
	if got := ComputeStats(d).ReadingMins; got != 5 {
		t.Errorf("expected 5 minutes for 1000 words, got %d", got)
	}
}
