package assistant

import (
	"strings"
	"testing"

	"github.com/Shivaram1629/smart-research-assistant/internal/document"
)

func TestBuildContext_FitsWhole(t *testing.T) {
	doc := document.New("paper.txt", "Mitochondria produce ATP through oxidative phosphorylation.")
	text, truncated, err := buildContext(doc, 24000)
	if err != nil {
		t.Fatalf("buildContext: %v", err)
	}
	if truncated {
		t.Error("short document reported as truncated")
	}
	if text != doc.Text {
		t.Errorf("context differs from document text")
	}
}

func TestBuildContext_Truncates(t *testing.T) {
	doc := document.New("big.txt", strings.Repeat("a", 100))
	text, truncated, err := buildContext(doc, 40)
	if err != nil {
		t.Fatalf("buildContext: %v", err)
	}
	if !truncated {
		t.Fatal("oversized document not reported as truncated")
	}
	if !strings.HasPrefix(text, strings.Repeat("a", 40)) {
		t.Error("truncated context does not start with the document prefix")
	}
	if !strings.Contains(text, "DOCUMENT TRUNCATED") {
		t.Error("truncated context missing the truncation marker")
	}
}

func TestBuildContext_EmptyDocument(t *testing.T) {
	doc := document.New("blank.txt", "   \n\t  ")
	_, _, err := buildContext(doc, 24000)
	if !IsKind(err, KindEmptyDocument) {
		t.Fatalf("err = %v, want KindEmptyDocument", err)
	}
}

func TestGroundCitations_KeepsQuotesFromContext(t *testing.T) {
	ctx := "The Krebs cycle runs in the mitochondrial matrix.\nGlycolysis happens in the cytosol."
	got := groundCitations(ctx, []string{
		"The Krebs cycle runs in the mitochondrial matrix.",
		"Photosynthesis occurs in chloroplasts.", // not in context
	})
	if len(got) != 1 {
		t.Fatalf("grounded = %v, want exactly the in-context quote", got)
	}
	if !strings.Contains(got[0], "Krebs") {
		t.Errorf("kept citation = %q", got[0])
	}
}

func TestGroundCitations_CaseAndWhitespaceInsensitive(t *testing.T) {
	ctx := "The   Krebs cycle\nruns in the matrix."
	got := groundCitations(ctx, []string{"the krebs CYCLE runs in the matrix."})
	if len(got) != 1 {
		t.Fatalf("grounded = %v, want reformatted quote kept", got)
	}
}

func TestGroundCitations_KeepsLocators(t *testing.T) {
	ctx := "--- Page 1 ---\nSome content."
	got := groundCitations(ctx, []string{"Page 2, second paragraph"})
	if len(got) != 1 {
		t.Fatalf("grounded = %v, want locator-style citation kept", got)
	}
}

func TestGroundCitations_DropsEmpty(t *testing.T) {
	got := groundCitations("text", []string{"", "   "})
	if got != nil {
		t.Errorf("grounded = %v, want nil", got)
	}
}
