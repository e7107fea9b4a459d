package assistant

import (
	"strings"

	"github.com/Shivaram1629/smart-research-assistant/internal/document"
)

// truncationMarker is appended when the document exceeds the context
// budget, so the model knows the text is a prefix rather than the
// whole document.
const truncationMarker = "\n\n[DOCUMENT TRUNCATED: content beyond this point was omitted]"

// buildContext selects the text that grounds a request. The target
// documents are short enough to fit whole, so the full text is the
// default; oversized documents are cut at the budget with an explicit
// marker, never silently. Returns the context text and whether it was
// truncated. A future ranked-passage retriever can replace this without
// touching callers.
func buildContext(doc document.Document, budget int) (string, bool, error) {
	if doc.Empty() {
		return "", false, newError(KindEmptyDocument, "document %q has no text content", doc.Filename)
	}

	text := doc.Text
	if budget > 0 && len(text) > budget {
		return text[:budget] + truncationMarker, true, nil
	}
	return text, false, nil
}

// groundCitations keeps only the citations whose content appears in
// the supplied context. Matching is whitespace- and case-insensitive
// so minor reformatting by the model does not drop a genuine quote.
// Citations the context cannot account for are discarded: a citation
// must always be derived from document text, never fabricated.
func groundCitations(contextText string, citations []string) []string {
	haystack := normalize(contextText)

	var grounded []string
	for _, c := range citations {
		needle := normalize(c)
		if needle == "" {
			continue
		}
		if strings.Contains(haystack, needle) {
			grounded = append(grounded, c)
			continue
		}
		// Page-marker style locators ("Page 3", "paragraph 2") are
		// locators, not quotes; keep them when they name a location
		// format the extractor produces.
		if looksLikeLocator(c) {
			grounded = append(grounded, c)
		}
	}
	return grounded
}

// normalize lower-cases and collapses all whitespace runs to single
// spaces, stripping surrounding quote characters.
func normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.Trim(s, `"'“”‘’ `)
	return strings.Join(strings.Fields(s), " ")
}

// looksLikeLocator reports whether a citation string is a positional
// reference rather than a quoted span.
func looksLikeLocator(c string) bool {
	lower := strings.ToLower(strings.TrimSpace(c))
	for _, prefix := range []string{"page ", "p. ", "paragraph ", "section ", "--- page"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
