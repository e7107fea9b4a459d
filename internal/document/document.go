package document

import "strings"

// Document is the immutable value the whole session reasons over: the
// extracted plain text of one uploaded file plus its source name. It is
// created once per upload and never mutated.
type Document struct {
	// Filename is the source identifier, e.g. "report.pdf".
	Filename string

	// Text is the full extracted plain text.
	Text string
}

// New creates a Document from already-extracted text.
func New(filename, text string) Document {
	return Document{Filename: filename, Text: text}
}

// Empty reports whether the document holds no usable text.
func (d Document) Empty() bool {
	return strings.TrimSpace(d.Text) == ""
}

// Stats summarizes a document for display after upload.
type Stats struct {
	Lines       int
	Words       int
	Characters  int
	ReadingMins int
}

// averageWPM is the reading speed assumed for the time estimate.
const averageWPM = 200

// ComputeStats returns basic statistics about the document text.
func ComputeStats(d Document) Stats {
	words := len(strings.Fields(d.Text))
	mins := words / averageWPM
	if mins < 1 {
		mins = 1
	}
	return Stats{
		Lines:       len(strings.Split(d.Text, "\n")),
		Words:       words,
		Characters:  len(d.Text),
		ReadingMins: mins,
	}
}
