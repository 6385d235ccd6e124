package pastescout

import "context"

// Source identifies which site a paste was copied from.
type Source string

// Sources.
const (
	SourceListing   Source = "listing"
	SourceAnalytics Source = "analytics"
	SourceKeywords  Source = "keywords"
)

// ParseSource validates a source name.
func ParseSource(s string) (Source, error) {
	switch src := Source(s); src {
	case SourceListing, SourceAnalytics, SourceKeywords:
		return src, nil
	}
	return "", Errorf(EINVALID, "unknown source %q", s)
}

// Paste is one pasted page waiting to be parsed.
type Paste struct {
	Name    string
	Source  Source
	Content string
}

// Outcome is the result of parsing one paste. Exactly one of Listing,
// Analytics and Keywords is set on success.
type Outcome struct {
	Name   string `json:"name"`
	Source Source `json:"source"`

	// Hash is the content hash used to detect duplicate pastes.
	Hash string `json:"hash"`

	// DuplicateOf names the earlier paste with identical content. A
	// duplicate shares that paste's result and is not parsed again.
	DuplicateOf string `json:"duplicate_of,omitempty"`

	Listing   *Listing     `json:"listing,omitempty"`
	Analytics *Analytics   `json:"analytics,omitempty"`
	Keywords  *KeywordList `json:"keywords,omitempty"`

	Err error `json:"-"`
}

// BatchResult holds the outcomes of a batch in input order.
type BatchResult struct {
	// ID identifies the run in logs.
	ID string

	Outcomes   []Outcome
	Parsed     int
	Failed     int
	Duplicates int
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Name      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// BatchRunner parses many pastes.
type BatchRunner interface {
	// Run parses every paste and returns outcomes in input order. A paste
	// that fails to parse is recorded in its Outcome; Run itself fails
	// only when ctx is cancelled.
	Run(ctx context.Context, pastes []Paste, progress ProgressFunc) (*BatchResult, error)
}
