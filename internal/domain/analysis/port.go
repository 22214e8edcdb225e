package analysis

import "context"

// Photo is one submitted view, referenced by URL (already-uploaded image) or
// carried inline as raw bytes (direct multipart upload). At most one of URL
// and Data is set.
type Photo struct {
	URL         string
	Data        []byte
	ContentType string
}

// Empty reports whether the view was not submitted at all.
func (p Photo) Empty() bool {
	return p.URL == "" && len(p.Data) == 0
}

// PhotoSet holds the three views of one analysis request. Any subset may be
// empty; the backend works with whatever it gets.
type PhotoSet struct {
	Front Photo
	Side  Photo
	Back  Photo
}

// Analyzer port (interface untuk analysis backend)
type Analyzer interface {
	Analyze(ctx context.Context, photos PhotoSet) (*Report, error)
}
