package dto

// IngestURLItem names a web page to fetch and index.
type IngestURLItem struct {
	Name string `json:"name"`
	URL  string `json:"url" validate:"required,url"`
}

// IngestRequest lists the sources for one synchronous ingestion run. At least
// one document path or URL must be given.
type IngestRequest struct {
	Documents []string        `json:"documents" validate:"dive,min=1"`
	URLs      []IngestURLItem `json:"urls" validate:"dive"`
}

// IngestResponse reports what one ingestion run produced.
type IngestResponse struct {
	DocumentsLoaded int      `json:"documents_loaded"`
	ChunksIndexed   int      `json:"chunks_indexed"`
	ChunksSkipped   int      `json:"chunks_skipped"`
	Failures        []string `json:"failures,omitempty"`
}

// DeleteDocumentsRequest removes all chunks ingested from one source.
type DeleteDocumentsRequest struct {
	Source string `json:"source" validate:"required"`
}

// DeleteDocumentsResponse reports how many chunks were removed. Zero means
// the source was not indexed, which is not an error.
type DeleteDocumentsResponse struct {
	Deleted int64 `json:"deleted"`
}
