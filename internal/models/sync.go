// internal/models/sync.go
package models

// SyncReport summarizes one catalog-to-vector-index synchronization run.
// Status is "success" whenever the pipeline ran to completion, even with
// per-document errors; "error" means the run itself could not proceed.
type SyncReport struct {
	Status        string         `json:"status"`
	Message       string         `json:"message"`
	SyncedCount   int            `json:"synced_count"`
	PerTypeCounts map[string]int `json:"per_type_counts"`
	Errors        []string       `json:"errors,omitempty"`
	Timestamp     string         `json:"timestamp,omitempty"`
}

// CollectionStatus describes the vector collection backing retrieval.
type CollectionStatus struct {
	CollectionExists bool   `json:"collection_exists"`
	TotalDocuments   int64  `json:"total_documents"`
	VectorSize       int    `json:"vector_size,omitempty"`
	DistanceMetric   string `json:"distance_metric,omitempty"`
}
