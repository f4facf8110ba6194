package entity

import "time"

// FolderUsage is the estimated object count and size for one storage folder.
type FolderUsage struct {
	Count int   `json:"count"`
	Size  int64 `json:"size"`
}

// StorageUsageReport summarises blob storage consumption across folders.
// It is computed fresh on every request and never persisted.
type StorageUsageReport struct {
	FileCount   int                    `json:"fileCount"`
	TotalSize   int64                  `json:"totalSize"`
	Folders     map[string]FolderUsage `json:"folders"`
	QuotaBytes  int64                  `json:"quotaBytes"`
	GeneratedAt time.Time              `json:"generatedAt"`
}
