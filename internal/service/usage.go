package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/BYRON-lang/dashboard/internal/blob"
	"github.com/BYRON-lang/dashboard/internal/entity"
)

// EstimatedObjectSize is the fixed per-object size (1 MiB) used when
// estimating storage usage. Listing a folder costs one round trip; querying
// true metadata would cost one per object. Keep the estimate a named constant
// rather than switching to exact lookups.
const EstimatedObjectSize int64 = 1 << 20

// UsageService estimates blob storage consumption across known folders.
type UsageService struct {
	store      blob.Store
	folders    []string
	quotaBytes int64
}

// NewUsageService wires a usage service over the given store.
func NewUsageService(store blob.Store, folders []string, quotaBytes int64) *UsageService {
	return &UsageService{store: store, folders: folders, quotaBytes: quotaBytes}
}

// ComputeUsage lists each configured folder and estimates its object count
// and total size. Folders are independent: a failed listing degrades that
// folder to a zero entry and is logged, never escalated, so the report always
// comes back usable.
func (s *UsageService) ComputeUsage(ctx context.Context) entity.StorageUsageReport {
	report := entity.StorageUsageReport{
		Folders:    make(map[string]entity.FolderUsage, len(s.folders)),
		QuotaBytes: s.quotaBytes,
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, folder := range s.folders {
		wg.Add(1)
		go func(folder string) {
			defer wg.Done()

			var usage entity.FolderUsage
			keys, err := s.store.List(ctx, folder)
			if err != nil {
				log.Printf("usage: listing folder %s failed, reporting it as empty: %v", folder, err)
			} else {
				usage.Count = len(keys)
				usage.Size = int64(len(keys)) * EstimatedObjectSize
			}

			mu.Lock()
			report.Folders[folder] = usage
			report.FileCount += usage.Count
			report.TotalSize += usage.Size
			mu.Unlock()
		}(folder)
	}
	wg.Wait()

	report.GeneratedAt = time.Now().UTC()
	return report
}
