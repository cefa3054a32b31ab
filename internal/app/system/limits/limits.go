// internal/app/system/limits/limits.go
package limits

// Request body size limits for the JSON endpoints.
const (
	// MaxBulkBody bounds one POST /api/bulk/{kind} batch.
	MaxBulkBody = 8 << 20 // 8 MB

	// MaxRecordBody bounds a single-record create such as a curriculum entry.
	MaxRecordBody = 1 << 20 // 1 MB

	// MaxRegistroBody bounds a user registration.
	MaxRegistroBody = 64 << 10 // 64 KB

	// MaxDiscoveryBody bounds a discovery query.
	MaxDiscoveryBody = 4 << 10 // 4 KB
)
