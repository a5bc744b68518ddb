package finder

// SearchResult represents a single filesystem entry surfaced to the caller.
// Score carries whatever the producing operation sorted by: a fuzzy match
// score for SearchFiles, the recency timestamp for RebuildIndex.
type SearchResult struct {
	FileName  string `json:"file_name"`
	FilePath  string `json:"file_path"`
	FileSize  int64  `json:"file_size"`
	IsFolder  bool   `json:"is_folder"`
	Score     int64  `json:"score"`
	DateValue int64  `json:"date_value"`
	DateKind  string `json:"date_kind"`
	FileKind  string `json:"file_kind"`
}

// FileCache is the persisted index snapshot.
type FileCache struct {
	LastUpdated int64          `json:"last_updated"`
	Files       []SearchResult `json:"files"`
}

// FileOpResult reports the outcome of a file-management operation.
// AffectedCount counts the items that succeeded even when Success is false.
type FileOpResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	AffectedCount int    `json:"affected_count"`
}

const (
	// cacheFileName is the per-user snapshot location under the home dir.
	cacheFileName = ".fast-finder-cache.json"

	// searchSinkCap bounds the scratch collection during a fuzzy search.
	searchSinkCap = 2000

	// maxResults caps what search and recent-files return.
	maxResults = 50

	// recentWindowSeconds is the rolling recency window (7 days).
	recentWindowSeconds = 7 * 24 * 60 * 60

	indexDepth  = 5
	searchDepth = 6
	walkThreads = 4
)

// curatedFolders are the user-facing directories indexed by RebuildIndex,
// relative to the home directory. Missing ones are skipped.
var curatedFolders = []string{"Documents", "Downloads", "Desktop"}

// indexedExtensions is the allowlist applied during a full re-index.
// Directories bypass it so folder browsing keeps working.
var indexedExtensions = map[string]bool{
	"pdf": true, "doc": true, "docx": true, "txt": true, "rtf": true,
	"md": true, "pages": true, "odt": true,
	"xls": true, "xlsx": true, "csv": true, "numbers": true,
	"ppt": true, "pptx": true, "key": true,
	"jpg": true, "jpeg": true, "png": true, "gif": true, "heic": true,
	"webp": true, "svg": true, "psd": true, "ai": true,
	"mp4": true, "mov": true, "avi": true, "mkv": true, "webm": true,
	"mp3": true, "wav": true, "aac": true, "flac": true, "m4a": true,
	"py": true, "js": true, "ts": true, "rs": true, "swift": true,
	"java": true, "go": true, "html": true, "css": true, "json": true,
	"zip": true, "tar": true, "gz": true, "rar": true, "7z": true,
	"dmg": true,
}
