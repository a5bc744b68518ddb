package finder

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/djherbis/times"
)

// fileKinds maps a lowercase extension to a human-readable label.
var fileKinds = map[string]string{
	"pdf":   "PDF Document",
	"doc":   "Word Document",
	"docx":  "Word Document",
	"xls":   "Excel Spreadsheet",
	"xlsx":  "Excel Spreadsheet",
	"ppt":   "Presentation",
	"pptx":  "Presentation",
	"txt":   "Plain Text",
	"md":    "Markdown",
	"html":  "HTML Document",
	"htm":   "HTML Document",
	"css":   "CSS Stylesheet",
	"js":    "JavaScript",
	"ts":    "TypeScript",
	"json":  "JSON",
	"py":    "Python Script",
	"rs":    "Rust Source",
	"swift": "Swift Source",
	"java":  "Java Source",
	"go":    "Go Source",
	"c":     "C Source",
	"h":     "C Source",
	"cpp":   "C++ Source",
	"hpp":   "C++ Source",
	"jpg":   "JPEG Image",
	"jpeg":  "JPEG Image",
	"png":   "PNG Image",
	"gif":   "GIF Image",
	"heic":  "HEIC Image",
	"svg":   "SVG Image",
	"mp4":   "MP4 Video",
	"mov":   "QuickTime Movie",
	"mp3":   "MP3 Audio",
	"wav":   "WAV Audio",
	"zip":   "ZIP Archive",
	"dmg":   "Disk Image",
	"app":   "Application",
}

// classifyKind returns a display label for a filesystem entry. It never
// fails: unknown extensions become "<EXT> File" and a missing extension
// falls back to "Document".
func classifyKind(name string, isFolder bool) string {
	if isFolder {
		return "Folder"
	}
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return "Document"
	}
	if kind, ok := fileKinds[strings.ToLower(ext)]; ok {
		return kind
	}
	return strings.ToUpper(ext) + " File"
}

// pickBestDate chooses between modification and creation time, both in
// Unix seconds with 0 meaning unavailable. Creation wins only when it is
// strictly newer: on this platform it reflects when the file arrived on
// the machine (e.g. download time), a better recency signal than a
// modification time carried over from elsewhere.
func pickBestDate(mtime, btime int64) (int64, string) {
	if btime > mtime {
		return btime, "Created"
	}
	return mtime, "Modified"
}

// bestDate extracts the best recency timestamp from file metadata.
// Access time is never considered; background activity like thumbnail
// generation mutates it constantly.
func bestDate(info os.FileInfo) (int64, string) {
	if info == nil {
		return 0, "Unknown"
	}
	ts := times.Get(info)
	mtime := ts.ModTime().Unix()
	var btime int64
	if ts.HasBirthTime() {
		btime = ts.BirthTime().Unix()
	}
	return pickBestDate(mtime, btime)
}
