package finder

import (
	"archive/zip"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/edsrzf/mmap-go"
)

// minMMapSize is the file size above which hashing maps the file instead
// of reading it.
const minMMapSize = 1024 * 1024

// hashSampleSize bounds how much file content feeds the quick hash.
const hashSampleSize = 32 * 1024

// MoveFiles moves each path into targetDir. Name conflicts resolve by
// renaming; a conflict whose content already matches the source is
// treated as done and the source is removed.
func (f *Finder) MoveFiles(paths []string, targetDir string) FileOpResult {
	if err := ensureTargetDir(targetDir); err != nil {
		return FileOpResult{Message: err.Error()}
	}

	var errs []string
	moved := 0
	for _, src := range paths {
		if err := moveOne(src, targetDir); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", filepath.Base(src), err))
			continue
		}
		moved++
	}
	return summarize("Moved", moved, len(paths), errs)
}

// CopyFiles copies each path (files and directories) into targetDir.
func (f *Finder) CopyFiles(paths []string, targetDir string) FileOpResult {
	if err := ensureTargetDir(targetDir); err != nil {
		return FileOpResult{Message: err.Error()}
	}

	var errs []string
	copied := 0
	for _, src := range paths {
		if err := copyOne(src, targetDir); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", filepath.Base(src), err))
			continue
		}
		copied++
	}
	return summarize("Copied", copied, len(paths), errs)
}

// TrashFiles moves each path into the user trash directory instead of
// deleting it outright.
func (f *Finder) TrashFiles(paths []string) FileOpResult {
	trashDir := userTrashDir(f.home)
	if err := ensureTargetDir(trashDir); err != nil {
		return FileOpResult{Message: err.Error()}
	}

	var errs []string
	trashed := 0
	for _, src := range paths {
		target := resolveConflict(filepath.Join(trashDir, filepath.Base(src)))
		if err := rename(src, target); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", filepath.Base(src), err))
			continue
		}
		trashed++
	}
	return summarize("Trashed", trashed, len(paths), errs)
}

// RenameFile gives the entry at path a new base name within its directory.
func (f *Finder) RenameFile(path, newName string) FileOpResult {
	if newName == "" || strings.ContainsRune(newName, os.PathSeparator) {
		return FileOpResult{Message: fmt.Sprintf("invalid name: %q", newName)}
	}
	target := filepath.Join(filepath.Dir(path), newName)
	if _, err := os.Stat(target); err == nil {
		return FileOpResult{Message: fmt.Sprintf("%s already exists", newName)}
	}
	if err := os.Rename(path, target); err != nil {
		return FileOpResult{Message: fmt.Sprintf("rename failed: %v", err)}
	}
	return FileOpResult{Success: true, Message: "Renamed to " + newName, AffectedCount: 1}
}

// CreateFolder creates a single new directory under parent.
func (f *Finder) CreateFolder(parent, name string) FileOpResult {
	if name == "" || strings.ContainsRune(name, os.PathSeparator) {
		return FileOpResult{Message: fmt.Sprintf("invalid name: %q", name)}
	}
	if err := os.Mkdir(filepath.Join(parent, name), 0o755); err != nil {
		return FileOpResult{Message: fmt.Sprintf("create folder failed: %v", err)}
	}
	return FileOpResult{Success: true, Message: "Created " + name, AffectedCount: 1}
}

// CompressFiles writes the given paths into a ZIP archive, recursing
// into directories. Entries that cannot be read are reported but do not
// abort the archive.
func (f *Finder) CompressFiles(paths []string, archivePath string) FileOpResult {
	out, err := os.Create(archivePath)
	if err != nil {
		return FileOpResult{Message: fmt.Sprintf("create archive: %v", err)}
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	var errs []string
	added := 0
	for _, src := range paths {
		if err := addToArchive(zw, src); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", filepath.Base(src), err))
			continue
		}
		added++
	}
	if err := zw.Close(); err != nil {
		errs = append(errs, fmt.Sprintf("finalize archive: %v", err))
	}
	return summarize("Compressed", added, len(paths), errs)
}

// summarize folds per-item outcomes into one FileOpResult. Partial
// success keeps the count of items that did succeed.
func summarize(verb string, ok, total int, errs []string) FileOpResult {
	if len(errs) == 0 {
		return FileOpResult{
			Success:       true,
			Message:       fmt.Sprintf("%s %d item(s)", verb, ok),
			AffectedCount: ok,
		}
	}
	return FileOpResult{
		Message:       fmt.Sprintf("%s %d of %d item(s); errors: %s", verb, ok, total, strings.Join(errs, "; ")),
		AffectedCount: ok,
	}
}

func ensureTargetDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create target directory: %v", err)
	}
	return nil
}

// moveOne moves src into targetDir, falling back to copy-and-remove when
// a direct rename crosses devices.
func moveOne(src, targetDir string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("source unavailable: %v", err)
	}

	target := filepath.Join(targetDir, filepath.Base(src))
	if _, err := os.Stat(target); err == nil {
		if !info.IsDir() && sameContent(src, target) {
			// Identical file already at the destination.
			return os.Remove(src)
		}
		target = resolveConflict(target)
	}

	return rename(src, target)
}

// rename wraps os.Rename with a copy-and-remove fallback for files.
func rename(src, target string) error {
	if err := os.Rename(src, target); err == nil {
		return nil
	}
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("source unavailable: %v", err)
	}
	if info.IsDir() {
		if err := copyDir(src, target); err != nil {
			return err
		}
		return os.RemoveAll(src)
	}
	if err := copyFile(src, target, info.Mode()); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyOne(src, targetDir string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("source unavailable: %v", err)
	}

	target := filepath.Join(targetDir, filepath.Base(src))
	if _, err := os.Stat(target); err == nil {
		if !info.IsDir() && sameContent(src, target) {
			// Skip: an identical copy is already there.
			return nil
		}
		target = resolveConflict(target)
	}

	if info.IsDir() {
		return copyDir(src, target)
	}
	return copyFile(src, target, info.Mode())
}

func copyFile(src, target string, mode os.FileMode) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %v", err)
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create target: %v", err)
	}
	defer dstFile.Close()

	buf := make([]byte, 32*1024)
	if _, err := io.CopyBuffer(dstFile, srcFile, buf); err != nil {
		return fmt.Errorf("copy content: %v", err)
	}
	return nil
}

func copyDir(src, target string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(target, rel)
		if d.IsDir() {
			return os.MkdirAll(dst, 0o755)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, dst, info.Mode())
	})
}

// resolveConflict appends a numeric suffix until the name is free.
func resolveConflict(path string) string {
	if _, err := os.Stat(path); err != nil {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%d%s", base, counter, ext)
		if _, err := os.Stat(candidate); err != nil {
			return candidate
		}
	}
}

// sameContent reports whether two files share size and quick hash.
func sameContent(a, b string) bool {
	ha, err := contentHash(a)
	if err != nil {
		return false
	}
	hb, err := contentHash(b)
	if err != nil {
		return false
	}
	return ha == hb
}

// contentHash hashes the file size plus a leading content sample. Large
// files are memory-mapped so the sample read stays cheap.
func contentHash(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}

	h := xxhash.New()
	binary.Write(h, binary.LittleEndian, info.Size())

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if info.Size() >= minMMapSize {
		data, err := mmap.Map(f, mmap.RDONLY, 0)
		if err == nil {
			h.Write(data[:hashSampleSize])
			data.Unmap()
			return h.Sum64(), nil
		}
		// Fall through to a plain read if mapping fails.
	}

	buf := make([]byte, hashSampleSize)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return 0, err
	}
	h.Write(buf[:n])
	return h.Sum64(), nil
}

// addToArchive writes one path (file or directory tree) into the ZIP.
func addToArchive(zw *zip.Writer, src string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	base := filepath.Base(src)
	if !info.IsDir() {
		return writeArchiveEntry(zw, src, base, info)
	}
	return filepath.WalkDir(src, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		entryInfo, err := d.Info()
		if err != nil {
			return err
		}
		return writeArchiveEntry(zw, path, filepath.ToSlash(filepath.Join(base, rel)), entryInfo)
	})
}

func writeArchiveEntry(zw *zip.Writer, path, name string, info os.FileInfo) error {
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

// userTrashDir returns the platform trash location for the given home.
func userTrashDir(home string) string {
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, ".Trash")
	}
	return filepath.Join(home, ".local", "share", "Trash", "files")
}
