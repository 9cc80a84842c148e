package updater

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tomtom215/wavealert360/internal/logging"
)

// ArchiveBackup walks workingTree and writes a tar.gz snapshot of it to
// backupDir, named backup-<timestamp>.tar.gz. Writers are chained
// file -> gzip -> tar and closed in reverse order so a partial write
// never leaves a corrupt archive silently accepted.
func ArchiveBackup(workingTree, backupDir string, now time.Time) (string, error) {
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	name := fmt.Sprintf("backup-%s.tar.gz", now.UTC().Format("20060102-150405"))
	path := filepath.Join(backupDir, name)

	outFile, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create backup archive: %w", err)
	}

	gz := gzip.NewWriter(outFile)
	tw := tar.NewWriter(gz)

	walkErr := filepath.WalkDir(workingTree, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		return addFileToArchive(tw, workingTree, p)
	})

	closeErr := tw.Close()
	if gzErr := gz.Close(); closeErr == nil {
		closeErr = gzErr
	}
	if fileErr := outFile.Close(); closeErr == nil {
		closeErr = fileErr
	}

	if walkErr != nil {
		os.Remove(path)
		return "", fmt.Errorf("walk working tree for backup: %w", walkErr)
	}
	if closeErr != nil {
		os.Remove(path)
		return "", fmt.Errorf("finalize backup archive: %w", closeErr)
	}

	info, statErr := os.Stat(path)
	if statErr == nil {
		logging.Info().
			Str("path", path).
			Str("size", humanize.Bytes(uint64(info.Size()))).
			Msg("pre-update backup archive written")
	}

	return path, nil
}

func addFileToArchive(tw *tar.Writer, root, srcPath string) error {
	info, err := os.Lstat(srcPath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", srcPath, err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return nil
	}

	relPath, err := filepath.Rel(root, srcPath)
	if err != nil {
		return fmt.Errorf("relativize %s: %w", srcPath, err)
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("build tar header for %s: %w", srcPath, err)
	}
	header.Name = relPath

	if err := tw.WriteHeader(header); err != nil {
		return fmt.Errorf("write tar header for %s: %w", srcPath, err)
	}

	file, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", srcPath, err)
	}
	defer file.Close()

	if _, err := io.Copy(tw, file); err != nil {
		return fmt.Errorf("copy %s into archive: %w", srcPath, err)
	}
	return nil
}
