// Package export packages generated artifacts for the user: a flat zip
// archive, or loose files in a directory.
package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/styleforge/styleforge/internal/fsops"
	"github.com/styleforge/styleforge/internal/pipeline"
)

// WriteArchive writes one zip entry per artifact, entry path equal to the
// artifact file name, no directory nesting.
func WriteArchive(w io.Writer, artifacts []pipeline.GeneratedArtifact) error {
	archive := zip.NewWriter(w)
	for _, artifact := range artifacts {
		entry, err := archive.Create(artifact.FileName)
		if err != nil {
			return fmt.Errorf("create archive entry %s: %w", artifact.FileName, err)
		}
		if _, err := entry.Write([]byte(artifact.Content)); err != nil {
			return fmt.Errorf("write archive entry %s: %w", artifact.FileName, err)
		}
	}
	return archive.Close()
}

// SaveArchive writes the archive to path. A no-op when there are no
// artifacts, matching the save-all command binding.
func SaveArchive(filesystem fsops.FS, path string, artifacts []pipeline.GeneratedArtifact) error {
	if len(artifacts) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := WriteArchive(&buf, artifacts); err != nil {
		return err
	}
	if err := filesystem.MkdirAll(filesystem.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create archive directory: %w", err)
	}
	return filesystem.WriteFile(path, buf.Bytes(), os.FileMode(0o644))
}

// SaveAll writes each artifact as a loose file under dir. A no-op when there
// are no artifacts.
func SaveAll(filesystem fsops.FS, dir string, artifacts []pipeline.GeneratedArtifact) error {
	if len(artifacts) == 0 {
		return nil
	}
	if err := filesystem.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, artifact := range artifacts {
		path := filesystem.Join(dir, filesystem.Base(artifact.FileName))
		if err := filesystem.WriteFile(path, []byte(artifact.Content), os.FileMode(0o644)); err != nil {
			return fmt.Errorf("write artifact %s: %w", artifact.FileName, err)
		}
	}
	return nil
}
