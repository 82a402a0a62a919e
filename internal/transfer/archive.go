package transfer

import (
	"archive/tar"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/portctl/portctl/internal/port"
)

// Archive formats.
const (
	FormatJSON = "json"
	FormatTar  = "tar"
)

// ErrMissingBlueprints is returned when an archive lacks the required
// blueprints section.
var ErrMissingBlueprints = errors.New("archive missing required \"blueprints\" section")

// WriteArchive serializes a snapshot to path in the given format, creating
// parent directories as needed.
func WriteArchive(snap *Snapshot, path, format string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	switch format {
	case FormatJSON:
		return writeJSON(snap, path)
	case FormatTar:
		return writeTar(snap, path)
	default:
		return fmt.Errorf("unsupported output format %q (want json or tar)", format)
	}
}

// ReadArchive loads a snapshot from path, inferring the format from the
// filename: .json is a flat JSON document, anything containing .tar or
// ending in .gz is a gzip tar. The archive must contain a blueprints
// section.
func ReadArchive(path string) (*Snapshot, error) {
	name := filepath.Base(path)
	switch {
	case strings.HasSuffix(name, ".json"):
		return readJSON(path)
	case strings.Contains(name, ".tar") || strings.HasSuffix(name, ".gz"):
		return readTar(path)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", path)
	}
}

func writeJSON(snap *Snapshot, path string) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}

func readJSON(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("parse archive %s: %w", path, err)
	}
	if _, ok := sections[KindBlueprints]; !ok {
		return nil, ErrMissingBlueprints
	}

	snap := NewSnapshot()
	for kind, raw := range sections {
		var records []port.Record
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("parse %s section: %w", kind, err)
		}
		snap.setRecords(kind, records)
	}
	return snap, nil
}

func writeTar(snap *Snapshot, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer func() { _ = file.Close() }()

	gzw := gzip.NewWriter(file)
	tw := tar.NewWriter(gzw)

	for _, kind := range KindOrder {
		data, err := json.MarshalIndent(snap.Records(kind), "", "  ")
		if err != nil {
			return fmt.Errorf("marshal %s: %w", kind, err)
		}
		if err := writeTarFile(tw, kind+".json", data); err != nil {
			return fmt.Errorf("write %s: %w", kind, err)
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("close tar: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("close gzip: %w", err)
	}
	return nil
}

// writeTarFile writes a single file to a tar archive.
func writeTarFile(tw *tar.Writer, name string, data []byte) error {
	header := &tar.Header{
		Name:    name,
		Mode:    0644,
		Size:    int64(len(data)),
		ModTime: time.Now(),
	}
	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	_, err := tw.Write(data)
	return err
}

func readTar(path string) (*Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = file.Close() }()

	gzr, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("read archive %s: %w", path, err)
	}
	defer func() { _ = gzr.Close() }()

	snap := NewSnapshot()
	seenBlueprints := false

	// Every .json member becomes the section named by its base name;
	// member order does not matter.
	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read archive %s: %w", path, err)
		}
		if header.Typeflag != tar.TypeReg || !strings.HasSuffix(header.Name, ".json") {
			continue
		}

		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", header.Name, err)
		}
		kind := strings.TrimSuffix(filepath.Base(header.Name), ".json")
		var records []port.Record
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse %s: %w", header.Name, err)
		}
		if snap.setRecords(kind, records) && kind == KindBlueprints {
			seenBlueprints = true
		}
	}

	if !seenBlueprints {
		return nil, ErrMissingBlueprints
	}
	return snap, nil
}
