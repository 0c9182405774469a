// Package output materializes compile results on disk.
//
// Every write first creates the target's missing ancestors with a single
// idempotent MkdirAll, so writing twice into the same fresh directory tree
// succeeds both times.
package output

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/rollerblade/internal/compiler"
	"git.home.luguber.info/inful/rollerblade/internal/foundation/errors"
	"git.home.luguber.info/inful/rollerblade/internal/logfields"
)

const (
	dirPerm  = 0o750
	filePerm = 0o644
)

// ChangeExtension replaces the extension of p with ext (with or without the
// leading dot), keeping the directory. A leading dot is part of the name, so
// ".ts" becomes ".ts.js".
func ChangeExtension(p, ext string) string {
	dir, base := filepath.Split(p)
	name := base
	if e := filepath.Ext(base); e != base {
		name = strings.TrimSuffix(base, e)
	}
	return filepath.Join(dir, name+"."+strings.TrimPrefix(ext, "."))
}

// MetadataName is the sibling file name used for extracted metadata.
func MetadataName(primary string) string {
	return ChangeExtension(primary, "json")
}

// EnsureDir creates dir and every missing ancestor. Existing directories are
// not an error.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return errors.FileSystemError("failed to create output directory").
			WithPath(dir).
			WithCause(err).
			Build()
	}
	return nil
}

// Write writes file into dir, creating missing parent directories first, and
// returns the written path.
func Write(dir string, file compiler.OutputFile) (string, error) {
	if file.Name == "" {
		return "", errors.FileSystemError("output file has no name").WithPath(dir).Build()
	}
	target := filepath.Join(dir, file.Name)
	if err := EnsureDir(filepath.Dir(target)); err != nil {
		return "", err
	}
	// #nosec G306 -- compiled assets are meant to be world readable.
	if err := os.WriteFile(target, file.Contents, filePerm); err != nil {
		return "", errors.FileSystemError("failed to write output file").
			WithPath(target).
			WithCause(err).
			Build()
	}
	return target, nil
}

// WriteResult writes every file of res next to its resolved output path and,
// when the result asks for it, the metadata as a sibling JSON file. It
// returns the written paths in order.
func WriteResult(res *compiler.Result) ([]string, error) {
	if res == nil {
		return nil, errors.InternalError("nil compile result").Build()
	}

	dir := res.Dir()
	written := make([]string, 0, len(res.Files)+1)
	for _, f := range res.Files {
		p, err := Write(dir, f)
		if err != nil {
			return written, err
		}
		slog.Debug("Wrote output file", logfields.Path(p), slog.Int("bytes", len(f.Contents)))
		written = append(written, p)
	}

	if res.EmitMetadata && len(res.Metadata) > 0 {
		meta, err := MetadataFile(res)
		if err != nil {
			return written, err
		}
		p, err := Write(dir, meta)
		if err != nil {
			return written, err
		}
		slog.Debug("Wrote metadata file", logfields.Input(res.Input), logfields.Path(p))
		written = append(written, p)
	}
	return written, nil
}

// MetadataFile serializes res.Metadata into the sibling JSON artifact.
func MetadataFile(res *compiler.Result) (compiler.OutputFile, error) {
	data, err := json.Marshal(res.Metadata)
	if err != nil {
		return compiler.OutputFile{}, errors.WrapError(err, errors.CategoryInternal, "failed to serialize metadata").
			WithPath(res.Input).
			Build()
	}
	return compiler.OutputFile{Name: MetadataName(res.Primary().Name), Contents: data}, nil
}
