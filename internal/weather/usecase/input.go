package usecase

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pechorka/stdlib/pkg/errs"
	"github.com/shandysiswandi/gobrc/internal/pkg/pkgerror"
)

// resolveFile maps a client supplied name onto a regular file under dataDir.
func resolveFile(dataDir, name string) (string, int64, error) {
	if name == "" {
		return "", 0, pkgerror.NewInvalidInput(errors.New("file is required"))
	}
	if dataDir == "" {
		return "", 0, pkgerror.NewBusiness("file jobs are disabled", pkgerror.CodeConflict)
	}
	if !filepath.IsLocal(name) {
		return "", 0, pkgerror.NewInvalidInput(errors.New("file must be a relative path inside the data directory"))
	}

	path := filepath.Join(dataDir, name)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", 0, pkgerror.NewBusiness("file not found", pkgerror.CodeNotFound)
	}
	if err != nil {
		return "", 0, pkgerror.NewServer(err)
	}
	if !info.Mode().IsRegular() {
		return "", 0, pkgerror.NewInvalidInput(errors.New("file is not a regular file"))
	}

	return path, info.Size(), nil
}

// spool copies r into a fresh file under dir. The caller owns the file.
func spool(dir string, r io.Reader) (string, int64, error) {
	f, err := os.CreateTemp(dir, "upload-*.txt")
	if err != nil {
		return "", 0, errs.Wrap(err, "create spool file")
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return "", 0, errs.Wrap(err, "write spool file")
	}

	return f.Name(), n, nil
}
