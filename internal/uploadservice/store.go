package uploadservice

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// sniffLen is how much of the file is read up front to detect its type.
const sniffLen = 3072

// NewStore creates dir if it does not exist yet.
func NewStore(dir, urlPrefix string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create upload directory: %w", err)
	}

	return &Store{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		maxBytes:  maxBytes,
		now:       time.Now,
	}, nil
}

func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// Save stores the content of r under a generated name. The client supplied name is only kept as
// metadata and never reaches the file system.
func (s *Store) Save(r io.Reader, originalName string) (*Upload, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	head = head[:n]

	if n == 0 {
		return nil, ErrEmptyFile
	}

	mtype := mimetype.Detect(head)
	if !mimetype.EqualsAny(mtype.String(), AllowedTypes...) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mtype.String())
	}

	name := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), uuid.NewString(), mtype.Extension())
	dst := filepath.Join(s.dir, name)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}

	// one byte past the limit is enough to tell that the file is too large
	size, err := io.Copy(f, io.LimitReader(io.MultiReader(bytes.NewReader(head), r), s.maxBytes+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && size > s.maxBytes {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(dst)
		return nil, err
	}

	return &Upload{
		Path:         path.Join(s.urlPrefix, name),
		Name:         name,
		OriginalName: baseName(originalName),
		ContentType:  mtype.String(),
		Size:         size,
	}, nil
}

// Remove deletes a file previously returned by Save. Missing files are ignored.
func (s *Store) Remove(p string) error {
	name := strings.TrimPrefix(p, s.urlPrefix+"/")
	if name == "" || name == p || name != filepath.Base(name) || name == ".." {
		return ErrInvalidPath
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}

// baseName keeps the last element of a client supplied path, whichever separator it used.
func baseName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	return name
}
