package chat2md

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alnah/go-chat2md/internal/fileutil"
	"github.com/alnah/go-chat2md/internal/pipeline"
)

// Output file permissions.
const (
	dirPerm  = 0o750
	filePerm = 0o644
)

// FileName derives the suggested file name for a transcript title.
func FileName(title string) string {
	return fileutil.SanitizeFileName(title, DefaultTitle) + FileExtension
}

// Delivery hands a finished Document to its destination.
type Delivery interface {
	Deliver(ctx context.Context, doc *Document) error
}

// FileDelivery writes documents into a directory as <FileName>.
type FileDelivery struct {
	Dir string // created if missing; empty means the working directory

	// Preview, when set, also writes an HTML rendering next to the Markdown
	// file, with the same stem and an .html extension.
	Preview pipeline.HTMLConverter

	// Names, when set, keeps documents delivered through it from sharing a
	// path. Share one NameSet across the deliveries of a batch.
	Names *NameSet
}

// NameSet hands out distinct output paths. The first claim of a path gets it
// unchanged; later claims get "<stem> (2)<ext>", "<stem> (3)<ext>" and so on.
// Paths are compared case-insensitively so that two claims never land on the
// same file on case-folding file systems.
type NameSet struct {
	mu    sync.Mutex
	taken map[string]bool
}

// Claim reserves path, or the first free numbered variant of it.
func (s *NameSet) Claim(path string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.taken == nil {
		s.taken = make(map[string]bool)
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)

	candidate := path
	for n := 2; s.taken[strings.ToLower(candidate)]; n++ {
		candidate = fmt.Sprintf("%s (%d)%s", stem, n, ext)
	}
	s.taken[strings.ToLower(candidate)] = true
	return candidate
}

// Path returns where doc will be written.
func (d *FileDelivery) Path(doc *Document) string {
	name := doc.FileName
	if name == "" {
		name = FileName(doc.Title)
	}
	return filepath.Join(d.Dir, name)
}

// PreviewPath returns where doc's HTML preview will be written.
func (d *FileDelivery) PreviewPath(doc *Document) string {
	p := d.Path(doc)
	return strings.TrimSuffix(p, filepath.Ext(p)) + ".html"
}

// Deliver writes doc, and its preview when configured. With Names set,
// doc.FileName is updated to the name actually claimed.
func (d *FileDelivery) Deliver(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if d.Dir != "" {
		if err := os.MkdirAll(d.Dir, dirPerm); err != nil {
			return fmt.Errorf("%w: creating directory %s: %v", ErrWriteDocument, d.Dir, err)
		}
	}

	path := d.Path(doc)
	if d.Names != nil {
		path = d.Names.Claim(path)
		doc.FileName = filepath.Base(path)
	}
	if err := fileutil.WriteFileAtomic(path, []byte(doc.Body), filePerm); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteDocument, path, err)
	}

	if d.Preview == nil {
		return nil
	}

	page, err := d.Preview.ToHTML(ctx, doc.Title, doc.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWritePreview, err)
	}
	previewPath := d.PreviewPath(doc)
	if err := fileutil.WriteFileAtomic(previewPath, []byte(page), filePerm); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWritePreview, previewPath, err)
	}
	return nil
}

// WriterDelivery writes the Markdown body to W (stdout in the CLI).
type WriterDelivery struct {
	W io.Writer
}

// Deliver writes doc.Body to the writer.
func (d *WriterDelivery) Deliver(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := io.WriteString(d.W, doc.Body); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDocument, err)
	}
	return nil
}
