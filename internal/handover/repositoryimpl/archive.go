package repositoryimpl

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/kazz187/techconsole/internal/handover"
	"github.com/kazz187/techconsole/pkg/cerr"
	"github.com/kazz187/techconsole/pkg/storage"
)

const archivePrefix = "reports"

var _ handover.ArchiveRepository = (*ArchiveRepository)(nil)

// ArchiveRepository stores rendered PDFs under reports/<id>/<ulid>.pdf, so
// listing a report's directory yields its renders oldest first.
type ArchiveRepository struct {
	storage storage.Storage
}

func NewArchiveRepository(s storage.Storage) *ArchiveRepository {
	return &ArchiveRepository{storage: s}
}

func (r *ArchiveRepository) Put(ctx context.Context, reportID int64, pdf []byte) (string, error) {
	path := fmt.Sprintf("%s/%d/%s.pdf", archivePrefix, reportID, ulid.Make().String())
	if err := r.storage.Write(ctx, path, pdf); err != nil {
		return "", cerr.WrapStorageWriteError("report archive", err)
	}
	return path, nil
}

func (r *ArchiveRepository) List(ctx context.Context, reportID int64) ([]string, error) {
	paths, err := r.storage.List(ctx, fmt.Sprintf("%s/%d", archivePrefix, reportID))
	if err != nil {
		return nil, cerr.WrapStorageReadError("report archive", err)
	}
	var out []string
	for _, p := range paths {
		if strings.HasSuffix(p, ".pdf") {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}
