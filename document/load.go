package document

import (
	"context"
	"fmt"

	"github.com/viant/afs"
)

// Load fetches document content from the supplied URL or file path.
func Load(ctx context.Context, URL string) ([]byte, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load document %s: %w", URL, err)
	}
	return data, nil
}
