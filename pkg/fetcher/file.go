package fetcher

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmylchreest/domassert/internal/logger"
)

// FileFetcher reads HTML from the local filesystem. Sources may be plain
// paths or file:// URLs.
type FileFetcher struct{}

// NewFile creates a file fetcher.
func NewFile() *FileFetcher {
	return &FileFetcher{}
}

// Fetch reads the file at source.
func (f *FileFetcher) Fetch(ctx context.Context, source string, _ Options) (Content, error) {
	if err := ctx.Err(); err != nil {
		return Content{}, err
	}

	path := source
	if strings.HasPrefix(source, "file://") {
		u, err := url.Parse(source)
		if err != nil {
			return Content{}, fmt.Errorf("invalid file URL: %w", err)
		}
		path = u.Path
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Content{}, fmt.Errorf("failed to read file: %w", err)
	}
	logger.Debug("file fetch complete", "path", path, "bytes", len(data))

	result := Content{
		URL:         source,
		HTML:        string(data),
		StatusCode:  200,
		ContentType: coalesce(mime.TypeByExtension(filepath.Ext(path)), "text/html"),
		FetchedAt:   time.Now(),
	}
	if err := extractTitle(&result); err != nil {
		return result, fmt.Errorf("failed to parse content: %w", err)
	}
	return result, nil
}

func (f *FileFetcher) Close() error {
	return nil
}

func (f *FileFetcher) Type() string {
	return string(ModeFile)
}
