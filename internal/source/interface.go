package source

import (
	"context"

	"github.com/nguyentantai21042004/podsnap/internal/model"
)

// Audio is a resolved source clip on local disk.
type Audio struct {
	Path  string
	Title string
}

// Resolver turns user input into a local audio file inside a session directory.
type Resolver interface {
	FromUpload(ctx context.Context, dir string, up model.Upload) (Audio, error)
	FromURL(ctx context.Context, dir string, rawURL string) (Audio, error)
}
