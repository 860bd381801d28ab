package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/podsnap/internal/model"
	"github.com/nguyentantai21042004/podsnap/internal/speech"
)

// Session copies a ready session's narrated summary into outDir and writes the
// summary document beside it. It returns the paths written.
func Session(s model.Session, outDir string) ([]string, error) {
	if s.Stage != model.StageReady {
		return nil, fmt.Errorf("session is %s, not ready", s.Stage)
	}
	if s.SummaryAudioPath == "" {
		return nil, errors.New("session has no summary audio")
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	audioOut := filepath.Join(outDir, speech.DownloadName(s.Title))
	if err := copyFile(s.SummaryAudioPath, audioOut); err != nil {
		return nil, fmt.Errorf("copy summary audio: %w", err)
	}

	docOut := filepath.Join(outDir, speech.Slug(s.Title)+".docx")
	if err := WriteDocx(Document{Title: s.Title, Summary: s.Summary, Transcript: s.Transcript}, docOut); err != nil {
		return []string{audioOut}, fmt.Errorf("write document: %w", err)
	}

	return []string{audioOut, docOut}, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
