package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/podsnap/internal/logger"
)

func (s *ProcessorSuite) TestFileHandler() {
	inbox := s.T().TempDir()
	out := s.T().TempDir()
	dropped := filepath.Join(inbox, "Weekly Show.mp3")
	s.Require().NoError(os.WriteFile(dropped, []byte("audio"), 0o644))

	handle := NewFileHandler(func() Processor { return s.newProcessor("joyful") }, out, logger.Nop())
	s.Require().NoError(handle(context.Background(), dropped))

	s.FileExists(filepath.Join(out, "weekly-show-summary.mp3"))
	s.FileExists(filepath.Join(out, "weekly-show.docx"))
	s.NoFileExists(dropped)
	s.Empty(s.tempEntries(), "session is reset after export")
}

func (s *ProcessorSuite) TestFileHandlerKeepsFailedFile() {
	s.summarizer.err = errors.New("down")
	inbox := s.T().TempDir()
	dropped := filepath.Join(inbox, "ep.mp3")
	s.Require().NoError(os.WriteFile(dropped, []byte("audio"), 0o644))

	handle := NewFileHandler(func() Processor { return s.newProcessor("") }, s.T().TempDir(), logger.Nop())
	s.Error(handle(context.Background(), dropped))
	s.FileExists(dropped)
}
