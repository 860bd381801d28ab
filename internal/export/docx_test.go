package export

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptParagraphs(t *testing.T) {
	got := transcriptParagraphs("hello\n\n  hello \nworld\n")
	assert.Equal(t, []string{"hello", "world"}, got)
}

func TestCleanMarkdownInline(t *testing.T) {
	assert.Equal(t, "bold and code", cleanMarkdownInline("**bold** and `code`"))
}

func TestWriteDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ep1.docx")

	err := WriteDocx(Document{
		Title:      "ep1",
		Summary:    "## Highlights\n- **Key** idea\n- second idea",
		Transcript: "welcome to the show\nthanks for listening",
	}, path)
	require.NoError(t, err)

	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	var body string
	for _, f := range r.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		body = string(data)
	}

	require.NotEmpty(t, body)
	for _, want := range []string{"ep1", "Highlights", "Key", "welcome to the show", "thanks for listening"} {
		assert.True(t, strings.Contains(body, want), "document should contain %q", want)
	}
}

func TestWriteDocxEmpty(t *testing.T) {
	err := WriteDocx(Document{Title: "x"}, filepath.Join(t.TempDir(), "x.docx"))
	assert.Error(t, err)
}
