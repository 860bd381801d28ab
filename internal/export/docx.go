// Package export writes a finished session's summary and transcript as a
// Word document.
package export

import (
	"errors"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 12
	textColor = "000000"
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*•]\s+(.+)$`)
)

// Document is the content of one export.
type Document struct {
	Title      string
	Summary    string
	Transcript string
}

// WriteDocx renders doc to a .docx file at outputPath. The summary is read
// as light markdown; the transcript becomes one paragraph per non-blank line.
func WriteDocx(doc Document, outputPath string) error {
	if strings.TrimSpace(doc.Summary) == "" && strings.TrimSpace(doc.Transcript) == "" {
		return errors.New("nothing to export")
	}

	d, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	title := strings.TrimSpace(doc.Title)
	if title == "" {
		title = "Podcast summary"
	}
	addStyledRun(d.AddParagraph(""), title, true, 16)

	if strings.TrimSpace(doc.Summary) != "" {
		addStyledRun(d.AddParagraph(""), "Summary", true, 14)
		writeMarkdown(d, doc.Summary)
	}

	if strings.TrimSpace(doc.Transcript) != "" {
		addStyledRun(d.AddParagraph(""), "Transcript", true, 14)
		for _, line := range transcriptParagraphs(doc.Transcript) {
			d.AddParagraph("").AddText(line).Font(fontName).Size(fontSize).Color(textColor)
		}
	}

	return d.SaveTo(outputPath)
}

func writeMarkdown(d *docx.RootDoc, markdown string) {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			addStyledRun(d.AddParagraph(""), m[2], true, headingSize(len(m[1])))
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			addRichText(d.AddParagraph(""), "• "+m[1])
			continue
		}

		addRichText(d.AddParagraph(""), trimmed)
	}
}

// transcriptParagraphs drops blank lines and exact repeats, which speech
// models sometimes emit on long silences.
func transcriptParagraphs(transcript string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(transcript, "\n") {
		t := strings.TrimSpace(line)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color(textColor)
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(fontName).Size(fontSize).Color(textColor)
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(fontName).Size(fontSize).Color(textColor).Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
