package speech

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	reSentenceEnd = regexp.MustCompile(`([.?!]) `)
	reEmphasis    = regexp.MustCompile(`\b(important|key|critical|note)\b`)

	xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// FormatMarkup adds pacing to plain text: a one second break after each
// sentence, a short break in place of every comma, and strong emphasis on a
// few signal words.
func FormatMarkup(text string) string {
	text = xmlEscaper.Replace(text)
	text = reSentenceEnd.ReplaceAllString(text, `$1 <break time="1s"/> `)
	text = strings.ReplaceAll(text, ",", `<break time='500ms'/>`)
	text = reEmphasis.ReplaceAllString(text, `<emphasis level="strong">$1</emphasis>`)
	return text
}

// BuildSSML wraps the formatted text in a speak document for voice.
func BuildSSML(text string, voice Voice) string {
	return fmt.Sprintf(`<speak version='1.0' xmlns='http://www.w3.org/2001/10/synthesis' xmlns:mstts='https://www.w3.org/2001/mstts' xml:lang='en-US'>
    <voice name='%s'>
        <mstts:express-as style='%s'>
            <prosody rate="medium">
                %s
            </prosody>
        </mstts:express-as>
    </voice>
</speak>`, voice.Name, voice.Style, FormatMarkup(text))
}
