package model

import "io"

// Upload is an audio file submitted from the browser or dropped into the inbox.
type Upload struct {
	Filename string
	Body     io.Reader
}

// Input is what a user submits to start a session: an upload or a video URL.
type Input struct {
	Upload *Upload
	URL    string
}

// FromUpload builds an upload input.
func FromUpload(filename string, body io.Reader) Input {
	return Input{Upload: &Upload{Filename: filename, Body: body}}
}

// FromURL builds a URL input.
func FromURL(rawURL string) Input {
	return Input{URL: rawURL}
}

// IsUpload reports whether the input carries uploaded bytes.
func (in Input) IsUpload() bool {
	return in.Upload != nil
}
