// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package sshconfig maintains the git-id owned regions of ~/.ssh/config.
// The file is modelled as an ordered list of segments: foreign text, which
// round-trips byte-for-byte, and owned blocks delimited by per-account
// markers, which git-id regenerates at will.
package sshconfig

import (
	"fmt"
	"strings"
)

const (
	beginPrefix = "# >>> git-id: "
	beginSuffix = " >>>"
	endPrefix   = "# <<< git-id: "
	endSuffix   = " <<<"
)

// BeginMarker returns the opening marker line for an account id (user@host).
func BeginMarker(id string) string { return beginPrefix + id + beginSuffix }

// EndMarker returns the closing marker line for an account id.
func EndMarker(id string) string { return endPrefix + id + endSuffix }

type segment struct {
	owned bool
	id    string // account id, owned segments only
	text  string // raw bytes including trailing newline, if any
}

// File is a parsed ssh config with addressable owned blocks.
type File struct {
	segments []segment
}

// Parse splits content into foreign and owned segments. An opening marker
// without its closing counterpart is left alone as foreign text; git-id
// never guesses at the extent of a damaged block.
func Parse(content string) *File {
	f := &File{}
	rest := content
	for rest != "" {
		idx, id := findBegin(rest)
		if idx < 0 {
			f.segments = append(f.segments, segment{text: rest})
			break
		}
		if idx > 0 {
			f.segments = append(f.segments, segment{text: rest[:idx]})
		}
		block := rest[idx:]
		end := EndMarker(id)
		endIdx := findLineStart(block, end)
		if endIdx < 0 {
			// Unterminated block: preserve verbatim.
			f.segments = append(f.segments, segment{text: block})
			break
		}
		stop := endIdx + len(end)
		if stop < len(block) && block[stop] == '\n' {
			stop++
		}
		f.segments = append(f.segments, segment{owned: true, id: id, text: block[:stop]})
		rest = block[stop:]
	}
	return f
}

// findBegin locates the earliest begin marker at a line start and returns
// its byte offset and the account id it names, or (-1, "").
func findBegin(s string) (int, string) {
	offset := 0
	for {
		idx := strings.Index(s[offset:], beginPrefix)
		if idx < 0 {
			return -1, ""
		}
		idx += offset
		if idx != 0 && s[idx-1] != '\n' {
			offset = idx + len(beginPrefix)
			continue
		}
		lineEnd := strings.IndexByte(s[idx:], '\n')
		line := s[idx:]
		if lineEnd >= 0 {
			line = s[idx : idx+lineEnd]
		}
		if !strings.HasSuffix(line, beginSuffix) {
			offset = idx + len(beginPrefix)
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(line, beginPrefix), beginSuffix)
		return idx, id
	}
}

// findLineStart returns the offset of marker occurring at a line start.
func findLineStart(s, marker string) int {
	offset := 0
	for {
		idx := strings.Index(s[offset:], marker)
		if idx < 0 {
			return -1
		}
		idx += offset
		if idx == 0 || s[idx-1] == '\n' {
			return idx
		}
		offset = idx + len(marker)
	}
}

// OwnedIDs returns the account ids of all owned blocks in file order.
func (f *File) OwnedIDs() []string {
	var ids []string
	for _, seg := range f.segments {
		if seg.owned {
			ids = append(ids, seg.id)
		}
	}
	return ids
}

// SetBlock replaces the owned block for id, or appends one at the end of
// the file separated from existing content by a blank line.
func (f *File) SetBlock(id, body string) {
	text := renderBlock(id, body)
	for i, seg := range f.segments {
		if seg.owned && seg.id == id {
			f.segments[i].text = text
			return
		}
	}
	if n := len(f.segments); n > 0 {
		last := &f.segments[n-1]
		trimmed := strings.TrimRight(last.text, "\n")
		if trimmed == "" {
			last.text = ""
		} else {
			last.text = trimmed + "\n\n"
		}
	}
	f.segments = append(f.segments, segment{owned: true, id: id, text: text})
}

// RemoveBlock deletes the owned block for id, if present.
func (f *File) RemoveBlock(id string) {
	for i, seg := range f.segments {
		if seg.owned && seg.id == id {
			f.segments = append(f.segments[:i:i], f.segments[i+1:]...)
			return
		}
	}
}

// Render reassembles the file. Foreign segments keep their exact bytes.
func (f *File) Render() string {
	var b strings.Builder
	for _, seg := range f.segments {
		b.WriteString(seg.text)
	}
	return b.String()
}

// renderBlock wraps a stanza body in its marker lines. The body must end
// with a newline.
func renderBlock(id, body string) string {
	return fmt.Sprintf("%s\n%s%s\n", BeginMarker(id), body, EndMarker(id))
}
