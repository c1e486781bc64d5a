// Package textproc normalizes raw policy text before indexing.
package textproc

import (
	"errors"
	"regexp"
	"strings"
)

// ErrBadChunking guards the window arithmetic: overlap >= size would make the
// window stop advancing.
var ErrBadChunking = errors.New("chunk overlap must be non-negative and smaller than chunk size")

var (
	disallowed = regexp.MustCompile(`[^\w\s.,:;\-()%₹$]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Clean strips characters outside the allow-list (word characters, whitespace
// and a fixed punctuation set including currency symbols) and collapses
// whitespace runs to single spaces. Case is preserved. Idempotent.
func Clean(text string) string {
	text = disallowed.ReplaceAllString(text, "")
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// ChunkWords splits text into space-joined groups of size words, advancing
// the window by size-overlap words per step. The last chunk may be shorter.
// Empty input yields no chunks.
func ChunkWords(text string, size, overlap int) ([]string, error) {
	if size <= 0 || overlap < 0 || overlap >= size {
		return nil, ErrBadChunking
	}

	words := strings.Fields(text)
	var chunks []string
	for i := 0; i < len(words); i += size - overlap {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks, nil
}
