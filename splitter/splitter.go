// Package splitter cuts document text into overlapping chunks for
// indexing. It prefers the coarsest separator that still yields chunks
// within the target size: paragraph breaks first, then line breaks,
// sentence ends, spaces and finally single runes.
package splitter

import "strings"

var defaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

type Splitter struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

// New returns a splitter with the given target chunk size and overlap,
// both measured in runes.
func New(chunkSize, chunkOverlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = 0
	}
	return &Splitter{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		separators:   defaultSeparators,
	}
}

// Split returns the chunks of text in order. Whitespace-only chunks are
// dropped; every returned chunk is at most chunkSize runes long.
func (s *Splitter) Split(text string) []string {
	return s.split(text, s.separators)
}

func (s *Splitter) split(text string, seps []string) []string {
	if runeLen(text) <= s.chunkSize {
		if t := strings.TrimSpace(text); t != "" {
			return []string{t}
		}
		return nil
	}

	sep, rest := pick(text, seps)
	if sep == "" {
		return s.hardCut(text)
	}

	// Separators stay attached to the preceding part so no text is lost
	// when parts are re-joined into chunks.
	parts := strings.SplitAfter(text, sep)

	var chunks []string
	var pending []string
	for _, p := range parts {
		if runeLen(p) > s.chunkSize {
			chunks = append(chunks, s.merge(pending)...)
			pending = nil
			chunks = append(chunks, s.split(p, rest)...)
			continue
		}
		pending = append(pending, p)
	}
	chunks = append(chunks, s.merge(pending)...)
	return chunks
}

// merge greedily joins small parts into chunks of at most chunkSize
// runes, carrying trailing parts of up to chunkOverlap runes into the
// next chunk.
func (s *Splitter) merge(parts []string) []string {
	var chunks []string
	var cur []string
	curLen := 0

	flush := func() {
		if c := strings.TrimSpace(strings.Join(cur, "")); c != "" {
			chunks = append(chunks, c)
		}
	}

	for _, p := range parts {
		pl := runeLen(p)
		if curLen+pl > s.chunkSize && curLen > 0 {
			flush()
			for curLen > s.chunkOverlap || (curLen > 0 && curLen+pl > s.chunkSize) {
				curLen -= runeLen(cur[0])
				cur = cur[1:]
			}
		}
		cur = append(cur, p)
		curLen += pl
	}
	flush()
	return chunks
}

// hardCut is the last resort when no separator applies: fixed rune
// windows with overlap.
func (s *Splitter) hardCut(text string) []string {
	runes := []rune(text)
	step := s.chunkSize - s.chunkOverlap
	var chunks []string
	for i := 0; i < len(runes); i += step {
		end := i + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		if c := strings.TrimSpace(string(runes[i:end])); c != "" {
			chunks = append(chunks, c)
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}

// pick returns the first separator present in text and the remaining,
// finer separators to recurse with.
func pick(text string, seps []string) (string, []string) {
	for i, sep := range seps {
		if sep == "" {
			return "", nil
		}
		if strings.Contains(text, sep) {
			return sep, seps[i+1:]
		}
	}
	return "", nil
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
