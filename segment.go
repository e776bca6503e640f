package main

import (
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Segment splits a submitted phrase into the fragments that become floaters.
// Whitespace always wins; the policy only applies to phrases without any.
func Segment(text string, policy SegmentPolicy, rng *rand.Rand) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if strings.IndexFunc(text, unicode.IsSpace) >= 0 {
		return strings.Fields(text)
	}

	switch policy {
	case SegmentWords:
		return segmentWords(text)
	case SegmentChunks:
		if rng != nil {
			return segmentChunks(text, rng)
		}
	}
	return segmentGraphemes(text)
}

// segmentWords uses UAX #29 word boundaries, which also split scripts that
// have no spaces (each ideograph becomes its own word).
func segmentWords(text string) []string {
	var words []string
	state := -1
	rest := text
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		if strings.TrimSpace(word) == "" {
			continue
		}
		words = append(words, word)
	}
	return words
}

func segmentGraphemes(text string) []string {
	parts := make([]string, 0, uniseg.GraphemeClusterCount(text))
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		parts = append(parts, gr.Str())
	}
	return parts
}

// segmentChunks groups 1-3 consecutive graphemes per fragment.
func segmentChunks(text string, rng *rand.Rand) []string {
	graphemes := segmentGraphemes(text)
	var chunks []string
	for i := 0; i < len(graphemes); {
		n := min(rng.IntN(3)+1, len(graphemes)-i)
		chunks = append(chunks, strings.Join(graphemes[i:i+n], ""))
		i += n
	}
	return chunks
}
