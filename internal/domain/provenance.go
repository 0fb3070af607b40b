package domain

import "strings"

// Provenance token prefixes and delimiter. The encoding packs a candidate's
// source and image URL into the free-text notes column so they survive
// storage schemas that lack dedicated columns. Renderers split on the
// delimiter and match the fixed prefixes to recover the URLs.
//
// Changing either prefix or the delimiter breaks already-stored notes, so
// any migration to dedicated columns must go through this encode/decode pair.
const (
	provenanceSourcePrefix = "GYG_URL:"
	provenanceImagePrefix  = "GYG_IMG:"
	provenanceDelimiter    = "|"
)

// EncodeProvenance packs a source URL and an image URL into a notes value.
// Empty inputs produce no token; two empty inputs produce an empty string.
func EncodeProvenance(sourceURL, imageURL string) string {
	var tokens []string
	if sourceURL != "" {
		tokens = append(tokens, provenanceSourcePrefix+sourceURL)
	}
	if imageURL != "" {
		tokens = append(tokens, provenanceImagePrefix+imageURL)
	}
	return strings.Join(tokens, provenanceDelimiter)
}

// DecodeProvenance recovers the source and image URL from an encoded notes
// value. Tokens that match neither prefix are ignored, so notes that carry
// free text alongside provenance tokens still decode.
func DecodeProvenance(notes string) (sourceURL, imageURL string) {
	for _, token := range strings.Split(notes, provenanceDelimiter) {
		token = strings.TrimSpace(token)
		switch {
		case strings.HasPrefix(token, provenanceSourcePrefix):
			sourceURL = strings.TrimPrefix(token, provenanceSourcePrefix)
		case strings.HasPrefix(token, provenanceImagePrefix):
			imageURL = strings.TrimPrefix(token, provenanceImagePrefix)
		}
	}
	return sourceURL, imageURL
}
