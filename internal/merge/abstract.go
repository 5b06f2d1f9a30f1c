// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import "strings"

// ReconstructAbstract rebuilds a plain-text abstract from the inverted-index
// form used by OpenAlex, where each token maps to the ordered positions it
// occupies. The output holds max(position)+1 slots before trimming; slots no
// token claims stay empty. When two tokens claim the same position the last
// writer in iteration order wins; the source format guarantees injectivity
// so this is not expected in practice.
func ReconstructAbstract(idx map[string][]int) string {
	maxPos := -1
	for _, positions := range idx {
		for _, p := range positions {
			if p > maxPos {
				maxPos = p
			}
		}
	}
	if maxPos < 0 {
		return ""
	}

	tokens := make([]string, maxPos+1)
	for word, positions := range idx {
		for _, p := range positions {
			if p >= 0 {
				tokens[p] = word
			}
		}
	}
	return strings.TrimSpace(strings.Join(tokens, " "))
}

// ReconstructAbstractJSON accepts the raw decoded JSON value of an
// abstract_inverted_index field. Anything that is not a mapping of token to
// position list degrades to the empty string, never an error.
func ReconstructAbstractJSON(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}

	idx := make(map[string][]int, len(m))
	for word, raw := range m {
		positions, ok := raw.([]any)
		if !ok {
			continue
		}
		for _, p := range positions {
			if f, ok := p.(float64); ok {
				idx[word] = append(idx[word], int(f))
			}
		}
	}
	return ReconstructAbstract(idx)
}
