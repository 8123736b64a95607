package emotions

import "sort"

// DefaultAdvice is returned for labels with no configured text.
const DefaultAdvice = "No advice available for this emotion."

// AdviceBook maps labels to advice text. It is built once and never mutated,
// so it is safe for concurrent reads.
type AdviceBook struct {
	entries    map[Label]string
	keys       map[Label]string
	unknown    []string
	duplicates []string
}

// NewAdviceBook builds a book from raw key/text pairs. Keys are matched to
// labels case-insensitively; keys that name no label are kept aside and
// reported by Unknown.
//
// When several keys name the same label, the exact label name wins,
// otherwise the key that sorts first. The losers are reported by
// Duplicates.
func NewAdviceBook(raw map[string]string) *AdviceBook {
	b := &AdviceBook{
		entries: make(map[Label]string, Count),
		keys:    make(map[Label]string, Count),
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		text := raw[key]
		l, ok := Parse(key)
		if !ok {
			b.unknown = append(b.unknown, key)
			continue
		}
		if text == "" {
			continue
		}
		if prev, taken := b.keys[l]; taken {
			if key != string(l) {
				b.duplicates = append(b.duplicates, key)
				continue
			}
			b.duplicates = append(b.duplicates, prev)
		}
		b.entries[l] = text
		b.keys[l] = key
	}
	sort.Strings(b.duplicates)
	return b
}

// Duplicates returns keys that were ignored because another key already
// named the same label.
func (b *AdviceBook) Duplicates() []string {
	if b == nil {
		return nil
	}
	out := make([]string, len(b.duplicates))
	copy(out, b.duplicates)
	return out
}

// Lookup returns the advice for l, or DefaultAdvice.
func (b *AdviceBook) Lookup(l Label) string {
	if b == nil {
		return DefaultAdvice
	}
	if text, ok := b.entries[l]; ok {
		return text
	}
	return DefaultAdvice
}

// Has reports whether l has configured advice.
func (b *AdviceBook) Has(l Label) bool {
	if b == nil {
		return false
	}
	_, ok := b.entries[l]
	return ok
}

// Missing returns the labels without configured advice, in label order.
func (b *AdviceBook) Missing() []Label {
	var missing []Label
	for _, l := range Labels {
		if !b.Has(l) {
			missing = append(missing, l)
		}
	}
	return missing
}

// Unknown returns the keys that matched no label, sorted.
func (b *AdviceBook) Unknown() []string {
	if b == nil {
		return nil
	}
	out := make([]string, len(b.unknown))
	copy(out, b.unknown)
	return out
}

// Len returns the number of labels with configured advice.
func (b *AdviceBook) Len() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}
