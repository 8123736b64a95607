// Package emotions defines the closed set of facial-expression labels and the
// advice book that maps each label to human-readable text.
//
// The label order is significant: it is the order of the classifier's output
// vector, and ties in the output are broken in favour of the earlier label.
package emotions

import "strings"

// Label is one of the seven emotion categories.
type Label string

// The seven categories, in classifier output order.
const (
	Angry    Label = "Angry"
	Disgust  Label = "Disgust"
	Fear     Label = "Fear"
	Happy    Label = "Happy"
	Neutral  Label = "Neutral"
	Sad      Label = "Sad"
	Surprise Label = "Surprise"
)

// Labels is the fixed, ordered label set.
var Labels = [...]Label{Angry, Disgust, Fear, Happy, Neutral, Sad, Surprise}

// Count is the number of labels.
const Count = len(Labels)

// String returns the label name.
func (l Label) String() string {
	return string(l)
}

// Valid reports whether l is one of the seven labels.
func (l Label) Valid() bool {
	return l.Index() >= 0
}

// Index returns the position of l in Labels, or -1.
func (l Label) Index() int {
	for i, known := range Labels {
		if known == l {
			return i
		}
	}
	return -1
}

// Parse matches a label name case-insensitively.
func Parse(s string) (Label, bool) {
	s = strings.TrimSpace(s)
	for _, l := range Labels {
		if strings.EqualFold(string(l), s) {
			return l, true
		}
	}
	return "", false
}

// At returns the label at index i of the classifier output.
func At(i int) (Label, bool) {
	if i < 0 || i >= Count {
		return "", false
	}
	return Labels[i], true
}

// Names returns the label names in order.
func Names() []string {
	names := make([]string, Count)
	for i, l := range Labels {
		names[i] = string(l)
	}
	return names
}
