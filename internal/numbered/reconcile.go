package numbered

import (
	"regexp"
	"strconv"
	"strings"
)

// lineRe matches one reply line of the form "<ordinal>. <translation>".
var lineRe = regexp.MustCompile(`^(\d+)\.\s*(.+)$`)

// Reconciliation is the outcome of mapping a reply back onto the flattened
// batch.
type Reconciliation struct {
	// Texts has exactly one entry per original position.
	Texts []string
	// Translated marks the positions that received a translation from the
	// reply. Non-blank positions that are false hold their original text.
	Translated []bool
}

// FallbackCount returns how many non-blank positions reverted to the
// original text.
func (r Reconciliation) FallbackCount(originals []string) int {
	n := 0
	for i, ok := range r.Translated {
		if !ok && i < len(originals) && !IsBlank(originals[i]) {
			n++
		}
	}
	return n
}

// Reconcile maps the numbered reply onto originals.
//
// Each matched ordinal indexes valid (the list the request was built from).
// Its translation goes to the first original position holding the same text
// that is still unfilled, so identical sources receive translations in reply
// order. Lines that do not match, ordinals outside 1..len(valid) and ordinals
// whose source has no unfilled position left are dropped. Afterwards every
// unfilled non-blank position falls back to its original text; blank
// positions are always "".
func Reconcile(response string, originals, valid []string) Reconciliation {
	rec := Reconciliation{
		Texts:      make([]string, len(originals)),
		Translated: make([]bool, len(originals)),
	}

	for _, line := range strings.Split(strings.TrimSpace(response), "\n") {
		ordinal, translated, ok := parseLine(line)
		if !ok || ordinal < 1 || ordinal > len(valid) {
			continue
		}
		source := valid[ordinal-1]
		for i, original := range originals {
			if original == source && !rec.Translated[i] {
				rec.Texts[i] = translated
				rec.Translated[i] = true
				break
			}
		}
	}

	for i, original := range originals {
		if rec.Translated[i] {
			continue
		}
		if IsBlank(original) {
			rec.Texts[i] = ""
			continue
		}
		rec.Texts[i] = original
	}

	return rec
}

func parseLine(line string) (int, string, bool) {
	m := lineRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return 0, "", false
	}
	ordinal, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}
	return ordinal, strings.TrimSpace(m[2]), true
}
