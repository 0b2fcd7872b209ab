// Package sequence generates the human-readable ticket numbers printed on
// stubs and shown on displays. Numbers follow the fixed external format
// <letter><3-digit zero-padded count>: A001…A999, then B001, and so on.
//
// The generator is a pure function over the previously issued number; it
// keeps no state of its own. Serializing calls (and persisting the result)
// is the queue engine's job.
package sequence

import (
	"fmt"
	"regexp"
	"strconv"
)

// First is the number issued when the queue is empty.
const First = "A001"

// numberRE matches the persisted ticket-number format. It is an external
// contract: numbers are displayed to customers and printed on stubs.
var numberRE = regexp.MustCompile(`^[A-Z][0-9]{3}$`)

// Valid reports whether s is a well-formed ticket number.
func Valid(s string) bool { return numberRE.MatchString(s) }

// Next returns the ticket number that follows last.
//
// An empty last yields First. A malformed last also yields First: a corrupt
// stored number must not block issuance, so the sequence restarts rather
// than failing (duplicate numbers are rejected by the store's unique index).
// When the numeric part reaches 999 the letter advances by one code point
// and the count resets to 001.
func Next(last string) string {
	if last == "" || !numberRE.MatchString(last) {
		return First
	}

	letter := last[0]
	n, err := strconv.Atoi(last[1:])
	if err != nil {
		// Unreachable given the regexp match, kept as a guard.
		return First
	}

	if n >= 999 {
		letter++
		n = 1
	} else {
		n++
	}
	return fmt.Sprintf("%c%03d", letter, n)
}
