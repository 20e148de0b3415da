package domain

// DurationLedger maps a note path to the total tracked milliseconds
// accumulated across all of its stopped sessions. Totals are exact sums
// of stop-time measurements; any rounding happens at display time only.
type DurationLedger map[string]int64

// Add credits ms to note. Negative amounts are ignored so a backwards
// clock can never shrink a total.
func (l DurationLedger) Add(note string, ms int64) {
	if ms < 0 {
		return
	}
	l[note] += ms
}

// Total returns the accumulated milliseconds for note, zero when the
// note was never tracked.
func (l DurationLedger) Total(note string) int64 {
	return l[note]
}

// Clone returns an independent copy of the ledger.
func (l DurationLedger) Clone() DurationLedger {
	out := make(DurationLedger, len(l))
	for note, ms := range l {
		out[note] = ms
	}
	return out
}
