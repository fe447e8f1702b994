package track

// VoteLedger counts class-label observations for a single track. It also
// keeps the order in which labels were first seen: map iteration order is
// not stable, so the leading label is resolved over the first-seen order to
// make tie-breaking deterministic.
type VoteLedger struct {
	counts map[string]uint64
	order  []string
}

func NewVoteLedger() *VoteLedger {
	return &VoteLedger{counts: make(map[string]uint64)}
}

// Add records one vote for the given label.
func (ledger *VoteLedger) Add(label string) {
	if _, ok := ledger.counts[label]; !ok {
		ledger.order = append(ledger.order, label)
	}
	ledger.counts[label]++
}

// Count returns the number of votes for the given label.
func (ledger *VoteLedger) Count(label string) uint64 {
	return ledger.counts[label]
}

// Total returns the sum of all votes.
func (ledger *VoteLedger) Total() uint64 {
	var total uint64
	for _, count := range ledger.counts {
		total += count
	}
	return total
}

// Len returns the number of distinct labels seen.
func (ledger *VoteLedger) Len() int {
	return len(ledger.order)
}

// Labels returns the distinct labels in first-seen order.
func (ledger *VoteLedger) Labels() []string {
	return append([]string(nil), ledger.order...)
}

// Leader returns the label with the most votes. On a tie the label that was
// seen first wins. An empty ledger yields an empty string.
func (ledger *VoteLedger) Leader() string {
	leader := ""
	var best uint64
	for _, label := range ledger.order {
		if count := ledger.counts[label]; count > best {
			best = count
			leader = label
		}
	}
	return leader
}
