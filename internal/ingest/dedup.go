package ingest

// Deduper decides admission for alert candidates by link URL. It is pure
// bookkeeping: seeded with the links already stored, it also records every
// admitted link so duplicates across sources within one run are caught.
type Deduper struct {
	seen map[string]struct{}
}

func NewDeduper(existing map[string]struct{}) *Deduper {
	seen := make(map[string]struct{}, len(existing))
	for link := range existing {
		seen[link] = struct{}{}
	}
	return &Deduper{seen: seen}
}

// Admit reports whether a candidate with this link should be inserted.
// Empty links and already-seen links are rejected. An admitted link is
// recorded immediately.
func (d *Deduper) Admit(link string) bool {
	if link == "" {
		return false
	}
	if _, dup := d.seen[link]; dup {
		return false
	}
	d.seen[link] = struct{}{}
	return true
}
