package engine

// vesselPackaged is the fast path: a packaging form logged from the vessel's own
// daily entries means the tank has been emptied.
func (f fields) vesselPackaged(c Classified) bool {
	for _, ev := range c.Fermentation {
		if f.isPackaging(ev.Record) {
			return true
		}
	}
	return false
}

// batchPackaged scans every row of the batch, whichever vessel it was logged against.
func (f fields) batchPackaged(batch []dated) bool {
	for _, d := range batch {
		if f.isPackaging(d.rec) {
			return true
		}
	}
	return false
}
