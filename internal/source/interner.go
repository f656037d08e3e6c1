package source

// StringID is an interned string handle.
type StringID uint32

// NoStringID marks the absence of a string.
const NoStringID StringID = 0

// IsValid reports whether the ID refers to an interned string.
func (id StringID) IsValid() bool { return id != NoStringID }

// Interner deduplicates strings behind compact IDs.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""}, // NoStringID -> ""
		index: map[string]StringID{"": 0},
	}
}

// Intern returns the ID for s, allocating one if needed.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.index[s]; ok {
		return id
	}
	// own copy, detached from the caller's buffer
	cpy := string([]byte(s))
	id := StringID(len(in.byID))
	in.byID = append(in.byID, cpy)
	in.index[cpy] = id
	return id
}

// Lookup returns the string for the ID.
func (in *Interner) Lookup(id StringID) (string, bool) {
	if int(id) >= len(in.byID) {
		return "", false
	}
	return in.byID[id], true
}

// MustLookup returns the string for the ID, "" for an unknown one.
func (in *Interner) MustLookup(id StringID) string {
	s, _ := in.Lookup(id)
	return s
}

// Len returns the number of interned strings, NoStringID included.
func (in *Interner) Len() int {
	return len(in.byID)
}
