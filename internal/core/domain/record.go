package domain

// DocumentRecord is one indexed document with its inferred location.
// FullPath uniquely identifies a record; indexing the same path twice
// overwrites rather than duplicates it.
type DocumentRecord struct {
	// DocumentName is the file's base name, extension included.
	DocumentName string `json:"document_name"`

	// SiteName is the building or location label, or a sentinel.
	SiteName string `json:"site_name"`

	// RegionName is the region or municipality label, or a sentinel.
	RegionName string `json:"region_name"`

	// FullPath is the absolute filesystem path.
	FullPath string `json:"full_path"`
}

// ResultSet is an ordered sequence of records produced by a search.
// Callers may re-order it without contacting the store.
type ResultSet []DocumentRecord

// Paths returns the full paths of the records in order.
func (rs ResultSet) Paths() []string {
	paths := make([]string, len(rs))
	for i := range rs {
		paths[i] = rs[i].FullPath
	}
	return paths
}

// Clone returns a copy of the result set that shares no backing array.
func (rs ResultSet) Clone() ResultSet {
	if rs == nil {
		return nil
	}
	out := make(ResultSet, len(rs))
	copy(out, rs)
	return out
}
