package domain

// Sentinel labels used when hierarchy inference cannot assign a value.
const (
	// UnknownLabel marks a region or site that could not be inferred.
	UnknownLabel = "Desconocido"

	// NoSiteLabel marks a document filed directly under a region folder.
	NoSiteLabel = "N/A"
)

// ClassificationKind distinguishes inferred labels from sentinel fallbacks.
type ClassificationKind int

const (
	// ClassificationInferred means region and site came from path components.
	ClassificationInferred ClassificationKind = iota

	// ClassificationFallback means at least one label is a sentinel or a
	// best-effort guess because the path could not be parsed.
	ClassificationFallback
)

// String returns the string representation.
func (k ClassificationKind) String() string {
	switch k {
	case ClassificationInferred:
		return "inferred"
	case ClassificationFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Classification is the result of mapping a directory to region and site.
type Classification struct {
	Kind   ClassificationKind
	Region string
	Site   string

	// Reason explains a fallback. Empty for inferred classifications.
	Reason string
}

// Inferred builds a classification whose labels came from the path.
func Inferred(region, site string) Classification {
	return Classification{Kind: ClassificationInferred, Region: region, Site: site}
}

// Fallback builds a classification that resolved to fallback labels.
func Fallback(region, site, reason string) Classification {
	return Classification{Kind: ClassificationFallback, Region: region, Site: site, Reason: reason}
}

// IsFallback reports whether the labels were not inferred from the path.
func (c Classification) IsFallback() bool {
	return c.Kind == ClassificationFallback
}

// Record attaches this classification to a document.
func (c Classification) Record(name, fullPath string) DocumentRecord {
	return DocumentRecord{
		DocumentName: name,
		SiteName:     c.Site,
		RegionName:   c.Region,
		FullPath:     fullPath,
	}
}
