// Package file provides the file-based ConfigStore.
//
// Settings live in config.toml inside the archivo data directory
// (~/.archivo by default). Keys are addressed in dot notation
// ("index.root") and written back as TOML tables:
//
//	[index]
//	root = "/srv/archivo/pdf"
//	extensions = [".pdf"]
//	progress_every = 100
package file
