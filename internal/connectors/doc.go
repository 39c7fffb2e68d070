// Package connectors provides the sources archivo reads documents from.
// The filesystem connector walks a local directory tree, infers each
// document's region and site from its folder path, and watches the tree
// for changes.
package connectors
