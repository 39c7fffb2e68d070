// Package services implements the driving port interfaces.
// Services contain the core logic of archivo and orchestrate calls to
// driven ports: the collector, the document store, the config store, and
// the change watcher.
//
// Services never import adapters; all I/O goes through ports.
package services
