// Package app contains the core application logic. It loads the element
// catalog and pipeline documents, opens an editing session on one pipeline,
// applies an optional edit script and renders the result, decoupled from
// any specific entrypoint like a CLI.
package app
