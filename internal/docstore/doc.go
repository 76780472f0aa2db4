// Package docstore provides a thread-safe, in-memory store of pipeline
// documents. It is the lookup the config stack resolver fetches ancestors
// from and the place edited local layers are saved back to.
package docstore
