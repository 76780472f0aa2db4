// Package config defines the format-agnostic model of loaded configuration
// (an element type catalog and a set of pipeline documents) and the Loader
// interface that format-specific packages implement.
package config
