// Package hcl provides the HCL implementation of the config.Loader
// interface. It reads element type catalogs, pipeline documents and edit
// scripts, and translates them into the format-agnostic catalog, model and
// editor types.
package hcl
