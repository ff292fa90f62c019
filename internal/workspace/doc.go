// Package workspace manages the on-disk layout of training runs.
//
// A workspace root contains a runs/ directory with one subdirectory per
// run. Each run holds its metadata (run.json), a frozen copy of the
// configuration it was created from, and checkpoints/, results/ and
// statistics/ directories the trainer writes into. Run names are
// validated and joined with securejoin so a hostile name cannot escape
// the workspace.
package workspace
