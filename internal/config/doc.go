// Package config loads and validates training configuration documents.
//
// A document declares everything a GAPNet training run needs: dataset
// location and reader, optimizer hyperparameters, model hyperparameters,
// the core training block, and optionally an LR schedule, gradient
// clipping, and a snapshot/deep ensemble scheme.
//
// # Loading
//
// Load reads a single file (JSON natively, TOML by extension), parses it,
// validates every invariant, and normalizes all path fields to absolute
// form. Loading is all-or-nothing: a malformed file yields a
// *errors.ParseError, a schema violation yields a *errors.ValidationError,
// and in both cases no document is returned.
//
//	doc, err := config.Load("run.json")
//	if err != nil {
//	    // errors.IsParseError / errors.IsValidationError classify it
//	}
//
// # Reference Strings
//
// The model, optimizer, dataset.reader, and dataset.transforms fields hold
// reference strings: opaque identifiers naming framework-provided classes.
// They are checked against the registry at load time and returned verbatim;
// resolving them to behavior is the framework's job, not this package's.
//
// # Immutability
//
// A loaded Document is never mutated. It may be shared across goroutines
// without locking.
//
// # Unknown Keys
//
// Unknown top-level keys are tolerated and ignored so that documents
// written for newer framework versions still load.
package config
