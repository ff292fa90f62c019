// Package testutil provides test fixtures and utilities.
//
// This package contains embedded configuration fixtures and helper
// functions for unit tests across the repository.
//
// # Fixtures
//
// Config documents are embedded using go:embed:
//
//	fixtures/snapshot_ensemble.json   // valid, epochs=120, 6x20 snapshot ensemble
//	fixtures/snapshot_ensemble.toml   // TOML rendition of the same run
//	fixtures/plain.json               // valid, no ensemble, step LR schedule
//	fixtures/missing_epochs.json      // invalid: training.epochs absent
//	fixtures/bogus_split.json         // invalid: dataset_to_eval not a split
//	fixtures/malformed.json           // not well-formed JSON
//
// # Usage in Tests
//
// WriteFixture materializes a fixture into a temp directory so that
// config.Load sees a real file path:
//
//	path := testutil.WriteFixture(t, testutil.SnapshotEnsembleJSON)
//	doc, err := config.Load(path)
package testutil
