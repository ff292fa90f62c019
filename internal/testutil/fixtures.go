package testutil

import (
	"embed"
	"os"
	"path/filepath"
	"testing"
)

//go:embed fixtures/*.json fixtures/*.toml
var fixturesFS embed.FS

// Fixture names accepted by LoadFixture and WriteFixture.
const (
	SnapshotEnsembleJSON = "snapshot_ensemble.json"
	SnapshotEnsembleTOML = "snapshot_ensemble.toml"
	PlainJSON            = "plain.json"
	MissingEpochsJSON    = "missing_epochs.json"
	BogusSplitJSON       = "bogus_split.json"
	MalformedJSON        = "malformed.json"
)

// LoadFixture loads an embedded fixture by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// MustLoadFixture loads an embedded fixture or fails the test.
func MustLoadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := LoadFixture(name)
	if err != nil {
		t.Fatalf("load fixture %s: %v", name, err)
	}
	return data
}

// WriteFixture writes a fixture into a fresh temp directory and returns the
// file path, keeping the fixture's extension so loaders can dispatch on it.
func WriteFixture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, MustLoadFixture(t, name), 0644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}
