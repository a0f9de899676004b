package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

const minimalFixture = `{
	"registry": {
		"Types": {
			"1": {"ID": 1, "TypeDef": {"Kind": 5, "Primitive": 3}}
		},
		"ExtrinsicMetadata": {
			"Version": 4,
			"AddressType": 1,
			"CallType": 1,
			"SignatureType": 1,
			"ExtraType": 1,
			"SignedExtensions": []
		}
	},
	"chainInfo": {
		"SpecVersion": 1,
		"SpecName": "test",
		"Base58Prefix": 0,
		"Decimals": 0,
		"TokenSymbol": "T"
	}
}`

func TestRunPrintsDigest(t *testing.T) {
	path := writeFixture(t, minimalFixture)
	code := run([]string{"-fixture", path})
	if code != 0 {
		t.Fatalf("run() code = %d, want 0", code)
	}
}

func TestRunMissingFixtureFlag(t *testing.T) {
	code := run(nil)
	if code == 0 {
		t.Fatal("run() code = 0, want non-zero when -fixture is missing")
	}
}

func TestRunVersionExitsZero(t *testing.T) {
	code := run([]string{"-version"})
	if code != 0 {
		t.Fatalf("run() code = %d, want 0", code)
	}
}

func TestLoadFixtureParsesRegistry(t *testing.T) {
	path := writeFixture(t, minimalFixture)
	f, err := loadFixture(path)
	if err != nil {
		t.Fatalf("loadFixture() error = %v", err)
	}
	if len(f.Registry.Types) != 1 {
		t.Fatalf("len(Types) = %d, want 1", len(f.Registry.Types))
	}
	var roundTrip fixture
	if err := json.Unmarshal([]byte(minimalFixture), &roundTrip); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
}
