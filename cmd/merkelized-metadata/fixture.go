package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bkchr/merkelized-metadata/metadata"
	"github.com/bkchr/merkelized-metadata/registry"
)

// fixture is the on-disk JSON shape this command reads: a registry plus the
// chain info to fold into its digest, and optionally the wire bytes of one
// extrinsic to build a proof for.
type fixture struct {
	Registry            registry.Registry  `json:"registry"`
	ChainInfo           metadata.ChainInfo `json:"chainInfo"`
	ExtrinsicHex        string             `json:"extrinsicHex"`
	AdditionalSignedHex string             `json:"additionalSignedHex"`
}

// loadFixture reads and decodes a fixture file from path.
func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var f fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &f, nil
}

// extrinsicBytes decodes the fixture's hex-encoded extrinsic and optional
// additional-signed payload. Either string may be empty.
func (f *fixture) extrinsicBytes() (extrinsic, additionalSigned []byte, err error) {
	if f.ExtrinsicHex != "" {
		extrinsic, err = hex.DecodeString(f.ExtrinsicHex)
		if err != nil {
			return nil, nil, fmt.Errorf("decode extrinsicHex: %w", err)
		}
	}
	if f.AdditionalSignedHex != "" {
		additionalSigned, err = hex.DecodeString(f.AdditionalSignedHex)
		if err != nil {
			return nil, nil, fmt.Errorf("decode additionalSignedHex: %w", err)
		}
	}
	return extrinsic, additionalSigned, nil
}
