// Command merkelized-metadata is a small CLI around the metadata package:
// given a JSON registry fixture it prints the metadata digest, and
// optionally the Merkle proof for one extrinsic the fixture carries.
//
// Usage:
//
//	merkelized-metadata -fixture path/to/fixture.json [-proof]
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/bkchr/merkelized-metadata/log"
	"github.com/bkchr/merkelized-metadata/metadata"
)

var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

var cliLog = log.Default().Module("cmd")

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the actual entry point, returning an exit code so it can be
// exercised from tests without calling os.Exit.
func run(args []string) int {
	cfg, exit, code := parseFlags(args)
	if exit {
		if cfg.Version {
			fmt.Printf("merkelized-metadata %s (%s)\n", version, commit)
		}
		return code
	}

	f, err := loadFixture(cfg.FixturePath)
	if err != nil {
		cliLog.Error("load fixture", "error", err)
		return 1
	}

	digest, err := metadata.GenerateMetadataDigest(&f.Registry, f.ChainInfo)
	if err != nil {
		cliLog.Error("generate digest", "error", err)
		return 1
	}
	fmt.Printf("digest: 0x%s\n", hex.EncodeToString(digest[:]))

	if !cfg.PrintProof {
		return 0
	}

	extrinsic, additionalSigned, err := f.extrinsicBytes()
	if err != nil {
		cliLog.Error("decode extrinsic hex", "error", err)
		return 1
	}
	if len(extrinsic) == 0 {
		cliLog.Error("-proof requested but fixture has no extrinsicHex")
		return 1
	}

	proof, err := metadata.GenerateProofForExtrinsic(&f.Registry, extrinsic, additionalSigned)
	if err != nil {
		cliLog.Error("generate proof", "error", err)
		return 1
	}
	fmt.Printf("proof: %d leaves disclosed, %d siblings, leaf count %d\n",
		len(proof.Leaves), len(proof.Siblings), proof.LeafCount)

	return 0
}
