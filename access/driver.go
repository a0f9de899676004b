package access

import (
	"github.com/bkchr/merkelized-metadata/binary"
	"github.com/bkchr/merkelized-metadata/decode"
	"github.com/bkchr/merkelized-metadata/errkind"
	"github.com/bkchr/merkelized-metadata/log"
	"github.com/bkchr/merkelized-metadata/typeir"
)

// DecodeExtrinsicAndCollect decodes one extrinsic against schema and
// graph, then the signed extensions' contribution to the
// additional-signed payload, and returns everything the combined decode
// touched.
//
// The extrinsic body's own compact length prefix is read and discarded;
// it describes the encoded length for transport framing and plays no
// further role once the bytes are already isolated here.
func DecodeExtrinsicAndCollect(graph *typeir.Graph, schema *typeir.ExtrinsicSchema, extrinsicBytes, additionalSignedBytes []byte) (*Collector, error) {
	c := binary.NewCursor(extrinsicBytes)
	if _, err := c.ReadCompactUint64(); err != nil {
		return nil, errkind.WrapBinary(err)
	}

	versionByte, err := c.ReadByte()
	if err != nil {
		return nil, errkind.WrapBinary(err)
	}
	const signedBit = 0x80
	const supportedVersion = 4
	signed := versionByte&signedBit != 0
	version := versionByte &^ signedBit
	if version != supportedVersion {
		return nil, errkind.New(errkind.UnsupportedExtrinsicVersion, "extrinsic version is not 4")
	}

	collector := NewCollector()

	if signed {
		if err := decode.Decode(c, schema.Address, graph, collector); err != nil {
			return nil, err
		}
		if err := decode.Decode(c, schema.Signature, graph, collector); err != nil {
			return nil, err
		}
		for _, se := range schema.SignedExtensions {
			if err := decode.Decode(c, se.IncludedInExtrinsic, graph, collector); err != nil {
				return nil, annotateExtension(err, se.Identifier)
			}
		}
	}

	if err := decode.Decode(c, schema.Call, graph, collector); err != nil {
		return nil, err
	}

	// additional_signed is optional (spec §6.1, §4.6 step 5): only decode
	// it when the caller actually supplied a payload, not merely because
	// the schema happens to declare signed extensions.
	if additionalSignedBytes != nil {
		ac := binary.NewCursor(additionalSignedBytes)
		for _, se := range schema.SignedExtensions {
			if err := decode.Decode(ac, se.IncludedInSignedData, graph, collector); err != nil {
				return nil, annotateExtension(err, se.Identifier)
			}
		}
	}

	log.Default().Module("access").Debug("collected extrinsic access record",
		"signed", signed, "accessed_types", len(collector.Records()),
		"additional_signed_supplied", additionalSignedBytes != nil)

	return collector, nil
}

// annotateExtension tags err with the signed-extension identifier whose
// decode produced it, mirroring the original's "failed to decode extra
// (identifier)" diagnostics. Errors that aren't an *errkind.Error (none
// currently escape package decode unwrapped) pass through unchanged.
func annotateExtension(err error, identifier string) error {
	if e, ok := err.(*errkind.Error); ok {
		return e.WithExtension(identifier)
	}
	return err
}
