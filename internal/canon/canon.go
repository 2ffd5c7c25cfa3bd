// Package canon computes the structural signature of an assertion chain.
// The signature is the reporter's deduplication key: it is order-sensitive
// over the chain's label and steps, so identical chains collide and chains
// differing only in label do not.
package canon

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"golang.org/x/text/unicode/norm"

	"github.com/verityhq/verity/assert"
)

// DomainChain is the domain prefix for chain signatures. The version suffix
// enables future algorithm migration.
const DomainChain = "verity/chain/v1"

// Signature returns the hex-encoded signature of a chain snapshot.
// Message text is deliberately not part of the key; two chains with the same
// structure but different rendered output still collide.
func Signature(s assert.Snapshot) string {
	return hashWithDomain(DomainChain, marshalSnapshot(s))
}

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents domain/data
// boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// marshalSnapshot serializes the snapshot deterministically. The structure is
// fixed, so writing fields in a fixed order gives canonical output without a
// generic key-sorting pass.
func marshalSnapshot(s assert.Snapshot) []byte {
	var b bytes.Buffer

	b.WriteString(`{"label":`)
	writeCanonicalString(&b, s.Label)
	b.WriteString(`,"steps":[`)
	for i, step := range s.Steps {
		if i > 0 {
			b.WriteByte(',')
		}
		writeStep(&b, step)
	}
	b.WriteString("]}")

	return b.Bytes()
}

func writeStep(b *bytes.Buffer, step assert.Step) {
	b.WriteString(`{"verb":`)
	writeCanonicalString(b, step.Sentence.Verb)
	b.WriteString(`,"object":`)
	writeCanonicalString(b, step.Sentence.Object)
	b.WriteString(`,"qualifiers":[`)
	for i, q := range step.Sentence.Qualifiers {
		if i > 0 {
			b.WriteByte(',')
		}
		writeCanonicalString(b, q)
	}
	b.WriteString(`],"negated":`)
	writeBool(b, step.Sentence.Negated)
	b.WriteString(`,"passed":`)
	writeBool(b, step.Passed)
	b.WriteString(`,"op":`)
	writeCanonicalString(b, step.Op.String())
	b.WriteByte('}')
}

func writeBool(b *bytes.Buffer, v bool) {
	if v {
		b.WriteString("true")
	} else {
		b.WriteString("false")
	}
}

// writeCanonicalString writes a JSON string with NFC normalization and
// without HTML escaping, so visually identical sentences produce identical
// signatures regardless of the Unicode composition the matcher happened to
// build them with.
func writeCanonicalString(b *bytes.Buffer, s string) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		// Strings never fail to encode; keep the signature total anyway.
		b.WriteString(`""`)
		return
	}

	out := buf.Bytes()
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
	}
	b.Write(out)
}
