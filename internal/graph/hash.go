package graph

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"

	"golang.org/x/text/unicode/norm"
)

// Domain prefix for content-addressed graph identity.
// Version suffix enables future encoding migration.
const domainGraph = "tapec/graph/v1"

// Hash computes a content-addressed identity for a graph.
//
// Two graphs that record the same function the same way hash identically;
// any change to the node space, operator stream or function contract
// changes the hash. The hash is used as the artifact cache key and the
// compile-provenance record key. It is an identity computation, not an
// exchange format: nothing reads the encoding back.
//
// Strings are NFC normalized before hashing so that equal names with
// different Unicode compositions produce the same identity. Constants are
// hashed as IEEE-754 bit patterns, so -0.0 and 0.0 are distinct.
func Hash(g *Graph) string {
	h := sha256.New()
	h.Write([]byte(domainGraph))
	h.Write([]byte{0x00}) // domain/data boundary separator

	var buf [8]byte
	writeInt := func(v int) {
		binary.BigEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	writeString := func(s string) {
		s = norm.NFC.String(s)
		writeInt(len(s))
		h.Write([]byte(s))
	}

	writeString(g.FunctionName)
	writeInt(g.NDynamic)
	writeInt(g.NVariable)

	writeInt(len(g.Constants))
	for _, c := range g.Constants {
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(c))
		h.Write(buf[:])
	}

	writeInt(len(g.Operators))
	for _, op := range g.Operators {
		writeInt(int(op.Kind))
		writeInt(op.NResult)
		writeInt(len(op.Args))
		for _, a := range op.Args {
			writeInt(int(a))
		}
		writeInt(len(op.Strings))
		for _, s := range op.Strings {
			writeString(s)
		}
	}

	writeInt(len(g.Dependents))
	for _, d := range g.Dependents {
		writeInt(int(d))
	}

	for _, names := range [][]string{g.DiscreteNames, g.AtomicNames, g.PrintTexts} {
		writeInt(len(names))
		for _, s := range names {
			writeString(s)
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}
