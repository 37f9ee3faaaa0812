package store

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Statuses of a compile attempt.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Record is one compile attempt in the provenance log.
type Record struct {
	// ID is the content-addressed record identity.
	ID string

	// FunctionName is the graph's function contract name. May be empty
	// when the attempt was rejected for an empty name.
	FunctionName string

	// GraphHash is the canonical hash of the input graph.
	GraphHash string

	// Status is StatusOK or StatusError.
	Status string

	// Diagnostic is the compiler's diagnostic string; empty for StatusOK.
	Diagnostic string

	// Seq is the monotone append sequence, assigned by the store.
	Seq int64

	// CreatedAt is the insertion timestamp, assigned by the store.
	CreatedAt string
}

// Domain prefix for content-addressed record identity.
const domainRecord = "tapec/compile/v1"

// recordID computes the content-addressed ID of a record from its
// logical fields. The ID is stable for a given (graph, outcome, seq),
// so replaying the same log reproduces the same identities.
func recordID(functionName, graphHash, status, diagnostic string, seq int64) string {
	h := sha256.New()
	h.Write([]byte(domainRecord))
	h.Write([]byte{0x00}) // domain/data boundary separator

	var buf [8]byte
	writeString := func(s string) {
		binary.BigEndian.PutUint64(buf[:], uint64(len(s)))
		h.Write(buf[:])
		h.Write([]byte(s))
	}
	writeString(functionName)
	writeString(graphHash)
	writeString(status)
	writeString(diagnostic)
	binary.BigEndian.PutUint64(buf[:], uint64(seq))
	h.Write(buf[:])

	return hex.EncodeToString(h.Sum(nil))
}
