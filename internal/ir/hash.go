package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
)

// Domain prefixes for content-addressed identity.
const (
	DomainSpec     = "bracket/spec/v1"
	DomainResult   = "bracket/result/v1"
	DomainSnapshot = "bracket/snapshot/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SpecHash identifies a bracket by its name, entrants and seed. Two sessions
// with the same hash build identical trees and draw identical scores.
func SpecHash(name string, entrants []string, seed uint64) (string, error) {
	canonical, err := MarshalCanonical(map[string]any{
		"name":     name,
		"entrants": entrants,
		"seed":     strconv.FormatUint(seed, 10),
	})
	if err != nil {
		return "", fmt.Errorf("SpecHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainSpec, canonical), nil
}

// ResultID computes the content-addressed id of a result record. It covers
// the request, not the outcome, so a replay of the same request maps to the
// same id.
func ResultID(sessionID string, seq int64, matchID int, requested string) (string, error) {
	canonical, err := MarshalCanonical(map[string]any{
		"session_id": sessionID,
		"seq":        seq,
		"match_id":   matchID,
		"requested":  requested,
	})
	if err != nil {
		return "", fmt.Errorf("ResultID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainResult, canonical), nil
}

// SnapshotHash hashes a bracket listing. Equal hashes mean equal sides and
// winners for every match.
func SnapshotHash(rows []MatchRow) (string, error) {
	canonical, err := MarshalCanonical(MatchRowsCanonical(rows))
	if err != nil {
		return "", fmt.Errorf("SnapshotHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainSnapshot, canonical), nil
}

// MustResultID is like ResultID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustResultID(sessionID string, seq int64, matchID int, requested string) string {
	id, err := ResultID(sessionID, seq, matchID, requested)
	if err != nil {
		panic(err)
	}
	return id
}
