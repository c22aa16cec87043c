package store

import (
	"encoding/json"
	"fmt"
)

// marshalEntrants converts the entrant list to JSON TEXT.
//
// Identifiers are stored byte for byte. Canonical JSON would NFC-normalize
// them, and results are matched against entrants by exact equality.
func marshalEntrants(entrants []string) (string, error) {
	if entrants == nil {
		entrants = []string{}
	}
	data, err := json.Marshal(entrants)
	if err != nil {
		return "", fmt.Errorf("marshal entrants: %w", err)
	}
	return string(data), nil
}

func unmarshalEntrants(data string) ([]string, error) {
	var entrants []string
	if err := json.Unmarshal([]byte(data), &entrants); err != nil {
		return nil, fmt.Errorf("unmarshal entrants: %w", err)
	}
	if entrants == nil {
		entrants = []string{}
	}
	return entrants, nil
}

// SQLite integers are signed; seeds keep their bit pattern across the cast.
func seedToDB(seed uint64) int64 {
	return int64(seed)
}

func seedFromDB(v int64) uint64 {
	return uint64(v)
}

func boolToDB(b bool) int {
	if b {
		return 1
	}
	return 0
}
