// Package empid derives sequential employee identifiers such as EMP1001,
// DOC1002, STF1003 from a fixed prefix and the last issued id.
package empid

import (
	"fmt"
	"strconv"
	"strings"
)

// SeqStart is the numeric part of the first id issued under any prefix
const SeqStart = 1001

// Prefixes per personnel type
const (
	PrefixEmployee = "EMP"
	PrefixDoctor   = "DOC"
	PrefixStaff    = "STF"
)

// Next returns the id following lastID under the given prefix.
// An empty lastID starts the sequence at SeqStart. A lastID whose suffix is
// not numeric is rejected instead of silently producing garbage.
func Next(prefix, lastID string) (string, error) {
	if lastID == "" {
		return fmt.Sprintf("%s%d", prefix, SeqStart), nil
	}

	if !strings.HasPrefix(lastID, prefix) {
		return "", fmt.Errorf("empid: id %q does not carry prefix %q", lastID, prefix)
	}

	seq, err := strconv.Atoi(strings.TrimPrefix(lastID, prefix))
	if err != nil {
		return "", fmt.Errorf("empid: id %q has non-numeric suffix", lastID)
	}

	return fmt.Sprintf("%s%d", prefix, seq+1), nil
}
