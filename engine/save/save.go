// Package save encodes run snapshots into compact resume codes: JSON,
// gzipped, base64url. Codes are plain state transport, not a secrecy
// mechanism.
package save

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hollis/corridors/types"
)

// codePrefix versions the format so older builds fail loudly instead of
// misdecoding.
const codePrefix = "corr1."

// Encode serializes a snapshot into a resume code. Interface-typed
// screen state travels in tagged envelopes so an in-progress node
// resumes exactly where it was left.
func Encode(s *types.RunState) (string, error) {
	if s == nil {
		return "", fmt.Errorf("save: nil state")
	}
	raw, err := json.Marshal(wrap(s))
	if err != nil {
		return "", fmt.Errorf("save: marshal: %w", err)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return "", fmt.Errorf("save: compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("save: compress: %w", err)
	}

	return codePrefix + base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode parses a resume code back into a snapshot. Collections that
// serialize as null are repaired to empty so the reducer never sees a
// nil map.
func Decode(code string) (*types.RunState, error) {
	code = strings.TrimSpace(code)
	if !strings.HasPrefix(code, codePrefix) {
		return nil, fmt.Errorf("save: unrecognized code format")
	}
	packed, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(code, codePrefix))
	if err != nil {
		return nil, fmt.Errorf("save: decode: %w", err)
	}

	zr, err := gzip.NewReader(bytes.NewReader(packed))
	if err != nil {
		return nil, fmt.Errorf("save: decompress: %w", err)
	}
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("save: decompress: %w", err)
	}
	if err := zr.Close(); err != nil {
		return nil, fmt.Errorf("save: decompress: %w", err)
	}

	w := savedState{RunState: &types.RunState{}}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("save: unmarshal: %w", err)
	}
	s := w.RunState
	if s.Map == nil || s.Map.Nodes == nil {
		return nil, fmt.Errorf("save: code has no map")
	}
	w.unwrap()
	repair(s)
	return s, nil
}

func repair(s *types.RunState) {
	if s.LockedNodeIDs == nil {
		s.LockedNodeIDs = map[string]bool{}
	}
	if s.AppliedSupplyIDs == nil {
		s.AppliedSupplyIDs = map[string]bool{}
	}
	if s.UsedEncounterIDs == nil {
		s.UsedEncounterIDs = map[string]bool{}
	}
	if s.HallwayPlays == nil {
		s.HallwayPlays = map[string]int{}
	}
	if s.NodeScreenCache == nil {
		s.NodeScreenCache = map[string]types.NodeScreen{}
	}
	if s.Deck == nil {
		s.Deck = []string{}
	}
	if s.Consumables == nil {
		s.Consumables = []string{}
	}
	if s.SupplyIDs == nil {
		s.SupplyIDs = []string{}
	}
	if s.WrongAnswers == nil {
		s.WrongAnswers = []types.WrongAnswer{}
	}
}
