package rgverify

import (
	"encoding/json"
	"os"
)

// Manifest lists a batch of program files to verify in one run, a
// SPEC_FULL.md feature beyond spec.md's single-program scope. No
// third-party JSON or config-file library is grounded anywhere in the
// retrieval pack's own non-test code, so this is plain
// encoding/json — see DESIGN.md.
type Manifest struct {
	MaxRounds int             `json:"maxRounds,omitempty"`
	Strict    bool            `json:"strict,omitempty"`
	Programs  []ManifestEntry `json:"programs"`
}

type ManifestEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// ManifestReport is the batch result: one EntryResult per manifest
// entry, in manifest order, even when an entry fails to parse.
type ManifestReport struct {
	Entries []EntryResult `json:"entries"`
}

type EntryResult struct {
	Name               string   `json:"name"`
	Path               string   `json:"path"`
	Error              string   `json:"error,omitempty"`
	Verified           bool     `json:"verified"`
	Rounds             int      `json:"rounds,omitempty"`
	PostconditionHolds bool     `json:"postconditionHolds,omitempty"`
	FailedAssertions   []string `json:"failedAssertions,omitempty"`
}

// LoadManifest reads and decodes a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// RunManifest verifies every program the manifest names and returns a
// single combined report. A per-entry Input/Oracle error is recorded
// on that entry rather than aborting the whole batch.
func RunManifest(m *Manifest) *ManifestReport {
	cfg := NewEngineConfig()
	if m.MaxRounds > 0 {
		cfg.MaxRounds = m.MaxRounds
	}
	cfg.Strict = m.Strict

	report := &ManifestReport{Entries: make([]EntryResult, 0, len(m.Programs))}
	for _, entry := range m.Programs {
		report.Entries = append(report.Entries, runManifestEntry(entry, cfg))
	}
	return report
}

func runManifestEntry(entry ManifestEntry, cfg *EngineConfig) EntryResult {
	out := EntryResult{Name: entry.Name, Path: entry.Path}

	src, err := os.ReadFile(entry.Path)
	if err != nil {
		out.Error = err.Error()
		return out
	}

	res, _, err := VerifySource(src, cfg)
	if err != nil {
		out.Error = err.Error()
		return out
	}

	out.Verified = res.Verified
	out.Rounds = res.Rounds
	out.PostconditionHolds = res.PostconditionHolds
	for _, a := range res.FailedAssertions {
		out.FailedAssertions = append(out.FailedAssertions, a.Pretty())
	}
	return out
}
