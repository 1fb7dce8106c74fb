package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func runVersion(t *testing.T, short, asJSON bool) string {
	t.Helper()
	buildVersion, buildCommit, buildDate = "1.4.0", "abc123", "2026-01-02"
	versionShort, versionJSON = short, asJSON
	t.Cleanup(func() { versionShort, versionJSON = false, false })

	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	if err := versionCmd.RunE(versionCmd, nil); err != nil {
		t.Fatalf("version: %v", err)
	}
	return buf.String()
}

func TestVersionOutput(t *testing.T) {
	if got := runVersion(t, true, false); got != "1.4.0\n" {
		t.Errorf("--short = %q", got)
	}

	got := runVersion(t, false, false)
	if !strings.HasPrefix(got, "enyo 1.4.0 (commit abc123, built 2026-01-02, ") {
		t.Errorf("default output = %q", got)
	}

	var info buildInfo
	if err := json.Unmarshal([]byte(runVersion(t, false, true)), &info); err != nil {
		t.Fatalf("--json output is not JSON: %v", err)
	}
	if info.Version != "1.4.0" || info.Commit != "abc123" || info.Platform == "" {
		t.Errorf("--json = %+v", info)
	}
}
