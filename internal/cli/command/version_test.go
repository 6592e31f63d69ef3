package command

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/yndnr/quill/internal/infra/buildinfo"
)

func TestVersion(t *testing.T) {
	stdout, _, err := runApp(t, t.TempDir(), "", "-o", "json", "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}

	var got buildinfo.Info
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if got.Version != buildinfo.Get().Version {
		t.Errorf("Version = %q, want %q", got.Version, buildinfo.Get().Version)
	}
}

func TestVersion_Table(t *testing.T) {
	stdout, _, err := runApp(t, t.TempDir(), "", "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.Contains(stdout, buildinfo.Get().Version) {
		t.Errorf("table output missing version:\n%s", stdout)
	}
}
