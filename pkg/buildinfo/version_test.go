package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	old := Commit
	t.Cleanup(func() { Commit = old })

	Commit = "0123456789abcdef0123456789abcdef01234567"
	if got := Template(); !strings.Contains(got, "commit 0123456789ab,") {
		t.Errorf("Template() = %q", got)
	}
	Commit = "abc"
	if got := Template(); !strings.Contains(got, "commit abc,") {
		t.Errorf("Template() = %q", got)
	}
	if !strings.HasPrefix(String(), "version: ") {
		t.Errorf("String() = %q", String())
	}
}
