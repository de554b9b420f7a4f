package safepath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/soslens/soslens/internal/model"
)

func newTestRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	report := filepath.Join(root, "report1")
	if err := os.MkdirAll(filepath.Join(report, "etc"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(report, "etc", "hostname"), []byte("web01\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func mustResolver(t *testing.T, root string) *Resolver {
	t.Helper()
	r, err := NewResolver(root)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestResolveValidPath(t *testing.T) {
	root := newTestRoot(t)
	r := mustResolver(t, root)

	abs, opErr := r.Resolve("report1", "etc/hostname")
	if opErr != nil {
		t.Fatalf("unexpected error: %v", opErr)
	}
	want := filepath.Join(root, "report1", "etc", "hostname")
	if abs != want {
		t.Errorf("resolved %q, want %q", abs, want)
	}
}

func TestResolveReportRoot(t *testing.T) {
	root := newTestRoot(t)
	r := mustResolver(t, root)

	if _, opErr := r.Resolve("report1", ""); opErr != nil {
		t.Fatalf("unexpected error: %v", opErr)
	}
}

func TestResolveTraversalRejected(t *testing.T) {
	root := newTestRoot(t)
	r := mustResolver(t, root)

	cases := []struct {
		report string
		rel    string
	}{
		{"report1", "../../etc/passwd"},
		{"..", "etc/passwd"},
		{"report1", "etc/../../../../etc/shadow"},
	}
	for _, tc := range cases {
		_, opErr := r.Resolve(tc.report, tc.rel)
		if opErr == nil {
			t.Errorf("Resolve(%q, %q): expected confinement error", tc.report, tc.rel)
			continue
		}
		if opErr.Kind != model.KindConfinement {
			t.Errorf("Resolve(%q, %q): kind = %s, want %s", tc.report, tc.rel, opErr.Kind, model.KindConfinement)
		}
	}
}

func TestResolveSeparatorBoundary(t *testing.T) {
	// A sibling directory sharing the root as a string prefix must not
	// pass the confinement check.
	parent := t.TempDir()
	root := filepath.Join(parent, "reports")
	sibling := filepath.Join(parent, "reports-evil")
	for _, d := range []string{root, sibling} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	r := mustResolver(t, root)
	_, opErr := r.Resolve("..", "reports-evil")
	if opErr == nil || opErr.Kind != model.KindConfinement {
		t.Errorf("expected confinement error, got %v", opErr)
	}
}

func TestResolveOutwardSymlink(t *testing.T) {
	root := newTestRoot(t)
	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.txt")
	if err := os.WriteFile(secret, []byte("top secret"), 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(root, "report1", "escape")
	if err := os.Symlink(secret, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	r := mustResolver(t, root)
	_, opErr := r.Resolve("report1", "escape")
	if opErr == nil {
		t.Fatal("expected error for symlink escaping the root")
	}
	if opErr.Kind != model.KindConfinement {
		t.Errorf("kind = %s, want %s", opErr.Kind, model.KindConfinement)
	}
}

func TestResolveInwardSymlinkAllowed(t *testing.T) {
	root := newTestRoot(t)
	link := filepath.Join(root, "report1", "hn")
	if err := os.Symlink(filepath.Join(root, "report1", "etc", "hostname"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	r := mustResolver(t, root)
	if _, opErr := r.Resolve("report1", "hn"); opErr != nil {
		t.Errorf("inward symlink rejected: %v", opErr)
	}
}

func TestResolveNotFound(t *testing.T) {
	root := newTestRoot(t)
	r := mustResolver(t, root)

	_, opErr := r.Resolve("report1", "no/such/file")
	if opErr == nil {
		t.Fatal("expected not-found error")
	}
	if opErr.Kind != model.KindNotFound {
		t.Errorf("kind = %s, want %s", opErr.Kind, model.KindNotFound)
	}
}
