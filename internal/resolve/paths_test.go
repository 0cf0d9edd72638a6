package resolve

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRoot = "/srv/app"

func newTestResolver(t *testing.T, fs afero.Fs) *Resolver {
	t.Helper()

	r, err := New(fs, testRoot)
	require.NoError(t, err)

	return r
}

func TestNewCleansRoot(t *testing.T) {
	r, err := New(afero.NewMemMapFs(), "/srv/app/../app/")
	require.NoError(t, err)
	assert.Equal(t, testRoot, r.Root())
}

func TestResolve(t *testing.T) {
	r := newTestResolver(t, afero.NewMemMapFs())

	tests := []struct {
		name    string
		target  string
		want    string
		wantErr bool
	}{
		{name: "empty is root", target: "", want: testRoot},
		{name: "slash is root", target: "/", want: testRoot},
		{name: "plain file", target: "/app.js", want: "/srv/app/app.js"},
		{name: "nested", target: "/docs/guide/intro.html", want: "/srv/app/docs/guide/intro.html"},
		{name: "trailing slash", target: "/docs/", want: "/srv/app/docs"},
		{name: "query dropped", target: "/dashboard?tab=1&x=/../..", want: "/srv/app/dashboard"},
		{name: "only query", target: "?a=b", want: testRoot},
		{name: "dot segments", target: "/a/./b/../c", want: "/srv/app/a/c"},
		{name: "inner dotdot stays inside", target: "/a/../b", want: "/srv/app/b"},
		{name: "repeated slashes", target: "//a///b", want: "/srv/app/a/b"},
		{name: "percent decoded", target: "/my%20file.txt", want: "/srv/app/my file.txt"},
		{name: "encoded slash", target: "/docs%2Fintro", want: "/srv/app/docs/intro"},
		{name: "unicode", target: "/%E6%96%87%E6%A1%A3", want: "/srv/app/文档"},
		{name: "dotdot back to root", target: "/docs/..", want: testRoot},
		{name: "traversal", target: "/../../etc/passwd", wantErr: true},
		{name: "traversal without slash", target: "../etc/passwd", wantErr: true},
		{name: "traversal after segments", target: "/a/b/../../../etc", wantErr: true},
		{name: "encoded traversal", target: "/%2e%2e/%2e%2e/etc/passwd", wantErr: true},
		{name: "encoded slash traversal", target: "/..%2F..%2Fetc", wantErr: true},
		{name: "sibling directory", target: "/../app-other/secret.txt", wantErr: true},
		{name: "sibling directory root", target: "/../app-other", wantErr: true},
		{name: "parent of root", target: "/..", wantErr: true},
		{name: "malformed escape", target: "/%zz", wantErr: true},
		{name: "truncated escape", target: "/file%", wantErr: true},
		{name: "nul byte", target: "/index.html%00.png", wantErr: true},
		{name: "invalid utf-8", target: "/%FF", wantErr: true},
		{name: "truncated utf-8 sequence", target: "/caf%C3", wantErr: true},
		{name: "overlong encoding", target: "/%C0%AE%C0%AE/etc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.target)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrRejected)
				assert.Empty(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestResolveStaysInsideRoot(t *testing.T) {
	r := newTestResolver(t, afero.NewMemMapFs())

	targets := []string{
		"/", "/a", "/a/b/c", "/a/../../b", "/./././x", "/../app", "/../app/x",
		"/../app-other", "/....//x", "/..../..", "/a/%2e%2e/%2e%2e/b", "/~/x",
	}

	for _, target := range targets {
		got, err := r.Resolve(target)
		if err != nil {
			continue
		}

		assert.True(t, got == testRoot || len(got) > len(testRoot) && got[:len(testRoot)+1] == testRoot+"/",
			"%q resolved to %q", target, got)
	}
}

func TestResolveRootAtFilesystemRoot(t *testing.T) {
	r, err := New(afero.NewMemMapFs(), "/")
	require.NoError(t, err)

	got, err := r.Resolve("/../../etc/hosts")
	require.NoError(t, err)
	assert.Equal(t, "/etc/hosts", got)
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		"/srv/app/app.js":          ".js",
		"/srv/app/archive.tar.gz":  ".gz",
		"/srv/app/dashboard":       "",
		"/srv/app/.env":            "",
		"/srv/app/.config.json":    ".json",
		"/srv/app/docs/index.html": ".html",
		"/srv/app/v1.2/settings":   "",
		"/srv/app":                 "",
		"/srv/app/trailing.":       ".",
	}

	for p, want := range tests {
		assert.Equal(t, want, Extension(p), p)
	}
}
