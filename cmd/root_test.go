package cmd

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/compozy/hellopr/internal/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGitHub struct {
	mu       sync.Mutex
	calls    []string
	failPath string
}

func newFakeGitHub(t *testing.T, failPath string) (*fakeGitHub, *httptest.Server) {
	t.Helper()
	gh := &fakeGitHub{failPath: failPath}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		key := r.Method + " " + r.URL.RequestURI()
		gh.mu.Lock()
		gh.calls = append(gh.calls, key)
		gh.mu.Unlock()
		if r.Header.Get("Authorization") != "token test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if key == gh.failPath {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		switch key {
		case "GET /user/repos?per_page=10&page=1":
			_, _ = w.Write([]byte(`[{"full_name":"alice/repo"},{"full_name":"alice/other"}]`))
		case "GET /repos/alice/repo":
			_, _ = w.Write([]byte(`{"default_branch":"main"}`))
		case "GET /repos/alice/repo/branches/main":
			_, _ = w.Write([]byte(`{"commit":{"sha":"abc123"}}`))
		case "POST /repos/alice/repo/git/refs", "PUT /repos/alice/repo/contents/Hello.txt":
			w.WriteHeader(http.StatusCreated)
		case "POST /repos/alice/repo/pulls":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"html_url":"https://github.com/alice/repo/pull/7"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return gh, srv
}

func (f *fakeGitHub) callList() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func runRoot(t *testing.T, fs afero.Fs, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd(fs)
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func configFs(t *testing.T, content string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "config.json", []byte(content), 0o600))
	return fs
}

func TestRootCmd_OpenPR(t *testing.T) {
	t.Run("Should open the pull request interactively", func(t *testing.T) {
		gh, srv := newFakeGitHub(t, "")
		fs := configFs(t, fmt.Sprintf(`{"token":"test-token","api_url":%q}`, srv.URL))

		out, _, err := runRoot(t, fs, "1\ny\n")
		require.NoError(t, err)
		assert.Contains(t, out, "1. alice/repo\n2. alice/other\n")
		assert.Contains(t, out, "You have selected: alice/repo\n")
		assert.Contains(t, out, "Pull request created successfully!\n")
		assert.Contains(t, out, "You can view it here: https://github.com/alice/repo/pull/7\n")
		assert.Len(t, gh.callList(), 6)
	})

	t.Run("Should skip the menu and confirmation with flags", func(t *testing.T) {
		gh, srv := newFakeGitHub(t, "")
		fs := configFs(t, fmt.Sprintf(`{"token":"test-token","api_url":%q}`, srv.URL))

		out, _, err := runRoot(t, fs, "", "--repo", "alice/repo", "--yes")
		require.NoError(t, err)
		assert.NotContains(t, out, "Please select a repository:")
		assert.Contains(t, out, "https://github.com/alice/repo/pull/7")
		assert.NotContains(t, gh.callList(), "GET /user/repos?per_page=10&page=1")
	})

	t.Run("Should not touch the remote workflow when the user aborts", func(t *testing.T) {
		gh, srv := newFakeGitHub(t, "")
		fs := configFs(t, fmt.Sprintf(`{"token":"test-token","api_url":%q}`, srv.URL))

		out, _, err := runRoot(t, fs, "2\nn\n")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInput)
		assert.Contains(t, out, "Aborting...")
		assert.Equal(t, []string{"GET /user/repos?per_page=10&page=1"}, gh.callList())
	})

	t.Run("Should mention the leftover branch when a late step fails", func(t *testing.T) {
		gh, srv := newFakeGitHub(t, "PUT /repos/alice/repo/contents/Hello.txt")
		fs := configFs(t, fmt.Sprintf(`{"token":"test-token","api_url":%q}`, srv.URL))

		_, stderr, err := runRoot(t, fs, "1\ny\n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "add file")
		assert.Contains(t, err.Error(), "422")
		assert.Contains(t, stderr, `branch "hello_world" was created on alice/repo`)
		assert.NotContains(t, gh.callList(), "POST /repos/alice/repo/pulls")
	})

	t.Run("Should fail on a non-string token without calling the API", func(t *testing.T) {
		gh, _ := newFakeGitHub(t, "")
		fs := configFs(t, `{"token": 123}`)

		_, _, err := runRoot(t, fs, "1\ny\n")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfig)
		assert.Empty(t, gh.callList())
	})

	t.Run("Should read the config from a custom path", func(t *testing.T) {
		_, srv := newFakeGitHub(t, "")
		fs := afero.NewMemMapFs()
		content := fmt.Sprintf(`{"token":"test-token","api_url":%q}`, srv.URL)
		require.NoError(t, afero.WriteFile(fs, "/etc/hellopr.json", []byte(content), 0o600))

		out, _, err := runRoot(t, fs, "", "--config", "/etc/hellopr.json", "--repo", "alice/repo", "-y")
		require.NoError(t, err)
		assert.Contains(t, out, "Pull request created successfully!")
	})
}

func TestReposCmd(t *testing.T) {
	t.Run("Should print the numbered list", func(t *testing.T) {
		_, srv := newFakeGitHub(t, "")
		fs := configFs(t, fmt.Sprintf(`{"token":"test-token","api_url":%q}`, srv.URL))

		out, _, err := runRoot(t, fs, "", "repos")
		require.NoError(t, err)
		assert.Equal(t, "1. alice/repo\n2. alice/other\n", out)
	})

	t.Run("Should report the status code of a failed listing", func(t *testing.T) {
		_, srv := newFakeGitHub(t, "")
		fs := configFs(t, fmt.Sprintf(`{"token":"wrong-token","api_url":%q}`, srv.URL))

		_, _, err := runRoot(t, fs, "", "repos")
		require.Error(t, err)
		var statusErr *domain.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	})
}
