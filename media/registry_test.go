package media

import (
	"io"
	"net/http"
	"slices"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestRegistry_CreateObjectURL(t *testing.T) {
	r := NewRegistry("null", zaptest.NewLogger(t))

	if url, ok := r.CreateObjectURL(nil); ok || url != "" {
		t.Fatalf("CreateObjectURL(nil) = %q, %v", url, ok)
	}
	if r.Len() != 0 {
		t.Fatalf("Len() = %d after nil file", r.Len())
	}

	f := NewFile("a.png", "image/png", []byte{1})
	u1, ok1 := r.CreateObjectURL(f)
	u2, ok2 := r.CreateObjectURL(f)
	if !ok1 || !ok2 {
		t.Fatal("CreateObjectURL() must succeed for non-nil file")
	}
	if u1 == u2 {
		t.Fatalf("CreateObjectURL() returned same URL twice: %q", u1)
	}
	if !strings.HasPrefix(u1, "blob:null/") {
		t.Fatalf("unexpected URL %q", u1)
	}
	if got, ok := r.Resolve(u1); !ok || got != f {
		t.Fatalf("Resolve(%q) = %v, %v", u1, got, ok)
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}

	r.Revoke(u1)
	r.Revoke(u1)
	r.Revoke("blob:null/unknown")
	if _, ok := r.Resolve(u1); ok {
		t.Fatal("revoked URL still resolves")
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistry_Origin(t *testing.T) {
	r := NewRegistry("https://example.com", nil)
	url, _ := r.CreateObjectURL(NewFile("a", "", nil))
	if !strings.HasPrefix(url, "blob:https://example.com/") {
		t.Fatalf("unexpected URL %q", url)
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry("null", nil)

	const n = 64
	urls := make([]string, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Go(func() {
			urls[i], _ = r.CreateObjectURL(NewFile("f", "", []byte{byte(i)}))
			r.Resolve(urls[i])
		})
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, u := range urls {
		if seen[u] {
			t.Fatalf("duplicate URL %q", u)
		}
		seen[u] = true
	}
	if r.Len() != n {
		t.Fatalf("Len() = %d, want %d", r.Len(), n)
	}
}

func TestRegistry_Dump(t *testing.T) {
	r := NewRegistry("null", nil)
	for _, name := range []string{"img10.png", "img2.png", "img1.png"} {
		r.CreateObjectURL(NewFile(name, "image/png", []byte{1, 2}))
	}

	var names []string
	for line := range strings.Lines(string(r.Dump())) {
		// file entries are the only lines on first indentation level
		if strings.HasPrefix(line, "  \"") {
			names = append(names, strings.TrimSpace(line))
		}
	}
	want := []string{`"img1.png"`, `"img2.png"`, `"img10.png"`}
	if !slices.Equal(names, want) {
		t.Errorf("Dump() entries = %v, want %v", names, want)
	}
	if !strings.HasPrefix(string(r.Dump()), "origin: \"null\"\nentries: 3\n") {
		t.Errorf("Dump() header:\n%s", r.Dump())
	}
}

func TestRegistry_RoundTrip(t *testing.T) {
	r := NewRegistry("null", nil)
	url, _ := r.CreateObjectURL(NewFile("a.txt", "text/plain", []byte("payload")))

	do := func(method, url string) *http.Response {
		t.Helper()
		req, err := http.NewRequest(method, url, nil)
		if err != nil {
			t.Fatalf("NewRequest() error = %v", err)
		}
		resp, err := r.RoundTrip(req)
		if err != nil {
			t.Fatalf("RoundTrip() error = %v", err)
		}
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	resp := do(http.MethodGet, url)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/plain" {
		t.Errorf("Content-Type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "payload" {
		t.Errorf("body = %q", body)
	}

	// body is not consumed by the first read
	body, _ = io.ReadAll(do(http.MethodGet, url).Body)
	if string(body) != "payload" {
		t.Errorf("second body = %q", body)
	}

	resp = do(http.MethodHead, url)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("HEAD status = %d", resp.StatusCode)
	}
	if body, _ := io.ReadAll(resp.Body); len(body) != 0 {
		t.Errorf("HEAD body = %q, want empty", body)
	}

	if resp := do(http.MethodPost, url); resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d", resp.StatusCode)
	}

	r.Revoke(url)
	if resp := do(http.MethodGet, url); resp.StatusCode != http.StatusNotFound {
		t.Errorf("revoked status = %d", resp.StatusCode)
	}
}
