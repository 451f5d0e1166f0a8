package site

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubRelay struct {
	got []ContactForm
	err error
}

func (r *stubRelay) Submit(_ context.Context, form ContactForm) error {
	r.got = append(r.got, form)
	return r.err
}

func newTestRouter(t *testing.T, catalog *Catalog, relay Relay) *gin.Engine {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "static"), 0o755); err != nil {
		t.Fatal(err)
	}
	tmpl := `year={{.year}} posts={{len .posts.Posts}} toggle={{.posts.ShowToggle}} label={{.posts.ToggleLabel}}`
	if err := os.WriteFile(filepath.Join(dir, "templates", "index.html"), []byte(tmpl), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "static", "style.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewServer(catalog, relay)
	s.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	return s.Router(dir)
}

func manyPosts(n int) *Catalog {
	c := DefaultCatalog()
	c.Posts = nil
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		c.Posts = append(c.Posts, Post{ID: id, Title: "Post " + id})
	}
	return c
}

func TestIndexStampsYear(t *testing.T) {
	r := newTestRouter(t, nil, &stubRelay{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != "year=2026 posts=3 toggle=true label=View More Blogs" {
		t.Errorf("unexpected body %q", body)
	}
}

func TestIndexExpandsBlogs(t *testing.T) {
	r := newTestRouter(t, nil, &stubRelay{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?all=true", nil))
	if body := w.Body.String(); body != "year=2026 posts=6 toggle=true label=Back to previous" {
		t.Errorf("unexpected body %q", body)
	}
}

func TestShippedPage(t *testing.T) {
	r := NewServer(nil, &stubRelay{}).Router(filepath.Join("..", "..", "web"))

	for _, tc := range []struct {
		target string
		want   []string
	}{
		{"/", []string{`href="/?all=true#blogs"`, "View More Blogs", `data-id="blog3"`, `id="blogModal"`}},
		{"/?all=true", []string{`href="/#blogs"`, "Back to previous", `data-id="blog6"`}},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.target, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", tc.target, w.Code)
		}
		body := w.Body.String()
		for _, want := range tc.want {
			if !strings.Contains(body, want) {
				t.Errorf("%s: page is missing %q", tc.target, want)
			}
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if strings.Contains(w.Body.String(), `data-id="blog4"`) {
		t.Error("collapsed page should show only the first three posts")
	}
}

func TestDefaultCatalogToggle(t *testing.T) {
	page := DefaultCatalog().Previews(false)
	if page.Total != 6 || len(page.Posts) != 3 || !page.ShowToggle || page.ToggleLabel != "View More Blogs" {
		t.Errorf("unexpected default previews: total=%d visible=%d toggle=%v label=%q",
			page.Total, len(page.Posts), page.ShowToggle, page.ToggleLabel)
	}
}

func TestStatic(t *testing.T) {
	r := newTestRouter(t, nil, &stubRelay{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	if w.Code != http.StatusOK || w.Body.String() != "body{}" {
		t.Errorf("static file not served: %d %q", w.Code, w.Body.String())
	}
}

func TestPreviews(t *testing.T) {
	tests := []struct {
		name       string
		posts      int
		all        bool
		visible    int
		showToggle bool
		label      string
	}{
		{"Default two posts", 2, false, 2, false, "View More Blogs"},
		{"Exactly three", 3, false, 3, false, "View More Blogs"},
		{"Five collapsed", 5, false, 3, true, "View More Blogs"},
		{"Five expanded", 5, true, 5, true, "Back to previous"},
		{"Empty", 0, false, 0, false, "View More Blogs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := manyPosts(tt.posts).Previews(tt.all)
			if len(page.Posts) != tt.visible {
				t.Errorf("Expected %d visible, got %d", tt.visible, len(page.Posts))
			}
			if page.ShowToggle != tt.showToggle {
				t.Errorf("Expected showToggle %v", tt.showToggle)
			}
			if page.ToggleLabel != tt.label {
				t.Errorf("Expected label %q, got %q", tt.label, page.ToggleLabel)
			}
			if page.Total != tt.posts {
				t.Errorf("Expected total %d, got %d", tt.posts, page.Total)
			}
			if (tt.posts == 0) != (page.EmptyNotice != "") {
				t.Errorf("unexpected empty notice %q", page.EmptyNotice)
			}
		})
	}
}

func TestListPostsEndpoint(t *testing.T) {
	r := newTestRouter(t, manyPosts(4), &stubRelay{})

	for _, tc := range []struct {
		query string
		want  int
	}{
		{"", 3},
		{"?all=true", 4},
		{"?all=nonsense", 3},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts"+tc.query, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%q: expected 200, got %d", tc.query, w.Code)
		}
		var page PreviewPage
		if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
			t.Fatalf("%q: %v", tc.query, err)
		}
		if len(page.Posts) != tc.want {
			t.Errorf("%q: expected %d posts, got %d", tc.query, tc.want, len(page.Posts))
		}
	}
}

func TestGetPostEndpoint(t *testing.T) {
	r := newTestRouter(t, nil, &stubRelay{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts/blog2", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var post Post
	if err := json.Unmarshal(w.Body.Bytes(), &post); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(post.BloggerURL, "chemical-engineering-in-nepal") {
		t.Errorf("unexpected post %+v", post)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func postForm(r http.Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validForm() url.Values {
	return url.Values{
		"name":    {"  Ada  "},
		"email":   {"ada@example.com"},
		"subject": {"Hello"},
		"message": {"Nice page"},
	}
}

func TestContactValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(url.Values)
		message string
	}{
		{"Missing name", func(v url.Values) { v.Set("name", "   ") }, "Name is required."},
		{"Bad email", func(v url.Values) { v.Set("email", "ada@") }, "Valid email is required."},
		{"Missing subject", func(v url.Values) { v.Del("subject") }, "Subject is required."},
		{"Missing message", func(v url.Values) { v.Set("message", "\n") }, "Message is required."},
		{"First failure wins", func(v url.Values) { v.Set("email", ""); v.Set("message", "") }, "Valid email is required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			relay := &stubRelay{}
			r := newTestRouter(t, nil, relay)
			form := validForm()
			tt.mutate(form)

			w := postForm(r, form)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected 400, got %d", w.Code)
			}
			var resp map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp["error"] != tt.message {
				t.Errorf("Expected %q, got %q", tt.message, resp["error"])
			}
			if len(relay.got) != 0 {
				t.Error("invalid form must not be relayed")
			}
		})
	}
}

func TestContactSuccess(t *testing.T) {
	relay := &stubRelay{}
	r := newTestRouter(t, nil, relay)

	w := postForm(r, validForm())
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	want := "Thank you, Ada ! Your message has been sent successfully. It will be reviewed shortly."
	if resp["message"] != want {
		t.Errorf("Expected %q, got %q", want, resp["message"])
	}
	if len(relay.got) != 1 || relay.got[0].Name != "Ada" {
		t.Errorf("form should be relayed trimmed, got %+v", relay.got)
	}
}

func TestContactRelayErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"Rejected", ErrRejected, http.StatusBadGateway},
		{"Not configured", ErrNoEndpoint, http.StatusServiceUnavailable},
		{"Transport", io.ErrUnexpectedEOF, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t, nil, &stubRelay{err: tt.err})
			if w := postForm(r, validForm()); w.Code != tt.code {
				t.Errorf("Expected %d, got %d", tt.code, w.Code)
			}
		})
	}
}

func TestFormRelay(t *testing.T) {
	var got url.Values
	result := "success"
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		got = r.MultipartForm.Value
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"result": result})
	}))
	defer remote.Close()

	relay := NewFormRelay(remote.URL)
	form := ContactForm{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello"}

	if err := relay.Submit(context.Background(), form); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	for k, want := range map[string]string{"name": "Ada", "email": "ada@example.com", "subject": "Hi", "message": "Hello"} {
		if len(got[k]) != 1 || got[k][0] != want {
			t.Errorf("field %s = %v, want %q", k, got[k], want)
		}
	}

	result = "error"
	if err := relay.Submit(context.Background(), form); err == nil {
		t.Error("Expected rejection error")
	}
}

func TestFormRelayBadReply(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer remote.Close()

	if err := NewFormRelay(remote.URL).Submit(context.Background(), ContactForm{}); err == nil {
		t.Error("non-JSON reply should fail")
	}
	if err := NewFormRelay("").Submit(context.Background(), ContactForm{}); err != ErrNoEndpoint {
		t.Errorf("Expected ErrNoEndpoint, got %v", err)
	}
}
