package content

import (
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-medsite/pkg/testsupport"
)

func TestLoadFSMergesJSONAndYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"blog.yaml": {Data: []byte(`
categories:
  - slug: news
    name: News
posts:
  - slug: older
    title: Older
    category: news
    published: "2024-01-01"
    body: "one two three"
  - slug: newer
    title: Newer
    category: news
    published: "2024-02-01"
    reading_minutes: 4
    body: "**bold** <script>alert(1)</script>"
`)},
		"services.json": {Data: []byte(`{"services":[{"slug":"x-ray","name":"X-ray","icon":"<svg viewBox=\"0 0 2 2\" onload=\"evil()\"><path d=\"M0 0\"/></svg><img src=x>","body":"Plain body"}]}`)},
		"notes.txt":     {Data: []byte("ignored")},
	}

	store, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	posts := store.Posts()
	slugs := []string{posts[0].Slug, posts[1].Slug}
	if diff := cmp.Diff([]string{"newer", "older"}, slugs); diff != "" {
		t.Fatalf("post order mismatch (-want +got):\n%s", diff)
	}
	newer, ok := store.Post("newer")
	if !ok {
		t.Fatalf("expected post lookup")
	}
	if !strings.Contains(newer.HTML, "<strong>bold</strong>") || strings.Contains(newer.HTML, "<script") {
		t.Fatalf("unexpected html: %q", newer.HTML)
	}
	if newer.ReadingMinutes != 4 {
		t.Fatalf("explicit reading minutes overwritten: %d", newer.ReadingMinutes)
	}
	older, _ := store.Post("older")
	if older.ReadingMinutes != 1 || older.Published.Year() != 2024 {
		t.Fatalf("unexpected derived fields: %+v", older)
	}

	service, ok := store.Service("x-ray")
	if !ok {
		t.Fatalf("expected service from json file")
	}
	if strings.Contains(service.Icon, "onload") || strings.Contains(service.Icon, "<img") || !strings.Contains(service.Icon, "<path") {
		t.Fatalf("icon not sanitised: %q", service.Icon)
	}
	if service.HTML != "<p>Plain body</p>" {
		t.Fatalf("service html: %q", service.HTML)
	}
}

func TestLoadFSErrors(t *testing.T) {
	cases := []struct {
		name string
		fsys fstest.MapFS
		want string
	}{
		{
			name: "duplicate slug across files",
			fsys: fstest.MapFS{
				"a.yaml": {Data: []byte("services:\n  - slug: dup\n")},
				"b.yaml": {Data: []byte("services:\n  - slug: dup\n")},
			},
			want: `duplicate service "dup"`,
		},
		{
			name: "unknown category",
			fsys: fstest.MapFS{
				"a.yaml": {Data: []byte("posts:\n  - slug: p\n    category: missing\n    published: \"2024-01-01\"\n")},
			},
			want: `unknown category "missing"`,
		},
		{
			name: "bad date",
			fsys: fstest.MapFS{
				"a.yaml": {Data: []byte("categories:\n  - slug: c\nposts:\n  - slug: p\n    category: c\n    published: \"May 1\"\n")},
			},
			want: "invalid published date",
		},
		{
			name: "empty file",
			fsys: fstest.MapFS{"a.yaml": {Data: []byte("  ")}},
			want: "is empty",
		},
		{
			name: "practice twice",
			fsys: fstest.MapFS{
				"a.yaml": {Data: []byte("practice:\n  name: A\n")},
				"b.yaml": {Data: []byte("practice:\n  name: B\n")},
			},
			want: "practice declared in a.yaml and b.yaml",
		},
		{
			name: "empty slug",
			fsys: fstest.MapFS{"a.yaml": {Data: []byte("categories:\n  - name: x\n")}},
			want: "empty slug",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFS(tc.fsys)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadFSNil(t *testing.T) {
	store, err := LoadFS(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(store.Posts()) != 0 || store.Practice().Name != "" {
		t.Fatalf("expected empty store")
	}
}

func TestEmbeddedFixtures(t *testing.T) {
	store, err := Default()
	if err != nil {
		t.Fatalf("default store: %v", err)
	}
	if store.Practice().Name == "" {
		t.Fatalf("practice missing")
	}
	for _, category := range store.Categories() {
		if len(store.PostsInCategory(category.Slug)) == 0 {
			t.Errorf("category %q has no posts", category.Slug)
		}
	}
	for _, service := range store.Services() {
		if service.HTML == "" || service.Icon == "" || service.ImageAlt == "" {
			t.Errorf("service %q incomplete", service.Slug)
		}
	}
	for _, post := range store.Posts() {
		if post.Image != "" && post.ImageAlt == "" {
			t.Errorf("post %q image without alt text", post.Slug)
		}
	}
	if got := len(store.Recent(2)); got != 2 {
		t.Fatalf("recent: %d", got)
	}
	if got := store.Practice().Address.String(); got != "1200 Brickell Avenue, Suite 410, Miami, FL 33131" {
		t.Fatalf("address: %q", got)
	}
}

func TestEmbeddedServicesKeepFileOrder(t *testing.T) {
	var doc documentFile
	testsupport.MustLoadYAML(t, filepath.Join("fixtures", "services.yaml"), &doc)
	if len(doc.Services) == 0 {
		t.Fatalf("services fixture is empty")
	}

	store, err := Default()
	if err != nil {
		t.Fatalf("default store: %v", err)
	}
	want := make([]string, 0, len(doc.Services))
	for _, service := range doc.Services {
		want = append(want, service.Slug)
	}
	var got []string
	for _, service := range store.Services() {
		got = append(got, service.Slug)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("service order mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	store, err := Default()
	if err != nil {
		t.Fatalf("default store: %v", err)
	}
	services := store.Services()
	services[0].Highlights[0] = "mutated"
	again, _ := store.Service(services[0].Slug)
	if again.Highlights[0] == "mutated" {
		t.Fatalf("service highlights shared with caller")
	}
}
