package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ikodrasi/publist/internal/config"
	"github.com/ikodrasi/publist/internal/dataset"
	"github.com/ikodrasi/publist/internal/geo"
	"github.com/ikodrasi/publist/internal/pdf"
	"github.com/ikodrasi/publist/internal/printer"
	"github.com/ikodrasi/publist/internal/storage"
)

// testEnv builds an env over the embedded dataset with every directory
// under a temp dir. Warnings are captured in the returned buffer.
func testEnv(t *testing.T) (*env, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	c, err := dataset.Catalog("")
	if err != nil {
		t.Fatalf("dataset.Catalog() error = %v", err)
	}

	dir := t.TempDir()
	cfg := config.Default()
	cfg.PapersDir = filepath.Join(dir, "papers")
	cfg.ThumbsDir = filepath.Join(dir, "thumbs")
	cfg.LatexFile = filepath.Join(dir, "tex", "publications.tex")
	cfg.CacheDir = filepath.Join(dir, "cache")
	cfg.Thumbnail.Convert = "publist-test-no-such-converter"

	var stderr bytes.Buffer
	saved := printer.Output
	printer.Output = &stderr
	t.Cleanup(func() { printer.Output = saved })

	var stdout bytes.Buffer
	return &env{
		ctx:     context.Background(),
		cfg:     cfg,
		catalog: c,
		out:     &stdout,
	}, &stdout, &stderr
}

func TestOperationNamesAreUnique(t *testing.T) {
	seen := make(map[string]Operation)
	for _, op := range Operations() {
		if prev, dup := seen[op.String()]; dup {
			t.Errorf("operations %d and %d share the name %q", prev, op, op)
		}
		seen[op.String()] = op
	}
}

func TestOperation_String(t *testing.T) {
	if got := OpHAMLNews.String(); got != "haml-news" {
		t.Errorf("OpHAMLNews.String() = %q", got)
	}
	if got := Operation(99).String(); got != "Operation(99)" {
		t.Errorf("Operation(99).String() = %q", got)
	}
}

func TestRootCommandHasEveryOperation(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, op := range Operations() {
		if !names[op.String()] {
			t.Errorf("no command for operation %q", op)
		}
	}
}

func TestRootCommandRejectsUnknownOperation(t *testing.T) {
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"bibtex"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("Execute() expected error for unknown operation")
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
}

func TestRunStats(t *testing.T) {
	e, stdout, _ := testEnv(t)
	if err := runStats(e); err != nil {
		t.Fatalf("runStats() error = %v", err)
	}

	c := e.catalog
	want := fmt.Sprintf("%d authors, %d conference papers, in %d countries\n",
		len(c.Authors()), len(c.Papers()), len(c.Countries()))
	if stdout.String() != want {
		t.Errorf("runStats() = %q, want %q", stdout.String(), want)
	}
}

func TestRunStats_JSON(t *testing.T) {
	e, stdout, _ := testEnv(t)
	e.json = true
	if err := runStats(e); err != nil {
		t.Fatalf("runStats() error = %v", err)
	}

	var got StatsResponse
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout.String(), err)
	}
	if got.ConferencePapers != len(e.catalog.Papers()) {
		t.Errorf("conference_papers = %d, want %d", got.ConferencePapers, len(e.catalog.Papers()))
	}
	if got.InvitedTalks != len(e.catalog.Talks()) {
		t.Errorf("invited_talks = %d, want %d", got.InvitedTalks, len(e.catalog.Talks()))
	}
}

func TestRunHAMLNews(t *testing.T) {
	e, stdout, _ := testEnv(t)
	if err := runHAMLNews(e); err != nil {
		t.Fatalf("runHAMLNews() error = %v", err)
	}
	if got := strings.Count(stdout.String(), "%li.list-group-item"); got != len(e.catalog.News()) {
		t.Errorf("news items = %d, want %d", got, len(e.catalog.News()))
	}
}

func TestRunPublications(t *testing.T) {
	e, stdout, stderr := testEnv(t)
	if err := runPublications(e); err != nil {
		t.Fatalf("runPublications() error = %v", err)
	}

	if !strings.HasPrefix(stdout.String(), "@STRING{") {
		t.Errorf("bibliography does not start with @STRING macros: %.40q", stdout.String())
	}
	tex, err := os.ReadFile(e.cfg.LatexFile)
	if err != nil {
		t.Fatalf("LaTeX file not written: %v", err)
	}
	if !strings.Contains(string(tex), `\end{document}`) {
		t.Error("LaTeX file is incomplete")
	}
	if !strings.Contains(stderr.String(), "wrote "+e.cfg.LatexFile) {
		t.Errorf("stderr = %q, want progress line", stderr.String())
	}
}

func TestRunCheck_MissingPDFs(t *testing.T) {
	e, stdout, _ := testEnv(t)
	e.json = true
	if err := runCheck(e); err != nil {
		t.Fatalf("runCheck() error = %v", err)
	}

	var got CheckResult
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout.String(), err)
	}
	if got.Status != "issues" {
		t.Errorf("status = %q, want issues", got.Status)
	}

	missing := 0
	for _, issue := range got.Issues {
		if issue.Type == "missing_pdf" {
			missing++
		}
	}
	want := len(e.catalog.Papers()) + len(e.catalog.Articles())
	if missing != want {
		t.Errorf("missing_pdf issues = %d, want %d", missing, want)
	}
}

func TestRunCheck_Human(t *testing.T) {
	e, stdout, _ := testEnv(t)
	if err := runCheck(e); err != nil {
		t.Fatalf("runCheck() error = %v", err)
	}
	out := stdout.String()
	if !strings.HasPrefix(out, "Dataset check: ") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "[WARN] Missing PDF for ") {
		t.Errorf("output lacks missing PDF warning: %q", out)
	}
}

func TestRunPDFs_AdoptsExistingThumbnail(t *testing.T) {
	e, _, stderr := testEnv(t)
	dirs := pdf.DirAssets{PapersDir: e.cfg.PapersDir, ThumbsDir: e.cfg.ThumbsDir}
	name := e.catalog.Papers()[0].Filename

	for _, p := range []string{dirs.PDFPath(name), dirs.ThumbnailPath(name)} {
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("content of "+filepath.Base(p)), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := runPDFs(e); err != nil {
		t.Fatalf("runPDFs() error = %v", err)
	}

	if !strings.Contains(stderr.String(), "thumbnails will not be created") {
		t.Errorf("stderr lacks converter warning: %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "no PDF for ") {
		t.Errorf("stderr lacks missing PDF warnings: %q", stderr.String())
	}

	cache, err := storage.OpenCache(e.cfg.CachePath())
	if err != nil {
		t.Fatalf("OpenCache() error = %v", err)
	}
	defer cache.Close()

	rec, err := cache.GetThumbnail(name)
	if err != nil {
		t.Fatalf("GetThumbnail() error = %v", err)
	}
	if rec == nil {
		t.Fatal("existing thumbnail was not recorded")
	}
	wantFP, err := pdf.Fingerprint(dirs.PDFPath(name))
	if err != nil {
		t.Fatal(err)
	}
	if rec.Fingerprint != wantFP {
		t.Errorf("fingerprint = %q, want %q", rec.Fingerprint, wantFP)
	}
	if rec.Height != e.cfg.Thumbnail.Height {
		t.Errorf("height = %d, want %d", rec.Height, e.cfg.Thumbnail.Height)
	}
}

// stubConverter writes a shell script standing in for convert. It writes
// the resize argument ("x<height>") to the output file.
func stubConverter(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "convert")
	script := "#!/bin/sh\nfor last; do :; done\nprintf '%s' \"$4\" > \"$last\"\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRunPDFs_ConvertsUnparseablePDF(t *testing.T) {
	e, _, stderr := testEnv(t)
	e.cfg.Thumbnail.Convert = stubConverter(t)
	dirs := pdf.DirAssets{PapersDir: e.cfg.PapersDir, ThumbsDir: e.cfg.ThumbsDir}
	name := e.catalog.Papers()[0].Filename
	writeFile(t, dirs.PDFPath(name), "%PDF-1.7\nnot parseable by a strict reader\n")

	if err := runPDFs(e); err != nil {
		t.Fatalf("runPDFs() error = %v", err)
	}

	if !strings.Contains(stderr.String(), "unreadable PDF for ") {
		t.Errorf("stderr lacks unreadable PDF warning: %q", stderr.String())
	}
	got, err := os.ReadFile(dirs.ThumbnailPath(name))
	if err != nil {
		t.Fatalf("thumbnail not created: %v", err)
	}
	if want := fmt.Sprintf("x%d", e.cfg.Thumbnail.Height); string(got) != want {
		t.Errorf("thumbnail = %q, want %q", got, want)
	}
}

func TestRunPDFs_RegeneratesStaleThumbnail(t *testing.T) {
	e, _, _ := testEnv(t)
	e.cfg.Thumbnail.Convert = stubConverter(t)
	dirs := pdf.DirAssets{PapersDir: e.cfg.PapersDir, ThumbsDir: e.cfg.ThumbsDir}
	name := e.catalog.Papers()[0].Filename
	writeFile(t, dirs.PDFPath(name), "first version")

	thumbnail := func() string {
		t.Helper()
		got, err := os.ReadFile(dirs.ThumbnailPath(name))
		if err != nil {
			t.Fatalf("reading thumbnail: %v", err)
		}
		return string(got)
	}
	recorded := func() string {
		t.Helper()
		cache, err := storage.OpenCache(e.cfg.CachePath())
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()
		rec, err := cache.GetThumbnail(name)
		if err != nil || rec == nil {
			t.Fatalf("GetThumbnail() = %v, %v", rec, err)
		}
		return rec.Fingerprint
	}

	if err := runPDFs(e); err != nil {
		t.Fatalf("runPDFs() error = %v", err)
	}
	if got := thumbnail(); got != "x130" {
		t.Fatalf("thumbnail = %q, want x130", got)
	}

	// Unchanged input leaves the thumbnail alone.
	writeFile(t, dirs.ThumbnailPath(name), "kept")
	if err := runPDFs(e); err != nil {
		t.Fatalf("runPDFs() error = %v", err)
	}
	if got := thumbnail(); got != "kept" {
		t.Errorf("up-to-date thumbnail was regenerated: %q", got)
	}

	e.cfg.Thumbnail.Height = 200
	if err := runPDFs(e); err != nil {
		t.Fatalf("runPDFs() error = %v", err)
	}
	if got := thumbnail(); got != "x200" {
		t.Errorf("thumbnail after height change = %q, want x200", got)
	}

	writeFile(t, dirs.PDFPath(name), "second version")
	writeFile(t, dirs.ThumbnailPath(name), "stale")
	if err := runPDFs(e); err != nil {
		t.Fatalf("runPDFs() error = %v", err)
	}
	if got := thumbnail(); got != "x200" {
		t.Errorf("thumbnail after PDF change = %q, want x200", got)
	}
	want, err := pdf.Fingerprint(dirs.PDFPath(name))
	if err != nil {
		t.Fatal(err)
	}
	if got := recorded(); got != want {
		t.Errorf("recorded fingerprint = %q, want %q", got, want)
	}
}

func TestRunGeo_CachesAnswers(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat": "52.5", "lon": "13.25", "display_name": "somewhere"}]`))
	}))
	defer server.Close()

	e, stdout, _ := testEnv(t)
	e.cfg.Geocoder.URL = server.URL
	e.cfg.Geocoder.Rate = 1000

	if err := runGeo(e); err != nil {
		t.Fatalf("runGeo() error = %v", err)
	}

	locations := geo.Locations(e.catalog)
	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	if len(lines) != len(locations) {
		t.Fatalf("markers = %d, want %d", len(lines), len(locations))
	}
	if want := geo.Marker(locations[0], geo.Point{Lat: 52.5, Lng: 13.25}); lines[0] != want {
		t.Errorf("first marker = %q, want %q", lines[0], want)
	}
	if got := int(requests.Load()); got != len(locations) {
		t.Errorf("requests = %d, want %d", got, len(locations))
	}

	stdout.Reset()
	if err := runGeo(e); err != nil {
		t.Fatalf("second runGeo() error = %v", err)
	}
	if got := int(requests.Load()); got != len(locations) {
		t.Errorf("requests after cached run = %d, want %d", got, len(locations))
	}
	if got := strings.Count(stdout.String(), "\n"); got != len(locations) {
		t.Errorf("cached markers = %d, want %d", got, len(locations))
	}
}

func TestRunGeo_NoMatchWarns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	e, stdout, stderr := testEnv(t)
	e.cfg.Geocoder.URL = server.URL
	e.cfg.Geocoder.Rate = 1000

	if err := runGeo(e); err != nil {
		t.Fatalf("runGeo() error = %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
	first := geo.Locations(e.catalog)[0]
	if !strings.Contains(stderr.String(), "No geocode for "+first) {
		t.Errorf("stderr = %q, want no-geocode warning", stderr.String())
	}
}

func TestRunGeo_RecoversAfterHTTPError(t *testing.T) {
	broken := httptest.NewServer(http.NotFoundHandler())
	defer broken.Close()

	e, stdout, stderr := testEnv(t)
	e.cfg.Geocoder.URL = broken.URL
	e.cfg.Geocoder.Rate = 1000

	if err := runGeo(e); err != nil {
		t.Fatalf("runGeo() error = %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
	if strings.Contains(stderr.String(), "No geocode for ") {
		t.Errorf("a 404 was reported as a miss: %q", stderr.String())
	}

	fixed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat": "1", "lon": "2"}]`))
	}))
	defer fixed.Close()
	e.cfg.Geocoder.URL = fixed.URL

	if err := runGeo(e); err != nil {
		t.Fatalf("runGeo() error = %v", err)
	}
	if got, want := strings.Count(stdout.String(), "\n"), len(geo.Locations(e.catalog)); got != want {
		t.Errorf("markers after fixing the URL = %d, want %d", got, want)
	}
}

func TestRunGeo_RateLimitedWarns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	e, _, stderr := testEnv(t)
	e.cfg.Geocoder.URL = server.URL
	e.cfg.Geocoder.Rate = 1000

	if err := runGeo(e); err != nil {
		t.Fatalf("runGeo() error = %v", err)
	}
	if !strings.Contains(stderr.String(), "geocoder is rate limiting") {
		t.Errorf("stderr = %q, want rate limit warning", stderr.String())
	}
}

func TestRunCheck_ReportsCacheCounts(t *testing.T) {
	e, stdout, _ := testEnv(t)
	e.json = true

	if err := runCheck(e); err != nil {
		t.Fatalf("runCheck() error = %v", err)
	}
	if strings.Contains(stdout.String(), `"cache"`) {
		t.Errorf("check reported a cache that does not exist: %s", stdout.String())
	}
	if _, err := os.Stat(e.cfg.CachePath()); !os.IsNotExist(err) {
		t.Errorf("check created the cache: %v", err)
	}

	if err := os.MkdirAll(e.cfg.CacheDir, 0755); err != nil {
		t.Fatal(err)
	}
	cache, err := storage.OpenCache(e.cfg.CachePath())
	if err != nil {
		t.Fatal(err)
	}
	cache.PutGeocode(storage.Geocode{Query: "Kyoto, Japan", Found: true})
	cache.PutThumbnail(storage.Thumbnail{Name: "2018_icassp", Fingerprint: "f", Height: 130})
	cache.Close()

	stdout.Reset()
	if err := runCheck(e); err != nil {
		t.Fatalf("runCheck() error = %v", err)
	}
	var got CheckResult
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout.String(), err)
	}
	if got.Cache == nil || got.Cache.Geocodes != 1 || got.Cache.Thumbnails != 1 {
		t.Errorf("cache = %+v, want 1 geocode and 1 thumbnail", got.Cache)
	}
}
