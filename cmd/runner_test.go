package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/nabende1/CineMate/internal/catalog"
	"github.com/nabende1/CineMate/internal/shared"
	"github.com/nabende1/CineMate/internal/storage"
	tu "github.com/nabende1/CineMate/internal/testing"
	"github.com/nabende1/CineMate/internal/watchlist"
	"github.com/urfave/cli/v3"
)

const popularBody = `{
	"page": 1,
	"results": [
		{"id": 603, "title": "The Matrix", "poster_path": "/m.jpg", "release_date": "1999-03-30", "vote_average": 8.7, "overview": "A hacker learns the truth."}
	],
	"total_pages": 1,
	"total_results": 1
}`

const detailBody = `{
	"id": 603,
	"title": "The Matrix",
	"poster_path": "/m.jpg",
	"release_date": "1999-03-30",
	"vote_average": 8.7,
	"overview": "A hacker learns the truth.",
	"runtime": 136,
	"genres": [{"id": 28, "name": "Action"}]
}`

func testCatalog(t *testing.T, transport http.RoundTripper) *catalog.Client {
	t.Helper()
	cfg := shared.CatalogConfig{
		APIKey:       "test-key",
		BaseURL:      "https://example.test/3",
		ImageBaseURL: "https://img.example.test",
		PosterSize:   "w500",
		Language:     "en-US",
		RateLimit:    100,
	}
	return catalog.NewClient(cfg, &http.Client{Transport: transport}, shared.NewLogger(nil))
}

func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{
		Name:     "cinemate",
		Commands: r.register(),
	}
	return app.Run(context.Background(), append([]string{"cinemate"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			cat := testCatalog(t, tu.NewMockRoundTripper(nil, nil))

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Catalog:    cat,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.catalog != cat {
				t.Error("expected catalog to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil catalog builds one from config", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.catalog == nil {
				t.Error("expected catalog client to be built")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writeJSON(map[string]string{"key": "value"}, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if result := output.String(); result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("movieID", func(t *testing.T) {
		t.Run("parses a numeric id", func(t *testing.T) {
			id, err := movieID("603")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if id != 603 {
				t.Errorf("expected 603, got %d", id)
			}
		})

		t.Run("rejects a missing id", func(t *testing.T) {
			if _, err := movieID(""); err == nil {
				t.Error("expected error for missing id")
			}
		})

		t.Run("rejects a non-numeric id", func(t *testing.T) {
			if _, err := movieID("matrix"); err == nil {
				t.Error("expected error for non-numeric id")
			}
		})
	})
}

func TestCatalogCommands(t *testing.T) {
	t.Run("popular prints a movie listing", func(t *testing.T) {
		output := &bytes.Buffer{}
		rt := tu.NewMockRoundTripper(tu.JSONResponse(http.StatusOK, popularBody), nil)
		runner := NewRunner(RunnerOpts{
			Catalog: testCatalog(t, rt),
			Output:  output,
		})

		if err := run(t, runner, "popular"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "The Matrix (1999)") {
			t.Errorf("expected listing line, got %s", result)
		}
		if !strings.Contains(result, "8.7") {
			t.Errorf("expected rating in listing, got %s", result)
		}
	})

	t.Run("popular with --json emits machine output", func(t *testing.T) {
		output := &bytes.Buffer{}
		rt := tu.NewMockRoundTripper(tu.JSONResponse(http.StatusOK, popularBody), nil)
		runner := NewRunner(RunnerOpts{
			Catalog: testCatalog(t, rt),
			Output:  output,
		})

		if err := run(t, runner, "popular", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(output.String(), `"title":"The Matrix"`) {
			t.Errorf("expected JSON output, got %s", output.String())
		}
	})

	t.Run("trending rejects an unknown window", func(t *testing.T) {
		rt := tu.NewMockRoundTripper(tu.JSONResponse(http.StatusOK, popularBody), nil)
		runner := NewRunner(RunnerOpts{
			Catalog: testCatalog(t, rt),
			Output:  &bytes.Buffer{},
		})

		err := run(t, runner, "trending", "--window", "month")

		if err == nil {
			t.Fatal("expected error for unknown window")
		}
		if rt.Calls() != 0 {
			t.Errorf("expected no request, got %d", rt.Calls())
		}
	})

	t.Run("movie prints the detail page", func(t *testing.T) {
		output := &bytes.Buffer{}
		rt := tu.NewRouteRoundTripper(map[string]string{
			"/credits":   `{"id": 603, "cast": [{"name": "Keanu Reeves", "character": "Neo"}]}`,
			"/similar":   `{"page": 1, "results": [], "total_pages": 1, "total_results": 0}`,
			"/videos":    `{"id": 603, "results": [{"key": "vKQi3bIA1Bc", "site": "YouTube", "type": "Trailer"}]}`,
			"/movie/603": detailBody,
		})
		runner := NewRunner(RunnerOpts{
			Catalog: testCatalog(t, rt),
			Output:  output,
		})

		if err := run(t, runner, "movie", "603"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		result := output.String()
		for _, want := range []string{
			"The Matrix (1999)",
			"Runtime: 136m",
			"Keanu Reeves as Neo",
			"https://www.youtube.com/watch?v=vKQi3bIA1Bc",
		} {
			if !strings.Contains(result, want) {
				t.Errorf("expected %q in output, got %s", want, result)
			}
		}
	})

	t.Run("movie rejects a bad id before any request", func(t *testing.T) {
		rt := tu.NewMockRoundTripper(nil, nil)
		runner := NewRunner(RunnerOpts{
			Catalog: testCatalog(t, rt),
			Output:  &bytes.Buffer{},
		})

		if err := run(t, runner, "movie", "abc"); err == nil {
			t.Fatal("expected error for bad id")
		}
		if rt.Calls() != 0 {
			t.Errorf("expected no request, got %d", rt.Calls())
		}
	})
}

func TestWatchlistCommands(t *testing.T) {
	newWatchlistRunner := func(t *testing.T, transport http.RoundTripper, output *bytes.Buffer) *Runner {
		t.Helper()
		logger := shared.NewLogger(nil)
		files, err := storage.NewStore(t.TempDir(), logger)
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}
		return NewRunner(RunnerOpts{
			Catalog:   testCatalog(t, transport),
			Files:     files,
			Watchlist: watchlist.NewStore(files, logger),
			Logger:    logger,
			Output:    output,
		})
	}

	t.Run("list reports an empty watchlist", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newWatchlistRunner(t, tu.NewMockRoundTripper(nil, nil), output)

		if err := run(t, runner, "watchlist", "list"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "empty") {
			t.Errorf("expected empty notice, got %s", output.String())
		}
	})

	t.Run("add fetches the movie and saves it", func(t *testing.T) {
		output := &bytes.Buffer{}
		rt := tu.NewRouteRoundTripper(map[string]string{"/movie/603": detailBody})
		runner := newWatchlistRunner(t, rt, output)

		if err := run(t, runner, "watchlist", "add", "603"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Added") {
			t.Errorf("expected add confirmation, got %s", output.String())
		}
		if !runner.watchlist.Contains(603) {
			t.Error("expected movie to be saved")
		}

		output.Reset()
		if err := run(t, runner, "watchlist", "add", "603"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "already") {
			t.Errorf("expected duplicate notice, got %s", output.String())
		}
	})

	t.Run("remove deletes a saved movie", func(t *testing.T) {
		output := &bytes.Buffer{}
		rt := tu.NewRouteRoundTripper(map[string]string{"/movie/603": detailBody})
		runner := newWatchlistRunner(t, rt, output)

		if err := run(t, runner, "watchlist", "add", "603"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		output.Reset()
		if err := run(t, runner, "watchlist", "remove", "603"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if runner.watchlist.Contains(603) {
			t.Error("expected movie to be removed")
		}

		output.Reset()
		if err := run(t, runner, "watchlist", "remove", "603"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "not in the watchlist") {
			t.Errorf("expected missing notice, got %s", output.String())
		}
	})
}
