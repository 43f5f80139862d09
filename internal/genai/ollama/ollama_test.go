package ollama_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/calahan-dev/dailyctl/internal/genai"
	"github.com/calahan-dev/dailyctl/internal/genai/ollama"
)

func testOptions() genai.Options {
	return genai.Options{
		Model:         "gemma3:1b",
		Temperature:   0.7,
		TopK:          40,
		SharedContext: "You are an encouraging assistant.",
	}
}

func TestAvailabilityReadily(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"models": []map[string]string{{"name": "gemma3:1b"}},
		})
	}))
	defer srv.Close()

	c := ollama.New(srv.URL)
	avail, err := c.Availability(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("Availability: %v", err)
	}
	if avail != genai.AvailabilityReadily {
		t.Errorf("availability = %q, want readily", avail)
	}
}

func TestAvailabilityAfterDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"models": []map[string]string{{"name": "llama3:8b"}},
		})
	}))
	defer srv.Close()

	c := ollama.New(srv.URL)
	avail, err := c.Availability(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("Availability: %v", err)
	}
	if avail != genai.AvailabilityAfterDownload {
		t.Errorf("availability = %q, want after-download", avail)
	}
}

func TestAvailabilityUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately unreachable

	c := ollama.New(srv.URL)
	avail, err := c.Availability(context.Background(), testOptions())
	if err == nil {
		t.Fatal("expected probe error for unreachable server")
	}
	if avail != genai.AvailabilityNo {
		t.Errorf("availability = %q, want no", avail)
	}
}

func TestCreatePullsMissingModelWithProgress(t *testing.T) {
	var pulled bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			json.NewEncoder(w).Encode(map[string]interface{}{"models": []map[string]string{}})
		case "/api/pull":
			pulled = true
			fmt.Fprintln(w, `{"status":"pulling manifest"}`)
			fmt.Fprintln(w, `{"status":"downloading","total":100,"completed":25}`)
			fmt.Fprintln(w, `{"status":"downloading","total":100,"completed":100}`)
			fmt.Fprintln(w, `{"status":"success"}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := ollama.New(srv.URL)
	var pcts []float64
	sess, err := c.Create(context.Background(), testOptions(), func(pct float64) {
		pcts = append(pcts, pct)
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sess == nil {
		t.Fatal("expected a session")
	}
	if !pulled {
		t.Error("expected a pull for the missing model")
	}
	if len(pcts) == 0 || pcts[len(pcts)-1] != 100 {
		t.Errorf("progress = %v, want final 100", pcts)
	}
}

func TestCreateSkipsPullWhenReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"models": []map[string]string{{"name": "gemma3:1b"}},
			})
		case "/api/pull":
			t.Error("pull must not be issued when the model is ready")
		}
	}))
	defer srv.Close()

	c := ollama.New(srv.URL)
	if _, err := c.Create(context.Background(), testOptions(), nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestSummarize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"models": []map[string]string{{"name": "gemma3:1b"}},
			})
		case "/api/generate":
			var req map[string]interface{}
			json.NewDecoder(r.Body).Decode(&req)
			if req["model"] != "gemma3:1b" {
				t.Errorf("model = %v", req["model"])
			}
			if req["stream"] != false {
				t.Error("expected stream=false")
			}
			json.NewEncoder(w).Encode(map[string]string{"response": " You did great today! \n"})
		}
	}))
	defer srv.Close()

	c := ollama.New(srv.URL)
	sess, err := c.Create(context.Background(), testOptions(), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := sess.Summarize(context.Background(), "affirm me", "2 tasks done")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != "You did great today!" {
		t.Errorf("Summarize = %q", got)
	}
}

func TestSummarizeQuotaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"models": []map[string]string{{"name": "gemma3:1b"}},
			})
		case "/api/generate":
			http.Error(w, "too many requests", http.StatusTooManyRequests)
		}
	}))
	defer srv.Close()

	c := ollama.New(srv.URL)
	sess, err := c.Create(context.Background(), testOptions(), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := sess.Summarize(context.Background(), "affirm me", ""); !errors.Is(err, genai.ErrQuota) {
		t.Errorf("error = %v, want ErrQuota", err)
	}
}
