package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestHTTPClient() *HTTPClient {
	return NewHTTPClient(5 * time.Second)
}

func TestQuoteClientRandom(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/random" {
			t.Errorf("request path = %q, want /random", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"content":"Stay hungry.","author":"Steve Jobs"}`))
	}))
	defer server.Close()

	client := NewQuoteClient(newTestHTTPClient(), server.URL)
	content, author, err := client.Random(context.Background())
	if err != nil {
		t.Fatalf("Random() error = %v", err)
	}
	if content != "Stay hungry." {
		t.Errorf("Random() content = %q, want %q", content, "Stay hungry.")
	}
	if author != "Steve Jobs" {
		t.Errorf("Random() author = %q, want %q", author, "Steve Jobs")
	}
}

func TestQuoteClientRandomEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":"","author":"nobody"}`))
	}))
	defer server.Close()

	client := NewQuoteClient(newTestHTTPClient(), server.URL)
	if _, _, err := client.Random(context.Background()); err == nil {
		t.Fatal("Random() expected error for empty content")
	}
}

func TestPrayerClientTimingsByCity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("city") != "Cairo" {
			t.Errorf("city = %q, want Cairo", q.Get("city"))
		}
		if q.Get("country") != "Egypt" {
			t.Errorf("country = %q, want Egypt", q.Get("country"))
		}
		if q.Get("method") != "5" {
			t.Errorf("method = %q, want 5", q.Get("method"))
		}
		_, _ = w.Write([]byte(`{"code":200,"data":{"timings":{
			"Fajr":"04:30","Sunrise":"06:01","Dhuhr":"12:01",
			"Asr":"15:32","Maghrib":"18:10","Isha":"19:40"}}}`))
	}))
	defer server.Close()

	client := NewPrayerClient(newTestHTTPClient(), server.URL)
	timings, err := client.TimingsByCity(context.Background(), "Cairo")
	if err != nil {
		t.Fatalf("TimingsByCity() error = %v", err)
	}
	if timings.Fajr != "04:30" {
		t.Errorf("Fajr = %q, want 04:30", timings.Fajr)
	}
	if timings.Isha != "19:40" {
		t.Errorf("Isha = %q, want 19:40", timings.Isha)
	}
}

func TestPrayerClientTimingsByCityBadCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":400,"data":{"timings":{}}}`))
	}))
	defer server.Close()

	client := NewPrayerClient(newTestHTTPClient(), server.URL)
	if _, err := client.TimingsByCity(context.Background(), "Atlantis"); err == nil {
		t.Fatal("TimingsByCity() expected error for non-200 payload code")
	}
}

func TestImageClientRandomImage(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/search/photos", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("client_id") != "access-key" {
			t.Errorf("client_id = %q, want access-key", r.URL.Query().Get("client_id"))
		}
		if r.URL.Query().Get("query") != "cats" {
			t.Errorf("query = %q, want cats", r.URL.Query().Get("query"))
		}
		_, _ = w.Write([]byte(`{"results":[
			{"urls":{"regular":"` + server.URL + `/photo/1"}},
			{"urls":{"regular":"` + server.URL + `/photo/2"}}]}`))
	})
	mux.HandleFunc("/photo/2", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("jpeg-bytes"))
	})

	client := NewImageClient(newTestHTTPClient(), "access-key")
	client.endpoint = server.URL
	client.pick = func(n int) int { return 1 }

	image, err := client.RandomImage(context.Background(), "cats")
	if err != nil {
		t.Fatalf("RandomImage() error = %v", err)
	}
	if string(image) != "jpeg-bytes" {
		t.Errorf("RandomImage() = %q, want jpeg-bytes", image)
	}
}

func TestImageClientRandomImageNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	client := NewImageClient(newTestHTTPClient(), "access-key")
	client.endpoint = server.URL
	if _, err := client.RandomImage(context.Background(), "nothing"); err == nil {
		t.Fatal("RandomImage() expected error for empty results")
	}
}

func TestImageClientRandomImageNoKey(t *testing.T) {
	client := NewImageClient(newTestHTTPClient(), "")
	if _, err := client.RandomImage(context.Background(), "cats"); err == nil {
		t.Fatal("RandomImage() expected error without an access key")
	}
}

func TestKnowledgeClientLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("languages") != "ar" {
			t.Errorf("languages = %q, want ar", q.Get("languages"))
		}
		if q.Get("limit") != "1" {
			t.Errorf("limit = %q, want 1", q.Get("limit"))
		}
		_, _ = w.Write([]byte(`{"itemListElement":[{"result":{
			"name":"القاهرة",
			"description":"عاصمة مصر",
			"detailedDescription":{"articleBody":"أكبر مدن مصر.","url":"https://ar.wikipedia.org/wiki/القاهرة"}}}]}`))
	}))
	defer server.Close()

	client := NewKnowledgeClient(newTestHTTPClient(), "kg-key")
	client.endpoint = server.URL

	answer, ok, err := client.Lookup(context.Background(), "القاهرة")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if !ok {
		t.Fatal("Lookup() ok = false, want true")
	}
	for _, want := range []string{"📚 القاهرة:", "عاصمة مصر", "أكبر مدن مصر.", "🔗 للمزيد:"} {
		if !strings.Contains(answer, want) {
			t.Errorf("Lookup() answer %q missing %q", answer, want)
		}
	}
}

func TestKnowledgeClientLookupNoEntity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"itemListElement":[]}`))
	}))
	defer server.Close()

	client := NewKnowledgeClient(newTestHTTPClient(), "kg-key")
	client.endpoint = server.URL

	_, ok, err := client.Lookup(context.Background(), "شيء مجهول تماماً")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if ok {
		t.Error("Lookup() ok = true, want false for empty result list")
	}
}

func TestKnowledgeClientLookupNoKey(t *testing.T) {
	client := NewKnowledgeClient(newTestHTTPClient(), "")
	_, ok, err := client.Lookup(context.Background(), "القاهرة")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if ok {
		t.Error("Lookup() ok = true, want false without an API key")
	}
}

func TestTTSClientSpeak(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("tl") != "ar" {
			t.Errorf("tl = %q, want ar", q.Get("tl"))
		}
		if q.Get("q") != "مرحبا" {
			t.Errorf("q = %q, want مرحبا", q.Get("q"))
		}
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	client := NewTTSClient(newTestHTTPClient())
	client.endpoint = server.URL

	audio, err := client.Speak(context.Background(), "مرحبا")
	if err != nil {
		t.Fatalf("Speak() error = %v", err)
	}
	if string(audio) != "mp3-bytes" {
		t.Errorf("Speak() = %q, want mp3-bytes", audio)
	}
}

func TestTTSClientSpeakEmpty(t *testing.T) {
	client := NewTTSClient(newTestHTTPClient())
	if _, err := client.Speak(context.Background(), "   "); err == nil {
		t.Fatal("Speak() expected error for blank text")
	}
}
