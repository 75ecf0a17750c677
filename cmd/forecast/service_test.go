package forecast

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
)

func TestNewWillyWeatherDefaults(t *testing.T) {
	c := NewWillyWeather(WillyWeatherOptions{APIKey: "k", LocationID: 1})
	if c.baseURL != "https://api.willyweather.com.au" {
		t.Errorf("baseURL = %s", c.baseURL)
	}
	if c.httpClient.Timeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", c.httpClient.Timeout)
	}
}

func TestWillyWeatherFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/test-key/locations/6833/weather.json" {
			t.Errorf("path = %s", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("forecasts") != "tides,swell,wind" {
			t.Errorf("forecasts param = %s", query.Get("forecasts"))
		}
		if query.Get("days") != "1" {
			t.Errorf("days param = %s", query.Get("days"))
		}
		if query.Get("startDate") != "2022-12-25" {
			t.Errorf("startDate param = %s", query.Get("startDate"))
		}
		if r.Header.Get("User-Agent") != "Surf Grid" {
			t.Errorf("User-Agent = %s", r.Header.Get("User-Agent"))
		}
		if r.Header.Get("From") != "surf@example.com" {
			t.Errorf("From = %s", r.Header.Get("From"))
		}

		w.Header().Set("Content-Type", "application/json")
		data, _ := os.ReadFile("testdata/2022-12-25.json")
		w.Write(data)
	}))
	defer server.Close()

	client := NewWillyWeather(WillyWeatherOptions{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		LocationID: 6833,
		UserAgent:  "Surf Grid",
		From:       "surf@example.com",
	})

	p, err := client.Fetch(context.Background(), christmas)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if p.Location.Name != "Coolum Beach" {
		t.Errorf("location = %+v", p.Location)
	}
	if got := len(p.Forecasts.Swell.Days[0].Entries); got != 24 {
		t.Errorf("swell entries = %d, want 24", got)
	}
	if got := len(p.Forecasts.Tides.Days[0].Entries); got != 4 {
		t.Errorf("tide entries = %d, want 4", got)
	}
}

func TestWillyWeatherErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"bad key", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}},
		{"invalid json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("{forecasts"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewWillyWeather(WillyWeatherOptions{BaseURL: server.URL, APIKey: "k", LocationID: 1})
			if _, err := client.Fetch(context.Background(), christmas); err == nil {
				t.Error("Fetch() succeeded")
			}
		})
	}
}

func TestWillyWeatherHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewWillyWeather(WillyWeatherOptions{BaseURL: server.URL, APIKey: "k", LocationID: 1})
	if _, err := client.Fetch(ctx, christmas); err == nil {
		t.Error("Fetch() succeeded after the context expired")
	}
}

func TestFixtureDirectory(t *testing.T) {
	f := NewFixture("testdata")
	p, err := f.Fetch(context.Background(), christmas)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if p.Location.ID != 6833 {
		t.Errorf("location id = %d", p.Location.ID)
	}

	if _, err := f.Fetch(context.Background(), christmas.AddDate(0, 0, 1)); err == nil {
		t.Error("Fetch() of a missing day succeeded")
	}
}
