package widgets

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWeatherClient_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("formats the upstream report", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("current_weather") != "true" {
				t.Errorf("expected current_weather=true, got %q", r.URL.RawQuery)
			}
			w.Write([]byte(`{"current_weather":{"temperature":21.5,"windspeed":12,"weathercode":2}}`))
		}))
		t.Cleanup(server.Close)

		client := NewWeatherClient(server.Client(), server.URL, 40.71, -74.00, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
		report := client.Fetch(context.Background())
		if report.Temperature != "21.5°C" {
			t.Fatalf("unexpected temperature %q", report.Temperature)
		}
		if report.Condition != "Clear Sky" {
			t.Fatalf("unexpected condition %q", report.Condition)
		}
		if report.WindSpeed != "12" {
			t.Fatalf("unexpected wind speed %q", report.WindSpeed)
		}
	})

	t.Run("serves the offline report when the upstream fails", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(server.Close)

		client := NewWeatherClient(server.Client(), server.URL, 40.71, -74.00, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
		if report := client.Fetch(context.Background()); report != offlineReport {
			t.Fatalf("expected the offline report, got %#v", report)
		}
	})
}

func TestConditionFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code int
		want string
	}{
		{code: 0, want: "Clear Sky"},
		{code: 3, want: "Clear Sky"},
		{code: 4, want: "Cloudy"},
		{code: 45, want: "Cloudy"},
		{code: 51, want: "Rainy"},
		{code: 65, want: "Rainy"},
		{code: 71, want: "Snowy"},
		{code: 99, want: "Snowy"},
	}

	for _, tc := range cases {
		if got := conditionFor(tc.code); got != tc.want {
			t.Fatalf("code %d: expected %s, got %s", tc.code, tc.want, got)
		}
	}
}
