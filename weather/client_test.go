package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleForecast = `{
	"latitude": 44.43,
	"longitude": 26.1,
	"current_weather": {"temperature": 21.5, "windspeed": 9.7, "weathercode": 2},
	"daily": {
		"time": ["2025-04-01", "2025-04-02", "2025-04-03"],
		"weathercode": [0, 61, 95],
		"temperature_2m_max": [22.1, 17.4, 15.0],
		"temperature_2m_min": [9.3, 8.8, 7.1],
		"precipitation_sum": [0, 4.2, 12.7],
		"windspeed_10m_max": [12.0, 25.3, 30.1]
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 0)
}

func TestClient_Fetch(t *testing.T) {
	var gotQuery map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleForecast))
	})

	snap, err := c.Fetch(context.Background(), 44.43, 26.10)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if gotQuery["latitude"] != "44.4300" || gotQuery["longitude"] != "26.1000" {
		t.Errorf("coordinates sent as %q, %q", gotQuery["latitude"], gotQuery["longitude"])
	}
	if gotQuery["daily"] != "weathercode,temperature_2m_max,temperature_2m_min,precipitation_sum,windspeed_10m_max" {
		t.Errorf("daily params = %q", gotQuery["daily"])
	}
	if gotQuery["current_weather"] != "true" || gotQuery["timezone"] != "auto" {
		t.Errorf("query = %v", gotQuery)
	}

	if snap.Current.Temperature != 21.5 || snap.Current.Code != 2 {
		t.Errorf("current = %+v", snap.Current)
	}
	if len(snap.Daily) != 3 {
		t.Fatalf("expected 3 days, got %d", len(snap.Daily))
	}
	day := snap.Daily[1]
	if day.Date.String() != "2025-04-02" || day.Code != 61 || day.Precipitation != 4.2 || day.WindMax != 25.3 {
		t.Errorf("day 1 = %+v", day)
	}
}

func TestClient_FetchServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	})

	if _, err := c.Fetch(context.Background(), 44.43, 26.10); err == nil {
		t.Error("expected error for server failure")
	}
}

func TestClient_FetchMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	if _, err := c.Fetch(context.Background(), 44.43, 26.10); err == nil {
		t.Error("expected error for malformed body")
	}
}

func TestSnapshot_WindAlert(t *testing.T) {
	calm := &Snapshot{Daily: []Day{{WindMax: 12.0}, {WindMax: 40.0}}}
	if calm.WindAlert() {
		t.Error("alert should only consider the first day")
	}

	windy := &Snapshot{Daily: []Day{{WindMax: 25.3}}}
	if !windy.WindAlert() {
		t.Error("expected wind alert above threshold")
	}

	boundary := &Snapshot{Daily: []Day{{WindMax: WindAlertThreshold}}}
	if boundary.WindAlert() {
		t.Error("threshold itself should not alert")
	}

	empty := &Snapshot{}
	if empty.WindAlert() {
		t.Error("empty forecast should not alert")
	}
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{0, "Senin"},
		{2, "Partial noros"},
		{45, "Ceata"},
		{51, "Burnita"},
		{63, "Ploaie"},
		{71, "Ninsoare"},
		{80, "Averse"},
		{85, "Averse de ninsoare"},
		{95, "Furtuna"},
		{150, "Necunoscut"},
	}
	for _, tc := range cases {
		if got := Describe(tc.code); got != tc.want {
			t.Errorf("Describe(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
}
