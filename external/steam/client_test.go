package steam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/faceit-scope/internal/platform/logging"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "steam-key",
		Timeout: 2 * time.Second,
		Logger:  logging.NewNop(),
	})
}

func TestResolveVanityURL(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ISteamUser/ResolveVanityURL/v0001/" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "steam-key" {
			t.Fatalf("missing api key")
		}
		switch r.URL.Query().Get("vanityurl") {
		case "ropz":
			_, _ = w.Write([]byte(`{"response": {"success": 1, "steamid": "76561197991272318"}}`))
		default:
			_, _ = w.Write([]byte(`{"response": {"success": 42}}`))
		}
	}))

	id, err := client.ResolveVanityURL(context.Background(), "ropz")
	if err != nil {
		t.Fatalf("ResolveVanityURL: %v", err)
	}
	if id != "76561197991272318" {
		t.Fatalf("steam id = %q", id)
	}

	id, err = client.ResolveVanityURL(context.Background(), "no-such-vanity")
	if err != nil {
		t.Fatalf("ResolveVanityURL miss: %v", err)
	}
	if id != "" {
		t.Fatalf("steam id = %q, want empty on miss", id)
	}
}

func TestGetPlayerSummary(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response": {"players": [{
			"steamid": "76561197960287930",
			"personaname": "examplePlayer",
			"profileurl": "https://steamcommunity.com/id/example/",
			"avatarfull": "https://cdn.example/avatar.jpg",
			"loccountrycode": "DE"
		}]}}`))
	}))

	profile, err := client.GetPlayerSummary(context.Background(), "76561197960287930")
	if err != nil {
		t.Fatalf("GetPlayerSummary: %v", err)
	}
	if profile == nil {
		t.Fatalf("profile is nil")
	}
	if profile.PersonaName != "examplePlayer" || profile.CountryCode != "DE" {
		t.Fatalf("profile = %+v", profile)
	}
}

func TestUpstreamFailureResolvesToAbsent(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	profile, err := client.GetPlayerSummary(context.Background(), "76561197960287930")
	if err != nil {
		t.Fatalf("GetPlayerSummary: %v", err)
	}
	if profile != nil {
		t.Fatalf("profile = %+v, want nil", profile)
	}
}

func TestMissingKeySkipsCalls(t *testing.T) {
	client := NewClient(ClientConfig{APIKey: "", Logger: logging.NewNop()})

	id, err := client.ResolveVanityURL(context.Background(), "ropz")
	if err != nil || id != "" {
		t.Fatalf("ResolveVanityURL = %q, %v", id, err)
	}
	profile, err := client.GetPlayerSummary(context.Background(), "76561197960287930")
	if err != nil || profile != nil {
		t.Fatalf("GetPlayerSummary = %+v, %v", profile, err)
	}
}
