package search

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name       string
		raw        string
		wantKind   Kind
		wantKey    string
		wantVanity string
	}{
		{
			name:     "bare nickname",
			raw:      "  donk666 ",
			wantKind: KindNickname,
			wantKey:  "donk666",
		},
		{
			name:     "steam id64",
			raw:      "76561197960287930",
			wantKind: KindSteamID,
			wantKey:  "76561197960287930",
		},
		{
			name:     "faceit profile url with locale and query string",
			raw:      "https://www.faceit.com/en/players/examplePlayer?ref=1",
			wantKind: KindNickname,
			wantKey:  "examplePlayer",
		},
		{
			name:     "faceit url without locale",
			raw:      "faceit.com/players/NiKo",
			wantKind: KindNickname,
			wantKey:  "NiKo",
		},
		{
			name:     "faceit url bare handle",
			raw:      "https://faceit.com/s1mple",
			wantKind: KindNickname,
			wantKey:  "s1mple",
		},
		{
			name:     "steam numeric profile url",
			raw:      "https://steamcommunity.com/profiles/76561198034202275",
			wantKind: KindSteamID,
			wantKey:  "76561198034202275",
		},
		{
			name:       "steam vanity url",
			raw:        "https://steamcommunity.com/id/ropz/",
			wantKind:   KindNickname,
			wantKey:    "ropz",
			wantVanity: "ropz",
		},
		{
			name:     "sixteen digits is a nickname",
			raw:      "7656119796028793",
			wantKind: KindNickname,
			wantKey:  "7656119796028793",
		},
		{
			name:     "faceit url with only reserved segments degrades to raw",
			raw:      "https://www.faceit.com/en/stats",
			wantKind: KindNickname,
			wantKey:  "https://www.faceit.com/en/stats",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.raw)
			if got.Kind != tc.wantKind {
				t.Fatalf("kind = %q, want %q", got.Kind, tc.wantKind)
			}
			if got.Key != tc.wantKey {
				t.Fatalf("key = %q, want %q", got.Key, tc.wantKey)
			}
			if got.SteamVanity != tc.wantVanity {
				t.Fatalf("vanity = %q, want %q", got.SteamVanity, tc.wantVanity)
			}
			if got.Raw != tc.raw {
				t.Fatalf("raw not preserved: %q", got.Raw)
			}
		})
	}
}

func TestSanitizeKey(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{raw: "donk666", want: "donk666"},
		{raw: "-Niko-", want: "Niko"},
		{raw: "Zy​wOo", want: "ZywOo"},
		{raw: "***", want: ""},
	}

	for _, tc := range cases {
		if got := SanitizeKey(tc.raw); got != tc.want {
			t.Fatalf("SanitizeKey(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
