package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestUserRoundTrip(t *testing.T) {
	users := []User{
		NewUser("u1", "Ada", "ada@example.com", FounderProfile{StartupName: "Lumen", Stage: "MVP", Industry: "Fintech"}),
		NewUser("u2", "Ben", "ben@example.com", InvestorProfile{InvestorType: "Angel", TicketSize: "$25k-$100k"}),
		NewUser("u3", "Cy", "cy@example.com", IncubatorProfile{InstitutionName: "Forge Labs"}),
		NewUser("u4", "Di", "di@example.com", ViewerProfile{InterestType: "learning"}),
		{ID: "u5", Role: RoleViewer, Name: "Ed"},
	}
	for _, u := range users {
		b, err := json.Marshal(u)
		if err != nil {
			t.Fatalf("marshal %s: %v", u.ID, err)
		}
		var got User
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", u.ID, err)
		}
		if !reflect.DeepEqual(got, u) {
			t.Fatalf("round trip mismatch:\nwant %#v\ngot  %#v", u, got)
		}
	}
}

func TestUserLegacyStartupRole(t *testing.T) {
	raw := `{"id":"x","role":"startup","name":"Ada","email":"a@b.c","meta":{"startupName":"Lumen","website":"lumen.io"}}`
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if u.Role != RoleFounder {
		t.Fatalf("want founder, got %s", u.Role)
	}
	fp, ok := u.Profile.(FounderProfile)
	if !ok || fp.StartupName != "Lumen" || fp.Website != "lumen.io" {
		t.Fatalf("unexpected profile %#v", u.Profile)
	}
}

func TestUserMarshalRejectsMismatchedProfile(t *testing.T) {
	u := User{ID: "u", Role: RoleViewer, Profile: InvestorProfile{}}
	if _, err := json.Marshal(u); err == nil {
		t.Fatalf("expected mismatch error")
	}
}

func TestProfileFromFields(t *testing.T) {
	p, err := ProfileFromFields(RoleInvestor, map[string]string{"ticketSize": "$50k"})
	if err != nil {
		t.Fatalf("ProfileFromFields: %v", err)
	}
	if p.(InvestorProfile).TicketSize != "$50k" {
		t.Fatalf("unexpected profile %#v", p)
	}
	if _, err := ProfileFromFields(RoleViewer, map[string]string{"ticketSize": "$50k"}); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestParseStage(t *testing.T) {
	for in, want := range map[string]Stage{"idea": StageIdea, "EarlyRevenue": StageEarlyRevenue, " early revenue ": StageEarlyRevenue, "SCALING": StageScaling} {
		got, err := ParseStage(in)
		if err != nil || got != want {
			t.Fatalf("ParseStage(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseStage("Series A"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPlaybackURL(t *testing.T) {
	p := Pitch{Video: "/videos/pitch1.mp4"}
	if p.PlaybackURL() != "/videos/pitch1.mp4" {
		t.Fatalf("direct url expected, got %s", p.PlaybackURL())
	}
	p.CloudflareID = "abc"
	if p.PlaybackURL() != "https://videodelivery.net/abc/manifest/video.m3u8" {
		t.Fatalf("hosted url expected, got %s", p.PlaybackURL())
	}
}

func TestAnalysisNormalize(t *testing.T) {
	a := Analysis{
		ReadinessSignals: ReadinessSignals{Clarity: "high", Traction: " early", Market: "NICHE", FounderSignal: "needs  depth"},
		Recommendation:   Recommendation{Verdict: "track for later"},
	}
	if err := a.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := ReadinessSignals{Clarity: ClarityHigh, Traction: TractionEarly, Market: MarketNiche, FounderSignal: FounderNeedsDepth}
	if a.ReadinessSignals != want || a.Recommendation.Verdict != VerdictTrack {
		t.Fatalf("unexpected normalized values %#v %#v", a.ReadinessSignals, a.Recommendation)
	}
	if a.QuestionsToAsk == nil || a.RisksAndGaps == nil {
		t.Fatalf("expected empty lists, not nil")
	}

	bad := a
	bad.Recommendation.Verdict = "Invest now"
	err := bad.Normalize()
	if err == nil || !strings.Contains(err.Error(), "recommendation.verdict") {
		t.Fatalf("expected verdict error, got %v", err)
	}
}

func TestSignalTone(t *testing.T) {
	if SignalTone("High") != TonePositive || SignalTone("Track for later") != ToneNeutral || SignalTone("Needs Depth") != ToneNegative {
		t.Fatalf("unexpected tones")
	}
	if SignalTone("Stellar") != ToneUnknown {
		t.Fatalf("expected unknown fallback")
	}
}

func TestParseMeetingSlot(t *testing.T) {
	got, err := ParseMeetingSlot(" 2026-11-03 ", "14:30")
	if err != nil {
		t.Fatalf("ParseMeetingSlot: %v", err)
	}
	if got.Year() != 2026 || got.Month() != 11 || got.Day() != 3 || got.Hour() != 14 || got.Minute() != 30 {
		t.Fatalf("unexpected slot %v", got)
	}
	for _, tc := range [][2]string{{"", "14:30"}, {"2026-11-03", ""}, {"03/11/2026", "14:30"}, {"2026-11-03", "2pm"}, {"2026-02-30", "10:00"}} {
		if _, err := ParseMeetingSlot(tc[0], tc[1]); err == nil {
			t.Fatalf("expected error for %q %q", tc[0], tc[1])
		}
	}
}

func TestCanReviewPitches(t *testing.T) {
	for role, want := range map[Role]bool{RoleInvestor: true, RoleIncubator: true, RoleFounder: false, RoleViewer: false} {
		if got := CanReviewPitches(role); got != want {
			t.Fatalf("CanReviewPitches(%s) = %v", role, got)
		}
	}
}
