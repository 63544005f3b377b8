package store

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/soaringjerry/evoa/internal/models"
)

func newTestStore() (*LocalStore, *MemoryKV) {
	kv := NewMemoryKV()
	n := 0
	s := New(kv, Options{
		Now: func() time.Time { return time.UnixMilli(1700000000000) },
		NewID: func() string {
			n++
			return "c" + string(rune('0'+n))
		},
	})
	return s, kv
}

func sampleAnalysis() models.Analysis {
	return models.Analysis{
		PitchID:   "1",
		UserID:    "u1",
		Timestamp: 1700000000123,
		Brief:     models.Brief{Problem: "p", Solution: "s", TargetCustomer: "t", CurrentStage: "MVP", Ask: "seed"},
		ReadinessSignals: models.ReadinessSignals{
			Clarity: models.ClarityHigh, Traction: models.TractionEarly, Market: models.MarketNiche, FounderSignal: models.FounderAverage,
		},
		QuestionsToAsk:    []string{"q1", "q2", "q3"},
		RisksAndGaps:      []string{"r1"},
		ComparableContext: models.ComparableContext{SimilarStartups: "x", Differentiation: "weak"},
		Recommendation:    models.Recommendation{Verdict: models.VerdictTrack, Reasoning: "early"},
	}
}

func TestUserLifecycle(t *testing.T) {
	s, _ := newTestStore()
	u, err := s.GetUser()
	if err != nil || u != nil {
		t.Fatalf("expected no user, got %v %v", u, err)
	}
	first := models.NewUser("u1", "Ada", "ada@example.com", models.FounderProfile{StartupName: "Lumen"})
	if err := s.SetUser(first); err != nil {
		t.Fatalf("SetUser: %v", err)
	}
	second := models.NewUser("u1", "Ada", "ada@example.com", models.ViewerProfile{})
	if err := s.SetUser(second); err != nil {
		t.Fatalf("SetUser: %v", err)
	}
	got, err := s.GetUser()
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if !reflect.DeepEqual(*got, second) {
		t.Fatalf("expected wholesale replace, got %#v", got)
	}
	if err := s.ClearUser(); err != nil {
		t.Fatalf("ClearUser: %v", err)
	}
	if u, _ := s.GetUser(); u != nil {
		t.Fatalf("expected cleared user")
	}
}

func TestCatalogDefaultsToSeed(t *testing.T) {
	s, _ := newTestStore()
	list, err := s.GetCatalog()
	if err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
	if len(list) == 0 || !reflect.DeepEqual(list, SeedCatalog()) {
		t.Fatalf("expected seed catalog, got %d entries", len(list))
	}
	// mutating the returned slice must not leak into the seed
	list[0].Title = "changed"
	again, _ := s.GetCatalog()
	if again[0].Title == "changed" {
		t.Fatalf("seed catalog was mutated through a returned copy")
	}
}

func TestPersistedCatalogIsAuthoritative(t *testing.T) {
	s, _ := newTestStore()
	if err := s.SetCatalog(nil); err != nil {
		t.Fatalf("SetCatalog: %v", err)
	}
	list, err := s.GetCatalog()
	if err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty persisted catalog, got %v", list)
	}
}

func TestAddPitchAndLikeCount(t *testing.T) {
	s, _ := newTestStore()
	p := models.Pitch{ID: "upload-1", Title: "New", Stage: models.StageIdea, CloudflareID: "cf1", VideoStatus: models.VideoReady, Duration: 61.5}
	if err := s.AddPitch(p); err != nil {
		t.Fatalf("AddPitch: %v", err)
	}
	if err := s.AddPitch(p); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	list, _ := s.GetCatalog()
	if list[0].ID != "upload-1" || len(list) != len(SeedCatalog())+1 {
		t.Fatalf("expected new pitch first, got %s (%d)", list[0].ID, len(list))
	}
	if !reflect.DeepEqual(list[0], p) {
		t.Fatalf("pitch did not round trip: %#v", list[0])
	}

	up, err := s.AdjustLikeCount("upload-1", 1)
	if err != nil || up.Likes != 1 {
		t.Fatalf("AdjustLikeCount +1: %v %v", up, err)
	}
	down, err := s.AdjustLikeCount("upload-1", -5)
	if err != nil || down.Likes != 0 {
		t.Fatalf("expected clamp at zero, got %v %v", down, err)
	}
	if _, err := s.AdjustLikeCount("missing", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := s.GetPitch("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestToggleLikeTwiceRestores(t *testing.T) {
	s, _ := newTestStore()
	for _, pid := range []string{"1", "2", "weird/id_with_sep"} {
		before, _ := s.IsLiked("u1", pid)
		if err := s.ToggleLike("u1", pid); err != nil {
			t.Fatalf("ToggleLike: %v", err)
		}
		mid, _ := s.IsLiked("u1", pid)
		if mid == before {
			t.Fatalf("toggle did not flip %s", pid)
		}
		if err := s.ToggleLike("u1", pid); err != nil {
			t.Fatalf("ToggleLike: %v", err)
		}
		after, _ := s.IsLiked("u1", pid)
		if after != before {
			t.Fatalf("double toggle changed state for %s", pid)
		}
	}
	if liked, _ := s.IsLiked("nobody", "1"); liked {
		t.Fatalf("expected false for unknown user")
	}
}

// failingSetKV rejects writes to keys with the given prefix.
type failingSetKV struct {
	*MemoryKV
	prefix string
}

func (f failingSetKV) Set(key, value string) error {
	if strings.HasPrefix(key, f.prefix) {
		return errors.New("disk full")
	}
	return f.MemoryKV.Set(key, value)
}

func TestLikePitch(t *testing.T) {
	s, _ := newTestStore()
	_ = s.SetCatalog([]models.Pitch{{ID: "x", Likes: 4}})
	liked, p, err := s.LikePitch("u1", "x")
	if err != nil || !liked || p.Likes != 5 {
		t.Fatalf("first like: %v %+v %v", liked, p, err)
	}
	liked, p, err = s.LikePitch("u1", "x")
	if err != nil || liked || p.Likes != 4 {
		t.Fatalf("unlike: %v %+v %v", liked, p, err)
	}
	if _, _, err := s.LikePitch("u1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if ids, _ := s.LikedPitchIDs("u1"); len(ids) != 0 {
		t.Fatalf("unknown pitch should not be liked: %v", ids)
	}
}

func TestLikePitchRestoresCountWhenLikeSetFails(t *testing.T) {
	kv := failingSetKV{MemoryKV: NewMemoryKV(), prefix: prefixLikes}
	s := New(kv, Options{})
	_ = s.SetCatalog([]models.Pitch{{ID: "x", Likes: 4}})
	if _, _, err := s.LikePitch("u1", "x"); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected write error, got %v", err)
	}
	p, err := s.GetPitch("x")
	if err != nil || p.Likes != 4 {
		t.Fatalf("count should be restored, got %+v %v", p, err)
	}
	if liked, _ := s.IsLiked("u1", "x"); liked {
		t.Fatalf("like set should be unchanged")
	}
}

func TestLikePitchDisabledReportsLiked(t *testing.T) {
	s := New(NewMemoryKV(), Options{Disabled: true})
	seed := SeedCatalog()[0]
	liked, p, err := s.LikePitch("u1", seed.ID)
	if err != nil || !liked || p.Likes != seed.Likes+1 {
		t.Fatalf("expected liked with count %d, got %v %+v %v", seed.Likes+1, liked, p, err)
	}
}

func TestMeetings(t *testing.T) {
	s, _ := newTestStore()
	pitch := models.Pitch{ID: "x", Startup: "Lumen"}
	m, err := s.AddMeeting("u1", pitch, "2026-11-03", " 14:30 ", "  intro call ")
	if err != nil {
		t.Fatalf("AddMeeting: %v", err)
	}
	want := models.Meeting{ID: "c1", PitchID: "x", Startup: "Lumen", UserID: "u1", Date: "2026-11-03", Time: "14:30", Notes: "intro call", CreatedAt: 1700000000000}
	if m != want {
		t.Fatalf("unexpected meeting %+v", m)
	}
	if _, err := s.AddMeeting("u1", pitch, "2026-11-03", "", ""); err == nil {
		t.Fatalf("expected missing time to fail")
	}
	if _, err := s.AddMeeting("u1", pitch, "tomorrow", "10:00", ""); err == nil {
		t.Fatalf("expected bad date to fail")
	}
	list, err := s.GetMeetings("u1")
	if err != nil || len(list) != 1 || list[0] != want {
		t.Fatalf("GetMeetings: %+v %v", list, err)
	}
	if other, _ := s.GetMeetings("u2"); other == nil || len(other) != 0 {
		t.Fatalf("expected empty list for another user")
	}
}

func TestLikedPitches(t *testing.T) {
	s, _ := newTestStore()
	_ = s.ToggleLike("u1", "3")
	_ = s.ToggleLike("u1", "1")
	_ = s.ToggleLike("u1", "gone")
	got, err := s.LikedPitches("u1")
	if err != nil {
		t.Fatalf("LikedPitches: %v", err)
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("unexpected liked pitches %v", got)
	}
	ids, _ := s.LikedPitchIDs("u1")
	if !reflect.DeepEqual(ids, []string{"3", "1", "gone"}) {
		t.Fatalf("unexpected ids %v", ids)
	}
}

func TestComments(t *testing.T) {
	s, _ := newTestStore()
	if got, err := s.GetComments("v1"); err != nil || got == nil || len(got) != 0 {
		t.Fatalf("expected empty thread, got %v %v", got, err)
	}
	if _, err := s.AddComment("v1", "u1", "Alice", "Great pitch!"); err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	got, _ := s.GetComments("v1")
	if len(got) != 1 {
		t.Fatalf("expected one comment, got %d", len(got))
	}
	last := got[len(got)-1]
	if last.Text != "Great pitch!" || last.UserName != "Alice" || last.UserID != "u1" {
		t.Fatalf("unexpected comment %#v", last)
	}
	if last.Timestamp != 1700000000000 || last.ID == "" {
		t.Fatalf("expected stamped id and timestamp, got %#v", last)
	}
	_, _ = s.AddComment("v1", "u2", "Bob", "")
	got, _ = s.GetComments("v1")
	if len(got) != 2 || got[1].UserName != "Bob" {
		t.Fatalf("expected insertion order, got %#v", got)
	}
}

func TestAnalysisCache(t *testing.T) {
	s, _ := newTestStore()
	if a, err := s.GetCachedAnalysis("1", "u1"); err != nil || a != nil {
		t.Fatalf("expected empty cache, got %v %v", a, err)
	}
	rec := sampleAnalysis()
	if err := s.SetCachedAnalysis("1", "u1", rec); err != nil {
		t.Fatalf("SetCachedAnalysis: %v", err)
	}
	for i := 0; i < 3; i++ {
		got, err := s.GetCachedAnalysis("1", "u1")
		if err != nil {
			t.Fatalf("GetCachedAnalysis: %v", err)
		}
		if !reflect.DeepEqual(*got, rec) {
			t.Fatalf("cached record differs:\nwant %#v\ngot  %#v", rec, *got)
		}
	}
	// keys built from ids containing separators must not collide
	_ = s.SetCachedAnalysis("1_u", "1", rec)
	if a, _ := s.GetCachedAnalysis("1", "u_1"); a != nil {
		t.Fatalf("composite keys collided")
	}
	if err := s.ClearCachedAnalysis("1", "u1"); err != nil {
		t.Fatalf("ClearCachedAnalysis: %v", err)
	}
	if a, _ := s.GetCachedAnalysis("1", "u1"); a != nil {
		t.Fatalf("expected cleared entry")
	}
}

func TestResetAll(t *testing.T) {
	s, kv := newTestStore()
	_ = s.SetUser(models.NewUser("u1", "Ada", "a@b.c", models.ViewerProfile{}))
	_ = s.SetCatalog([]models.Pitch{{ID: "x"}})
	_ = s.ToggleLike("u1", "x")
	_, _ = s.AddComment("x", "u1", "Ada", "hi")
	_ = s.SetCachedAnalysis("x", "u1", sampleAnalysis())
	_, _ = s.AddMeeting("u1", models.Pitch{ID: "x"}, "2026-11-03", "10:00", "")
	_ = kv.Set(keyFilters, `{"stage":"MVP"}`)
	_ = kv.Set("unrelated", "1")

	if err := s.ResetAll(); err != nil {
		t.Fatalf("ResetAll: %v", err)
	}
	if u, _ := s.GetUser(); u != nil {
		t.Fatalf("user survived reset")
	}
	if c, _ := s.GetComments("x"); len(c) != 0 {
		t.Fatalf("comments survived reset")
	}
	if a, _ := s.GetCachedAnalysis("x", "u1"); a != nil {
		t.Fatalf("analysis survived reset")
	}
	if m, _ := s.GetMeetings("u1"); len(m) != 0 {
		t.Fatalf("meetings survived reset")
	}
	if list, _ := s.GetCatalog(); !reflect.DeepEqual(list, SeedCatalog()) {
		t.Fatalf("expected seed catalog after reset")
	}
	if kv.Len() != 1 {
		t.Fatalf("expected only the foreign key to remain, have %d keys", kv.Len())
	}
}

func TestDisabledStoreIsNoop(t *testing.T) {
	kv := NewMemoryKV()
	s := New(kv, Options{Disabled: true})
	if s.Enabled() {
		t.Fatalf("expected disabled store")
	}
	if err := s.SetUser(models.NewUser("u1", "Ada", "a@b.c", models.ViewerProfile{})); err != nil {
		t.Fatalf("SetUser: %v", err)
	}
	if err := s.ToggleLike("u1", "1"); err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if _, err := s.AddComment("1", "u1", "Ada", "hi"); err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if err := s.SetCachedAnalysis("1", "u1", sampleAnalysis()); err != nil {
		t.Fatalf("SetCachedAnalysis: %v", err)
	}
	if kv.Len() != 0 {
		t.Fatalf("disabled store wrote %d keys", kv.Len())
	}
	if u, _ := s.GetUser(); u != nil {
		t.Fatalf("expected nil user")
	}
	if liked, _ := s.IsLiked("u1", "1"); liked {
		t.Fatalf("expected not liked")
	}
	if list, _ := s.GetCatalog(); len(list) == 0 {
		t.Fatalf("expected seed catalog")
	}
	if c, _ := s.GetComments("1"); c == nil || len(c) != 0 {
		t.Fatalf("expected empty comments")
	}
	if err := s.ResetAll(); err != nil {
		t.Fatalf("ResetAll: %v", err)
	}

	nilBacked := New(nil, Options{})
	if nilBacked.Enabled() {
		t.Fatalf("nil backend should disable the store")
	}
}

func TestCorruptRecordSurfaces(t *testing.T) {
	s, kv := newTestStore()
	_ = kv.Set(keyUser, "{not json")
	_, err := s.GetUser()
	if !errors.Is(err, ErrCorruptRecord) || !strings.Contains(err.Error(), keyUser) {
		t.Fatalf("expected corrupt record error naming the key, got %v", err)
	}
	_ = kv.Set(likesKey("u1"), `{"a":1}`)
	if _, err := s.IsLiked("u1", "1"); !errors.Is(err, ErrCorruptRecord) {
		t.Fatalf("expected corrupt likes error, got %v", err)
	}
	if err := s.ResetAll(); err != nil {
		t.Fatalf("ResetAll: %v", err)
	}
	if _, err := s.GetUser(); err != nil {
		t.Fatalf("reset should clear the corrupt key: %v", err)
	}
}
