// Package store is the local profile and catalog store of a client: the user
// profile, the pitch catalog, like sets, comment threads, meeting requests and
// the AI analysis cache, persisted as JSON values in an injected KV backend.
//
// The store assumes a single writer. It does no locking across calls, so two
// processes sharing one backend can race on the same key.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/soaringjerry/evoa/internal/models"
)

const (
	keyUser     = "evoa_user"
	keyCatalog  = "evoa_videos"
	keyUploads  = "evoa_uploads"
	keyFilters  = "evoa_filters"
	keyStats    = "evoa_analytics"
	keyLikes    = "evoa_likes"
	keyComments = "evoa_comments"
	keyAnalyses = "evoa_ai_analyses"
	keyMeetings = "evoa_meetings"

	prefixLikes    = keyLikes + "/"
	prefixComments = keyComments + "/"
	prefixAnalyses = keyAnalyses + "/"
	prefixMeetings = keyMeetings + "/"
)

var (
	// ErrCorruptRecord wraps every failure to decode a persisted value. The
	// store does not repair such keys; ResetAll or the matching clear call does.
	ErrCorruptRecord = errors.New("corrupt record")
	ErrNotFound      = errors.New("not found")
	ErrDuplicate     = errors.New("duplicate id")
)

type Options struct {
	// Disabled turns every operation into a no-op that returns the default
	// value without touching the backend.
	Disabled bool
	Now      func() time.Time
	NewID    func() string
}

type LocalStore struct {
	kv       KV
	disabled bool
	now      func() time.Time
	newID    func() string
}

// New wraps kv. A nil kv behaves like Options.Disabled.
func New(kv KV, opts Options) *LocalStore {
	s := &LocalStore{
		kv:       kv,
		disabled: opts.Disabled || kv == nil,
		now:      opts.Now,
		newID:    opts.NewID,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// Enabled reports whether reads and writes reach the backend.
func (s *LocalStore) Enabled() bool { return !s.disabled }

// user

func (s *LocalStore) GetUser() (*models.User, error) {
	if s.disabled {
		return nil, nil
	}
	var u models.User
	ok, err := s.readJSON(keyUser, &u)
	if err != nil || !ok {
		return nil, err
	}
	return &u, nil
}

// SetUser replaces the stored profile wholesale.
func (s *LocalStore) SetUser(u models.User) error {
	if s.disabled {
		return nil
	}
	return s.writeJSON(keyUser, u)
}

func (s *LocalStore) ClearUser() error {
	if s.disabled {
		return nil
	}
	return s.delete(keyUser)
}

// catalog

// GetCatalog returns the persisted catalog, or a copy of the seed catalog when
// none has been written yet.
func (s *LocalStore) GetCatalog() ([]models.Pitch, error) {
	if s.disabled {
		return SeedCatalog(), nil
	}
	var list []models.Pitch
	ok, err := s.readJSON(keyCatalog, &list)
	if err != nil {
		return nil, err
	}
	if !ok {
		return SeedCatalog(), nil
	}
	if list == nil {
		list = []models.Pitch{}
	}
	return list, nil
}

// SetCatalog persists list as the authoritative catalog.
func (s *LocalStore) SetCatalog(list []models.Pitch) error {
	if s.disabled {
		return nil
	}
	cp := append(make([]models.Pitch, 0, len(list)), list...)
	return s.writeJSON(keyCatalog, cp)
}

func (s *LocalStore) GetPitch(id string) (*models.Pitch, error) {
	list, err := s.GetCatalog()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			p := list[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("pitch %s: %w", id, ErrNotFound)
}

// AddPitch puts p at the head of the catalog, the way fresh uploads appear
// first in the feed.
func (s *LocalStore) AddPitch(p models.Pitch) error {
	if s.disabled {
		return nil
	}
	if p.ID == "" {
		return errors.New("pitch id required")
	}
	list, err := s.GetCatalog()
	if err != nil {
		return err
	}
	for _, existing := range list {
		if existing.ID == p.ID {
			return fmt.Errorf("pitch %s: %w", p.ID, ErrDuplicate)
		}
	}
	next := make([]models.Pitch, 0, len(list)+1)
	next = append(next, p)
	next = append(next, list...)
	return s.SetCatalog(next)
}

// AdjustLikeCount adds delta to a pitch's like count, never going below zero,
// and returns the updated pitch.
func (s *LocalStore) AdjustLikeCount(pitchID string, delta int) (*models.Pitch, error) {
	list, err := s.GetCatalog()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID != pitchID {
			continue
		}
		list[i].Likes += delta
		if list[i].Likes < 0 {
			list[i].Likes = 0
		}
		p := list[i]
		if err := s.SetCatalog(list); err != nil {
			return nil, err
		}
		return &p, nil
	}
	return nil, fmt.Errorf("pitch %s: %w", pitchID, ErrNotFound)
}

// likes

// ToggleLike flips pitchID in userID's like set, creating the set on first use.
func (s *LocalStore) ToggleLike(userID, pitchID string) error {
	if s.disabled {
		return nil
	}
	ids, err := s.LikedPitchIDs(userID)
	if err != nil {
		return err
	}
	next := make([]string, 0, len(ids)+1)
	found := false
	for _, id := range ids {
		if id == pitchID {
			found = true
			continue
		}
		next = append(next, id)
	}
	if !found {
		next = append(next, pitchID)
	}
	return s.writeJSON(likesKey(userID), next)
}

func (s *LocalStore) IsLiked(userID, pitchID string) (bool, error) {
	if s.disabled {
		return false, nil
	}
	ids, err := s.LikedPitchIDs(userID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == pitchID {
			return true, nil
		}
	}
	return false, nil
}

// LikePitch flips userID's like on pitchID and moves the pitch's count with
// it. The count is written first; if the like set then fails to save, the
// catalog is put back. Returns the new liked state and the updated pitch.
func (s *LocalStore) LikePitch(userID, pitchID string) (bool, *models.Pitch, error) {
	liked, err := s.IsLiked(userID, pitchID)
	if err != nil {
		return false, nil, err
	}
	before, err := s.GetCatalog()
	if err != nil {
		return false, nil, err
	}
	delta := 1
	if liked {
		delta = -1
	}
	p, err := s.AdjustLikeCount(pitchID, delta)
	if err != nil {
		return false, nil, err
	}
	if err := s.ToggleLike(userID, pitchID); err != nil {
		if rerr := s.SetCatalog(before); rerr != nil {
			return false, nil, fmt.Errorf("%w (restore like count: %v)", err, rerr)
		}
		return false, nil, err
	}
	return !liked, p, nil
}

// LikedPitchIDs returns userID's like set in the order likes were added.
func (s *LocalStore) LikedPitchIDs(userID string) ([]string, error) {
	if s.disabled {
		return []string{}, nil
	}
	ids := []string{}
	if _, err := s.readJSON(likesKey(userID), &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// LikedPitches returns the catalog entries userID liked, in catalog order.
// Likes for pitches no longer in the catalog are skipped.
func (s *LocalStore) LikedPitches(userID string) ([]models.Pitch, error) {
	ids, err := s.LikedPitchIDs(userID)
	if err != nil {
		return nil, err
	}
	liked := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		liked[id] = struct{}{}
	}
	list, err := s.GetCatalog()
	if err != nil {
		return nil, err
	}
	out := []models.Pitch{}
	for _, p := range list {
		if _, ok := liked[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// comments

// AddComment appends a comment to videoID's thread. Text is stored as given.
func (s *LocalStore) AddComment(videoID, userID, userName, text string) (models.Comment, error) {
	c := models.Comment{
		ID:        s.newID(),
		UserID:    userID,
		UserName:  userName,
		Text:      text,
		Timestamp: s.now().UnixMilli(),
	}
	if s.disabled {
		return c, nil
	}
	thread, err := s.GetComments(videoID)
	if err != nil {
		return models.Comment{}, err
	}
	thread = append(thread, c)
	if err := s.writeJSON(commentsKey(videoID), thread); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

// GetComments returns videoID's thread oldest first; never nil.
func (s *LocalStore) GetComments(videoID string) ([]models.Comment, error) {
	if s.disabled {
		return []models.Comment{}, nil
	}
	thread := []models.Comment{}
	if _, err := s.readJSON(commentsKey(videoID), &thread); err != nil {
		return nil, err
	}
	if thread == nil {
		thread = []models.Comment{}
	}
	return thread, nil
}

// meetings

// AddMeeting records a meeting request from userID for pitch. date and clock
// must pass models.ParseMeetingSlot; notes are optional.
func (s *LocalStore) AddMeeting(userID string, pitch models.Pitch, date, clock, notes string) (models.Meeting, error) {
	if _, err := models.ParseMeetingSlot(date, clock); err != nil {
		return models.Meeting{}, err
	}
	m := models.Meeting{
		ID:        s.newID(),
		PitchID:   pitch.ID,
		Startup:   pitch.Startup,
		UserID:    userID,
		Date:      strings.TrimSpace(date),
		Time:      strings.TrimSpace(clock),
		Notes:     strings.TrimSpace(notes),
		CreatedAt: s.now().UnixMilli(),
	}
	if s.disabled {
		return m, nil
	}
	list, err := s.GetMeetings(userID)
	if err != nil {
		return models.Meeting{}, err
	}
	list = append(list, m)
	if err := s.writeJSON(meetingsKey(userID), list); err != nil {
		return models.Meeting{}, err
	}
	return m, nil
}

// GetMeetings returns userID's meeting requests oldest first; never nil.
func (s *LocalStore) GetMeetings(userID string) ([]models.Meeting, error) {
	if s.disabled {
		return []models.Meeting{}, nil
	}
	list := []models.Meeting{}
	if _, err := s.readJSON(meetingsKey(userID), &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Meeting{}
	}
	return list, nil
}

// analysis cache

func (s *LocalStore) GetCachedAnalysis(pitchID, userID string) (*models.Analysis, error) {
	if s.disabled {
		return nil, nil
	}
	var a models.Analysis
	ok, err := s.readJSON(analysisKey(pitchID, userID), &a)
	if err != nil || !ok {
		return nil, err
	}
	return &a, nil
}

// SetCachedAnalysis overwrites the entry for (pitchID, userID). Concurrent
// fetches for the same pair resolve last-write-wins.
func (s *LocalStore) SetCachedAnalysis(pitchID, userID string, a models.Analysis) error {
	if s.disabled {
		return nil
	}
	return s.writeJSON(analysisKey(pitchID, userID), a)
}

func (s *LocalStore) ClearCachedAnalysis(pitchID, userID string) error {
	if s.disabled {
		return nil
	}
	return s.delete(analysisKey(pitchID, userID))
}

// reset

// ResetAll removes every key the store owns.
func (s *LocalStore) ResetAll() error {
	if s.disabled {
		return nil
	}
	for _, key := range []string{keyUser, keyCatalog, keyUploads, keyFilters, keyStats, keyLikes, keyComments, keyAnalyses, keyMeetings} {
		if err := s.delete(key); err != nil {
			return err
		}
	}
	for _, prefix := range []string{prefixLikes, prefixComments, prefixAnalyses, prefixMeetings} {
		entries, err := s.kv.List(prefix)
		if err != nil {
			return fmt.Errorf("list %s: %w", prefix, err)
		}
		for _, e := range entries {
			if err := s.delete(e.Key); err != nil {
				return err
			}
		}
	}
	return nil
}

// helpers

func likesKey(userID string) string { return prefixLikes + url.PathEscape(userID) }

func commentsKey(videoID string) string { return prefixComments + url.PathEscape(videoID) }

func meetingsKey(userID string) string { return prefixMeetings + url.PathEscape(userID) }

func analysisKey(pitchID, userID string) string {
	return prefixAnalyses + url.PathEscape(pitchID) + "/" + url.PathEscape(userID)
}

func (s *LocalStore) readJSON(key string, out any) (bool, error) {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorruptRecord, key, err)
	}
	return true, nil
}

func (s *LocalStore) writeJSON(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(key, string(b)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) delete(key string) error {
	if err := s.kv.Delete(key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
