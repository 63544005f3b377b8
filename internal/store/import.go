package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/soaringjerry/evoa/internal/models"
)

// ImportReport summarizes what ImportBrowserExport copied.
type ImportReport struct {
	User           bool
	Pitches        int
	LikeSets       int
	CommentThreads int
	Analyses       int
	Skipped        []string
}

// ImportBrowserExport loads a dump of browser localStorage (a JSON object of
// key to stored value) into the store. In that layout likes, comments and
// analyses each live under one key as a map; here they are split into one
// key per user, video and (pitch, user) pair. Values may be JSON strings, as
// localStorage holds them, or already-decoded JSON.
func (s *LocalStore) ImportBrowserExport(r io.Reader) (*ImportReport, error) {
	report := &ImportReport{}
	if s.disabled {
		return report, nil
	}
	var dump map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	keys := make([]string, 0, len(dump))
	for k := range dump {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		raw, err := unwrapStoredValue(dump[key])
		if err != nil {
			return nil, fmt.Errorf("%w: export key %s: %v", ErrCorruptRecord, key, err)
		}
		switch key {
		case keyUser:
			var u models.User
			if err := json.Unmarshal(raw, &u); err != nil {
				return nil, fmt.Errorf("%w: export key %s: %v", ErrCorruptRecord, key, err)
			}
			if err := s.SetUser(u); err != nil {
				return nil, err
			}
			report.User = true
		case keyCatalog:
			var list []models.Pitch
			if err := json.Unmarshal(raw, &list); err != nil {
				return nil, fmt.Errorf("%w: export key %s: %v", ErrCorruptRecord, key, err)
			}
			if err := s.SetCatalog(list); err != nil {
				return nil, err
			}
			report.Pitches = len(list)
		case keyLikes:
			var likes map[string][]string
			if err := json.Unmarshal(raw, &likes); err != nil {
				return nil, fmt.Errorf("%w: export key %s: %v", ErrCorruptRecord, key, err)
			}
			for userID, ids := range likes {
				if ids == nil {
					ids = []string{}
				}
				if err := s.writeJSON(likesKey(userID), ids); err != nil {
					return nil, err
				}
				report.LikeSets++
			}
		case keyComments:
			var threads map[string][]models.Comment
			if err := json.Unmarshal(raw, &threads); err != nil {
				return nil, fmt.Errorf("%w: export key %s: %v", ErrCorruptRecord, key, err)
			}
			for videoID, thread := range threads {
				if thread == nil {
					thread = []models.Comment{}
				}
				if err := s.writeJSON(commentsKey(videoID), thread); err != nil {
					return nil, err
				}
				report.CommentThreads++
			}
		case keyAnalyses:
			var analyses map[string]models.Analysis
			if err := json.Unmarshal(raw, &analyses); err != nil {
				return nil, fmt.Errorf("%w: export key %s: %v", ErrCorruptRecord, key, err)
			}
			for legacyKey, a := range analyses {
				// the browser key joins ids with "_", which is ambiguous;
				// the ids stamped inside the record are authoritative
				if a.PitchID == "" || a.UserID == "" {
					report.Skipped = append(report.Skipped, keyAnalyses+"["+legacyKey+"]")
					continue
				}
				if err := s.SetCachedAnalysis(a.PitchID, a.UserID, a); err != nil {
					return nil, err
				}
				report.Analyses++
			}
		default:
			report.Skipped = append(report.Skipped, key)
		}
	}
	sort.Strings(report.Skipped)
	return report, nil
}

func unwrapStoredValue(raw json.RawMessage) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, err
		}
		return []byte(s), nil
	}
	return trimmed, nil
}
