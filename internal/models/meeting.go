package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	MeetingDateLayout = "2006-01-02"
	MeetingTimeLayout = "15:04"
)

// Meeting is a request by an investor or incubator to meet a pitch's founder.
type Meeting struct {
	ID        string `json:"id"`
	PitchID   string `json:"pitchId"`
	Startup   string `json:"startup"`
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt int64  `json:"createdAt"` // unix milliseconds
}

// ParseMeetingSlot checks that date is YYYY-MM-DD and clock is HH:MM and
// returns the combined local time. Both are required.
func ParseMeetingSlot(date, clock string) (time.Time, error) {
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return time.Time{}, fmt.Errorf("both date and time are required")
	}
	t, err := time.ParseInLocation(MeetingDateLayout+" "+MeetingTimeLayout, date+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("meeting slot %q %q: want %s and %s", date, clock, MeetingDateLayout, MeetingTimeLayout)
	}
	return t, nil
}

// CanReviewPitches reports whether role may request meetings and AI analyses.
func CanReviewPitches(role Role) bool {
	return role == RoleInvestor || role == RoleIncubator
}
