package models

import (
	"fmt"
	"strings"
)

type Stage string

const (
	StageIdea         Stage = "Idea"
	StageMVP          Stage = "MVP"
	StageEarlyRevenue Stage = "Early Revenue"
	StageGrowth       Stage = "Growth"
	StageScaling      Stage = "Scaling"
)

// Stages lists every stage in lifecycle order.
var Stages = []Stage{StageIdea, StageMVP, StageEarlyRevenue, StageGrowth, StageScaling}

// ParseStage matches s against the stage names ignoring case and spacing, so
// "early revenue", "EarlyRevenue" and "Early Revenue" all resolve.
func ParseStage(s string) (Stage, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	for _, st := range Stages {
		if strings.ToLower(strings.ReplaceAll(string(st), " ", "")) == key {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown stage %q", s)
}

type VideoStatus string

const (
	VideoUploading VideoStatus = "uploading"
	VideoReady     VideoStatus = "ready"
	VideoFailed    VideoStatus = "failed"
)

const hostedPlaybackBase = "https://videodelivery.net/"

// Pitch is one catalog entry. JSON names match what browser clients persist.
type Pitch struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Startup      string      `json:"startup"`
	Founder      string      `json:"founder"`
	Stage        Stage       `json:"stage"`
	Category     string      `json:"category"`
	Place        string      `json:"place"`
	Video        string      `json:"video"`
	CloudflareID string      `json:"cloudflareId,omitempty"`
	VideoStatus  VideoStatus `json:"videoStatus,omitempty"`
	Duration     float64     `json:"duration,omitempty"`
	Image        string      `json:"image,omitempty"`
	Description  string      `json:"description"`
	Likes        int         `json:"likes,omitempty"`
	Comments     int         `json:"comments,omitempty"`
}

// PlaybackURL prefers the hosted stream manifest over the direct video URL.
func (p Pitch) PlaybackURL() string {
	if p.CloudflareID != "" {
		return hostedPlaybackBase + p.CloudflareID + "/manifest/video.m3u8"
	}
	return p.Video
}
