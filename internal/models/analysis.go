package models

import (
	"fmt"
	"strings"
)

type Clarity string
type Traction string
type Market string
type FounderSignal string
type Verdict string

const (
	ClarityHigh   Clarity = "High"
	ClarityMedium Clarity = "Medium"
	ClarityLow    Clarity = "Low"

	TractionStrong Traction = "Strong"
	TractionEarly  Traction = "Early"
	TractionNone   Traction = "None"

	MarketLarge   Market = "Large"
	MarketNiche   Market = "Niche"
	MarketUnclear Market = "Unclear"

	FounderConvincing FounderSignal = "Convincing"
	FounderAverage    FounderSignal = "Average"
	FounderNeedsDepth FounderSignal = "Needs Depth"

	VerdictIntroCall Verdict = "Worth a short intro call"
	VerdictTrack     Verdict = "Track for later"
	VerdictSkip      Verdict = "Skip for now"
)

var (
	clarityValues  = []string{string(ClarityHigh), string(ClarityMedium), string(ClarityLow)}
	tractionValues = []string{string(TractionStrong), string(TractionEarly), string(TractionNone)}
	marketValues   = []string{string(MarketLarge), string(MarketNiche), string(MarketUnclear)}
	founderValues  = []string{string(FounderConvincing), string(FounderAverage), string(FounderNeedsDepth)}
	verdictValues  = []string{string(VerdictIntroCall), string(VerdictTrack), string(VerdictSkip)}
)

type Brief struct {
	Problem        string `json:"problem"`
	Solution       string `json:"solution"`
	TargetCustomer string `json:"targetCustomer"`
	CurrentStage   string `json:"currentStage"`
	Ask            string `json:"ask"`
}

type ReadinessSignals struct {
	Clarity       Clarity       `json:"clarity"`
	Traction      Traction      `json:"traction"`
	Market        Market        `json:"market"`
	FounderSignal FounderSignal `json:"founderSignal"`
}

type ComparableContext struct {
	SimilarStartups string `json:"similarStartups"`
	Differentiation string `json:"differentiation"`
}

type Recommendation struct {
	Verdict   Verdict `json:"verdict"`
	Reasoning string  `json:"reasoning"`
}

// Analysis is the structured AI brief for one (pitch, user) pair.
type Analysis struct {
	PitchID           string            `json:"pitchId"`
	UserID            string            `json:"userId"`
	Timestamp         int64             `json:"timestamp"` // unix milliseconds
	Brief             Brief             `json:"brief"`
	ReadinessSignals  ReadinessSignals  `json:"readinessSignals"`
	QuestionsToAsk    []string          `json:"questionsToAsk"`
	RisksAndGaps      []string          `json:"risksAndGaps"`
	ComparableContext ComparableContext `json:"comparableContext"`
	Recommendation    Recommendation    `json:"recommendation"`
}

// Answer is the reply to a free-text investor question.
type Answer struct {
	Answer string `json:"answer"`
}

// Normalize rewrites every enumerated field to its canonical literal. It fails
// on the first value outside its vocabulary, so a normalized Analysis only
// ever carries the literal strings declared above.
func (a *Analysis) Normalize() error {
	var err error
	var v string
	if v, err = canonical("readinessSignals.clarity", string(a.ReadinessSignals.Clarity), clarityValues); err != nil {
		return err
	}
	a.ReadinessSignals.Clarity = Clarity(v)
	if v, err = canonical("readinessSignals.traction", string(a.ReadinessSignals.Traction), tractionValues); err != nil {
		return err
	}
	a.ReadinessSignals.Traction = Traction(v)
	if v, err = canonical("readinessSignals.market", string(a.ReadinessSignals.Market), marketValues); err != nil {
		return err
	}
	a.ReadinessSignals.Market = Market(v)
	if v, err = canonical("readinessSignals.founderSignal", string(a.ReadinessSignals.FounderSignal), founderValues); err != nil {
		return err
	}
	a.ReadinessSignals.FounderSignal = FounderSignal(v)
	if v, err = canonical("recommendation.verdict", string(a.Recommendation.Verdict), verdictValues); err != nil {
		return err
	}
	a.Recommendation.Verdict = Verdict(v)
	if a.QuestionsToAsk == nil {
		a.QuestionsToAsk = []string{}
	}
	if a.RisksAndGaps == nil {
		a.RisksAndGaps = []string{}
	}
	return nil
}

func canonical(field, value string, allowed []string) (string, error) {
	key := strings.ToLower(strings.Join(strings.Fields(value), " "))
	for _, lit := range allowed {
		if strings.ToLower(lit) == key {
			return lit, nil
		}
	}
	return "", fmt.Errorf("%s: %q is not one of %s", field, value, strings.Join(allowed, ", "))
}

// Tone is the colour family a client renders a signal or verdict with.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNeutral  Tone = "neutral"
	ToneNegative Tone = "negative"
	ToneUnknown  Tone = "unknown"
)

var tones = map[string]Tone{
	string(ClarityHigh):       TonePositive,
	string(ClarityMedium):     ToneNeutral,
	string(ClarityLow):        ToneNegative,
	string(TractionStrong):    TonePositive,
	string(TractionEarly):     ToneNeutral,
	string(TractionNone):      ToneNegative,
	string(MarketLarge):       TonePositive,
	string(MarketNiche):       ToneNeutral,
	string(MarketUnclear):     ToneNegative,
	string(FounderConvincing): TonePositive,
	string(FounderAverage):    ToneNeutral,
	string(FounderNeedsDepth): ToneNegative,
	string(VerdictIntroCall):  TonePositive,
	string(VerdictTrack):      ToneNeutral,
	string(VerdictSkip):       ToneNegative,
}

// SignalTone maps a signal or verdict literal to its tone; anything
// unrecognized gets ToneUnknown.
func SignalTone(value string) Tone {
	if t, ok := tones[value]; ok {
		return t
	}
	return ToneUnknown
}
