package analysis

import (
	"encoding/json"
	"fmt"
)

// Report is the structured analysis output. The shape is fixed; every
// successful analysis, simulated or provider-backed, conforms to it.
type Report struct {
	SchemaVersion int     `json:"schemaVersion"`
	CompletedAt   string  `json:"completedAt"`
	Confidence    float64 `json:"confidence"`
	OverallScore  int     `json:"overallScore"`
	Summary       Summary `json:"summary"`
	Ratios        Ratios  `json:"ratios"`
	Regions       Regions `json:"regions"`
	Posture       Posture `json:"posture"`
	Natty         Natty   `json:"natty"`
	Quality       Quality `json:"quality"`
}

type Summary struct {
	UpperBody int `json:"upperBody"`
	LowerBody int `json:"lowerBody"`
	Symmetry  int `json:"symmetry"`
	Posture   int `json:"posture"`
}

type Ratios struct {
	ShoulderToWaist float64 `json:"shoulderToWaist"`
	QuadToHeight    float64 `json:"quadToHeight"`
	ArmToWaist      float64 `json:"armToWaist"`
}

// RegionScore value object
type RegionScore struct {
	Name    string  `json:"name"`
	Ratio   float64 `json:"ratio"`
	Percent int     `json:"percent"`
	Tag     string  `json:"tag"` // balanced | strong | lagging
}

type Regions struct {
	Upper []RegionScore `json:"upper"`
	Lower []RegionScore `json:"lower"`
}

type Posture struct {
	Grade                   string `json:"grade"`
	SpinalAlignmentDeltaDeg int    `json:"spinalAlignmentDeltaDeg"`
	ScapularBalance         string `json:"scapularBalance"`
}

type Natty struct {
	Status     string  `json:"status"`
	Confidence float64 `json:"confidence"`
}

// ViewQuality notes how usable one submitted view was.
type ViewQuality struct {
	OK    bool     `json:"ok"`
	Notes []string `json:"notes"`
}

type Quality struct {
	Front ViewQuality `json:"front"`
	Side  ViewQuality `json:"side"`
	Back  ViewQuality `json:"back"`
}

// requiredKeys must be present at the top level of a provider payload.
// schemaVersion, completedAt and natty are tolerated when absent; everything
// else missing is a hard mismatch.
var requiredKeys = []string{
	"overallScore",
	"confidence",
	"summary",
	"ratios",
	"regions",
	"posture",
	"quality",
}

// ParseReport decodes and validates a raw provider payload. It returns
// ErrProvider (wrapped) when the payload is not JSON at all, and *SchemaError
// when it is JSON but does not satisfy the report schema.
func ParseReport(raw []byte) (*Report, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("%w: response is not a JSON object: %v", ErrProvider, err)
	}
	for _, key := range requiredKeys {
		if _, ok := top[key]; !ok {
			return nil, &SchemaError{Raw: raw, Detail: "missing required field: " + key}
		}
	}

	var r Report
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, &SchemaError{Raw: raw, Detail: err.Error()}
	}
	if err := r.Validate(); err != nil {
		return nil, &SchemaError{Raw: raw, Detail: err.Error()}
	}
	return &r, nil
}

// Validate range-checks the scores. Field presence is the parser's job.
func (r *Report) Validate() error {
	if r.OverallScore < 0 || r.OverallScore > 100 {
		return fmt.Errorf("overallScore %d out of range [0,100]", r.OverallScore)
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("confidence %v out of range [0,1]", r.Confidence)
	}
	for _, rs := range append(append([]RegionScore{}, r.Regions.Upper...), r.Regions.Lower...) {
		if rs.Percent < 0 || rs.Percent > 100 {
			return fmt.Errorf("region %q percent %d out of range [0,100]", rs.Name, rs.Percent)
		}
	}
	return nil
}
