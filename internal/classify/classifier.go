// Package classify is the stand-in for a real damage-inference service.
// It maps a damage-type tag to a canned analysis with a randomized
// confidence inside a type-specific band. Swapping in a real model means
// providing another Classifier implementation; the report service does
// not care which one it gets.
package classify

import (
	"math/rand"
	"sync"
	"time"
)

// Result is the analysis payload for one damage type.
type Result struct {
	DetectedDamage        []string
	Confidence            float64
	RecommendedDepartment string
	Priority              string
	Severity              string
}

// Classifier maps a damage-type tag to an analysis result. The static
// table cannot fail, but a real inference backend can, so the contract
// carries an error; callers must treat failure as non-fatal.
type Classifier interface {
	Classify(damageType string) (Result, error)
}

type profile struct {
	detectedDamage []string
	confidenceMin  float64
	confidenceMax  float64
	department     string
	priority       string
	severity       string
}

var profiles = map[string]profile{
	"pothole": {
		detectedDamage: []string{"pothole", "asphalt_damage", "road_surface_issue"},
		confidenceMin:  0.85, confidenceMax: 0.95,
		department: "Public Works Department",
		priority:   "high",
		severity:   "moderate_to_severe",
	},
	"crack": {
		detectedDamage: []string{"surface_crack", "structural_stress", "weathering"},
		confidenceMin:  0.75, confidenceMax: 0.90,
		department: "Road Maintenance",
		priority:   "medium",
		severity:   "minor_to_moderate",
	},
	"tree_fall": {
		detectedDamage: []string{"fallen_tree", "road_blockage", "safety_hazard"},
		confidenceMin:  0.95, confidenceMax: 1.00,
		department: "Emergency Services",
		priority:   "high",
		severity:   "severe",
	},
	"debris": {
		detectedDamage: []string{"road_debris", "obstacle", "traffic_hazard"},
		confidenceMin:  0.80, confidenceMax: 0.95,
		department: "Sanitation Department",
		priority:   "medium",
		severity:   "moderate",
	},
	"flood_damage": {
		detectedDamage: []string{"water_damage", "erosion", "structural_compromise"},
		confidenceMin:  0.88, confidenceMax: 1.00,
		department: "Emergency Services",
		priority:   "high",
		severity:   "severe",
	},
	"other": {
		detectedDamage: []string{"unidentified_damage", "requires_inspection"},
		confidenceMin:  0.60, confidenceMax: 0.80,
		department: "General Maintenance",
		priority:   "low",
		severity:   "minor",
	},
}

// Static is the table-backed classifier. The delay models the latency of
// the inference call it stands in for.
type Static struct {
	delay time.Duration
	mu    sync.Mutex
	rng   *rand.Rand
}

func NewStatic(delay time.Duration) *Static {
	return &Static{
		delay: delay,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Classify returns the canned analysis for damageType. Unrecognized tags
// fall back to the "other" profile.
func (s *Static) Classify(damageType string) (Result, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	p, ok := profiles[damageType]
	if !ok {
		p = profiles["other"]
	}

	s.mu.Lock()
	confidence := p.confidenceMin + s.rng.Float64()*(p.confidenceMax-p.confidenceMin)
	s.mu.Unlock()

	detected := make([]string, len(p.detectedDamage))
	copy(detected, p.detectedDamage)

	return Result{
		DetectedDamage:        detected,
		Confidence:            confidence,
		RecommendedDepartment: p.department,
		Priority:              p.priority,
		Severity:              p.severity,
	}, nil
}
