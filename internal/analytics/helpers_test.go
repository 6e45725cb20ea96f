package analytics

import (
	"time"

	"github.com/google/uuid"

	"github.com/secintel/secintel/internal/entity"
)

var testBase = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

type evOpt func(*entity.SecurityEvent)

func withSrcIP(ip string) evOpt {
	return func(e *entity.SecurityEvent) { e.SrcIP = ip }
}

func withEventType(t string) evOpt {
	return func(e *entity.SecurityEvent) { e.EventType = t }
}

func withCategory(c string) evOpt {
	return func(e *entity.SecurityEvent) { e.ThreatCategory = c }
}

func withCountry(c string) evOpt {
	return func(e *entity.SecurityEvent) { e.GeoCountry = c }
}

func withScore(s uint8) evOpt {
	return func(e *entity.SecurityEvent) { e.SeverityScore = s }
}

func withDstIP(ip string) evOpt {
	return func(e *entity.SecurityEvent) { e.DstIP = ip }
}

// ev builds a test event at the given offset from testBase.
func ev(offset time.Duration, severity string, opts ...evOpt) entity.SecurityEvent {
	min, _ := entity.ScoreRange(severity)
	e := entity.SecurityEvent{
		EventID:        uuid.New(),
		Timestamp:      testBase.Add(offset),
		SrcIP:          "203.0.113.10",
		DstIP:          "10.0.0.5",
		SrcPort:        40000,
		DstPort:        443,
		Protocol:       "TCP",
		EventType:      "intrusion_attempt",
		Severity:       severity,
		SeverityScore:  min,
		ThreatCategory: "network_intrusion",
		ActionTaken:    "logged",
		GeoCountry:     "US",
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// repeat builds n copies of an event template.
func repeat(n int, offset time.Duration, severity string, opts ...evOpt) []entity.SecurityEvent {
	events := make([]entity.SecurityEvent, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, ev(offset, severity, opts...))
	}
	return events
}
