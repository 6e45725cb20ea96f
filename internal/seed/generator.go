// Package seed generates the synthetic security-event corpus. Generation is
// fully deterministic for a given seed so fixtures and benchmarks are
// reproducible.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/secintel/secintel/internal/entity"
)

// Severity tiers are drawn with fixed weights: 30% low, 35% medium, 25%
// high, 10% critical.
var severityWeights = []struct {
	severity string
	weight   int
}{
	{entity.SeverityLow, 30},
	{entity.SeverityMedium, 35},
	{entity.SeverityHigh, 25},
	{entity.SeverityCritical, 10},
}

var targetPorts = []uint16{22, 53, 80, 443, 445, 1433, 3306, 3389, 5432, 8080, 8443}

var attackTools = []string{
	"python-requests/2.28.1",
	"curl/7.85.0",
	"Nmap Scripting Engine",
	"sqlmap/1.6.12",
	"Nikto/2.1.6",
}

const (
	externalPoolSize = 5000
	internalPoolSize = 500
)

// Generator produces deterministic synthetic security events.
type Generator struct {
	rng   *rand.Rand
	faker *gofakeit.Faker

	externalIPs []string
	internalIPs []string

	base time.Time
	span time.Duration
}

// NewGenerator creates a generator whose events are spread over [base,
// base+span). The same seed always yields the same event sequence.
func NewGenerator(seed int64, base time.Time, span time.Duration) *Generator {
	g := &Generator{
		rng:   rand.New(rand.NewSource(seed)),
		faker: gofakeit.New(seed),
		base:  base.UTC(),
		span:  span,
	}

	// A bounded IP pool makes the attacker ranking meaningful: sources
	// repeat, so per-source totals diverge.
	g.externalIPs = make([]string, externalPoolSize)
	for i := range g.externalIPs {
		g.externalIPs[i] = fmt.Sprintf("%d.%d.%d.%d",
			1+g.rng.Intn(223), g.rng.Intn(256), g.rng.Intn(256), 1+g.rng.Intn(254))
	}
	g.internalIPs = make([]string, internalPoolSize)
	for i := range g.internalIPs {
		g.internalIPs[i] = fmt.Sprintf("10.%d.%d.%d",
			g.rng.Intn(256), g.rng.Intn(256), 1+g.rng.Intn(254))
	}

	return g
}

func (g *Generator) pickSeverity() string {
	n := g.rng.Intn(100)
	for _, sw := range severityWeights {
		if n < sw.weight {
			return sw.severity
		}
		n -= sw.weight
	}
	return entity.SeverityLow
}

func (g *Generator) pickUserAgent() string {
	// Roughly matches the observed corpus: browsers, attack tooling, and a
	// slice of events with no client signature at all.
	switch n := g.rng.Intn(8); {
	case n < 2:
		return ""
	case n < 4:
		return g.faker.UserAgent()
	default:
		return attackTools[g.rng.Intn(len(attackTools))]
	}
}

func (g *Generator) describe(eventType, srcIP, dstIP string, dstPort uint16) string {
	switch eventType {
	case "intrusion_attempt":
		return fmt.Sprintf("Unauthorized access attempt detected from %s targeting port %d", srcIP, dstPort)
	case "malware_detected":
		return fmt.Sprintf("Malicious payload identified in network traffic from %s", srcIP)
	case "phishing_email":
		return fmt.Sprintf("Phishing email with malicious link detected from %s", srcIP)
	case "ddos_attack":
		return fmt.Sprintf("High-volume traffic flood detected from %s (%d pps)", srcIP, 1000+g.rng.Intn(99001))
	case "data_exfiltration":
		return fmt.Sprintf("Unusual data transfer volume from %s to external endpoint", srcIP)
	case "brute_force":
		return fmt.Sprintf("Multiple failed authentication attempts from %s (%d attempts)", srcIP, 5+g.rng.Intn(4996))
	case "lateral_movement":
		return fmt.Sprintf("Suspicious internal network traversal from %s to %s", srcIP, dstIP)
	case "privilege_escalation":
		return fmt.Sprintf("Unauthorized privilege elevation attempt detected on %s", dstIP)
	case "port_scan":
		return fmt.Sprintf("Sequential port scanning activity from %s across %d ports", srcIP, 5+g.rng.Intn(4996))
	case "sql_injection":
		return fmt.Sprintf("SQL injection attempt detected in HTTP request from %s", srcIP)
	case "xss_attack":
		return fmt.Sprintf("Cross-site scripting payload detected in request from %s", srcIP)
	case "dns_tunneling":
		return fmt.Sprintf("Anomalous DNS query patterns from %s suggesting data exfiltration", srcIP)
	case "ransomware":
		return fmt.Sprintf("Ransomware encryption behavior detected on %s", dstIP)
	case "credential_stuffing":
		return fmt.Sprintf("Credential reuse attack from %s using %d unique credentials", srcIP, 5+g.rng.Intn(4996))
	case "insider_threat":
		return fmt.Sprintf("Anomalous user behavior detected from internal host %s", srcIP)
	case "unauthorized_access":
		return fmt.Sprintf("Access to restricted resource from %s without valid credentials", srcIP)
	default:
		return fmt.Sprintf("Security event detected from %s", srcIP)
	}
}

// Event generates one synthetic security event. The severity score is always
// within its tier's range.
func (g *Generator) Event() entity.SecurityEvent {
	severity := g.pickSeverity()
	minScore, maxScore := entity.ScoreRange(severity)
	score := minScore + uint8(g.rng.Intn(int(maxScore-minScore)+1))

	eventType := entity.EventTypes[g.rng.Intn(len(entity.EventTypes))]
	srcIP := g.externalIPs[g.rng.Intn(len(g.externalIPs))]
	dstIP := g.internalIPs[g.rng.Intn(len(g.internalIPs))]
	dstPort := targetPorts[g.rng.Intn(len(targetPorts))]
	ts := g.base.Add(time.Duration(g.rng.Int63n(int64(g.span))))

	// IDs come from the seeded source as well, keeping the whole event
	// stream reproducible.
	id, _ := uuid.NewRandomFromReader(g.rng)

	return entity.SecurityEvent{
		EventID:        id,
		Timestamp:      ts,
		SrcIP:          srcIP,
		DstIP:          dstIP,
		SrcPort:        uint16(1024 + g.rng.Intn(65535-1024)),
		DstPort:        dstPort,
		Protocol:       entity.Protocols[g.rng.Intn(len(entity.Protocols))],
		EventType:      eventType,
		Severity:       severity,
		SeverityScore:  score,
		Description:    g.describe(eventType, srcIP, dstIP, dstPort),
		ThreatCategory: entity.ThreatCategories[g.rng.Intn(len(entity.ThreatCategories))],
		ActionTaken:    entity.Actions[g.rng.Intn(len(entity.Actions))],
		UserAgent:      g.pickUserAgent(),
		GeoCountry:     entity.Countries[g.rng.Intn(len(entity.Countries))],
		RawLog:         fmt.Sprintf(`{"src":%q,"dst":%q,"type":%q,"sev":%d}`, srcIP, dstIP, eventType, score),
	}
}

// Events generates n synthetic events.
func (g *Generator) Events(n int) []entity.SecurityEvent {
	events := make([]entity.SecurityEvent, n)
	for i := range events {
		events[i] = g.Event()
	}
	return events
}
