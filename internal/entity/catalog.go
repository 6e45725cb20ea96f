package entity

// Fixed catalogs used at ingestion. The analytics engine treats these fields
// as opaque strings; the catalogs exist for the seeder and for validation at
// the storage boundary.

// EventTypes is the catalog of recognized event types.
var EventTypes = []string{
	"intrusion_attempt", "malware_detected", "phishing_email",
	"ddos_attack", "data_exfiltration", "brute_force",
	"lateral_movement", "privilege_escalation", "port_scan",
	"sql_injection", "xss_attack", "dns_tunneling",
	"ransomware", "credential_stuffing", "insider_threat",
	"unauthorized_access",
}

// ThreatCategories is the catalog of threat categories.
var ThreatCategories = []string{
	"network_intrusion", "malware", "social_engineering",
	"denial_of_service", "data_breach", "authentication_attack",
	"web_application", "advanced_persistent_threat",
	"insider_threat", "reconnaissance",
}

// Protocols is the catalog of transport/application protocols.
var Protocols = []string{"TCP", "UDP", "ICMP", "HTTP", "HTTPS", "DNS", "SSH", "FTP"}

// Actions is the catalog of response actions.
var Actions = []string{"logged", "blocked", "quarantined", "alerted", "investigated"}

// Countries is the catalog of geo country codes seen in the corpus.
var Countries = []string{
	"US", "CN", "RU", "DE", "BR", "IN", "GB", "FR", "KR", "JP",
	"NL", "UA", "IR", "VN", "ID", "NG", "RO", "PK", "TH", "AR",
}
