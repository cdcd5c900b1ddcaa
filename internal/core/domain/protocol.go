package domain

// Emergency types with built-in first-aid protocols.
const (
	EmergencyCardiac     = "cardiac"
	EmergencyRespiratory = "respiratory"
	EmergencyUnconscious = "unconscious"
	EmergencyBleeding    = "bleeding"
	EmergencyBurns       = "burns"
	EmergencyPoisoning   = "poisoning"
	EmergencyChoking     = "choking"
)

// GenericProtocolType identifies the fallback protocol.
const GenericProtocolType = "generic"

// EmergencyProtocol is the first-aid procedure for one emergency type.
type EmergencyProtocol struct {
	Type            string   `json:"type"`
	Title           string   `json:"title,omitempty"`
	ImmediateAction string   `json:"immediate_action"`
	Steps           []string `json:"steps"`
	WarningSigns    []string `json:"warning_signs"`
	DoNotDo         []string `json:"do_not_do"`
	CallEmergency   string   `json:"call_emergency,omitempty"`
}

// IsGeneric reports whether p is the fallback protocol.
func (p EmergencyProtocol) IsGeneric() bool {
	return p.Type == GenericProtocolType
}

// GenericProtocol is returned for any emergency type without a stored protocol.
func GenericProtocol() EmergencyProtocol {
	return EmergencyProtocol{
		Type:            GenericProtocolType,
		ImmediateAction: "Medical emergency detected. Call 108 immediately.",
		Steps: []string{
			"Call emergency services",
			"Stay with the person",
			"Follow dispatcher instructions",
		},
		WarningSigns:  []string{"Worsening condition"},
		DoNotDo:       []string{"Move person unnecessarily"},
		CallEmergency: "108",
	}
}

// Hotline is a national emergency number in priority order.
type Hotline struct {
	Priority    int    `json:"priority"`
	Service     string `json:"service"`
	Number      string `json:"number"`
	Description string `json:"description"`
	WhenToCall  string `json:"when_to_call"`
}

// Hotlines returns the national emergency contact hierarchy.
func Hotlines() []Hotline {
	return []Hotline{
		{1, "Emergency Services", "108", "National emergency helpline", "Life-threatening emergencies"},
		{2, "Ambulance", "102", "Free ambulance service", "Medical transport needed"},
		{3, "Fire Emergency", "101", "Fire and rescue", "Fire, accident rescue"},
		{4, "Police", "100", "Police emergency", "Crime, security emergency"},
		{5, "Disaster Management", "1078", "Disaster response", "Natural disasters, major incidents"},
	}
}

// HotlineContacts returns the medical hotlines as emergency contacts.
// Used when no resource store is available.
func HotlineContacts() []EmergencyContact {
	var out []EmergencyContact
	for _, h := range Hotlines() {
		if h.Number == "108" || h.Number == "102" {
			out = append(out, EmergencyContact{Name: h.Service, Contact: h.Number, Availability: "24/7"})
		}
	}
	return out
}
