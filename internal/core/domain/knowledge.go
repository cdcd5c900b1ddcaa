package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// Message keys for localized templates.
const (
	MessageEmergency        = "emergency"
	MessageNoSymptoms       = "no_symptoms"
	MessageDisclaimer       = "disclaimer"
	MessageResultDisclaimer = "result_disclaimer"
	MessageBandHigh         = "band.high"
	MessageBandMedium       = "band.medium"
	MessageBandLow          = "band.low"
)

// requiredMessages must have English text in every knowledge base.
var requiredMessages = []string{
	MessageEmergency,
	MessageNoSymptoms,
	MessageDisclaimer,
	MessageBandHigh,
	MessageBandMedium,
	MessageBandLow,
}

// Messages maps a message key to its text per language.
type Messages map[string]map[Language]string

// EmergencyType lists the phrases that identify one kind of emergency
// (cardiac, respiratory, ...). Used to pick a first-aid protocol.
type EmergencyType struct {
	Type     string
	Keywords map[Language][]string
}

// KnowledgeBase is the read-only condition table plus message templates.
// A built KnowledgeBase is never mutated and is safe for concurrent reads.
type KnowledgeBase struct {
	version        string
	fingerprint    string
	conditions     []Condition
	index          map[string]int
	messages       Messages
	emergencyTypes []EmergencyType
}

// NewKnowledgeBase validates and indexes a knowledge base.
// Returns an error wrapping ErrKnowledgeInvalid when the table is empty,
// an ID repeats, a level is unknown, a condition has no keywords or English
// advice, or a required English message is missing.
func NewKnowledgeBase(
	version string,
	conditions []Condition,
	messages Messages,
	emergencyTypes []EmergencyType,
) (*KnowledgeBase, error) {
	if len(conditions) == 0 {
		return nil, fmt.Errorf("%w: no conditions", ErrKnowledgeInvalid)
	}

	var errs []error
	index := make(map[string]int, len(conditions))
	for i, c := range conditions {
		if c.ID == "" {
			errs = append(errs, fmt.Errorf("condition %d: empty id", i))
			continue
		}
		if _, dup := index[c.ID]; dup {
			errs = append(errs, fmt.Errorf("condition %s: duplicate id", c.ID))
			continue
		}
		index[c.ID] = i
		if !c.Severity.IsValid() {
			errs = append(errs, fmt.Errorf("condition %s: unknown severity %q", c.ID, c.Severity))
		}
		if !c.Urgency.IsValid() {
			errs = append(errs, fmt.Errorf("condition %s: unknown urgency %q", c.ID, c.Urgency))
		}
		if c.KeywordCount() == 0 {
			errs = append(errs, fmt.Errorf("condition %s: no keywords", c.ID))
		}
		if c.Advice[DefaultLanguage] == "" {
			errs = append(errs, fmt.Errorf("condition %s: missing English advice", c.ID))
		}
	}
	for _, key := range requiredMessages {
		if messages[key][DefaultLanguage] == "" {
			errs = append(errs, fmt.Errorf("message %s: missing English text", key))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrKnowledgeInvalid, errors.Join(errs...))
	}

	fingerprint, err := fingerprintOf(conditions, messages, emergencyTypes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKnowledgeInvalid, err)
	}

	return &KnowledgeBase{
		version:        version,
		fingerprint:    fingerprint,
		conditions:     conditions,
		index:          index,
		messages:       messages,
		emergencyTypes: emergencyTypes,
	}, nil
}

// fingerprintOf hashes the table content. encoding/json sorts map keys,
// so equal content always yields the same digest.
func fingerprintOf(conditions []Condition, messages Messages, types []EmergencyType) (string, error) {
	data, err := json.Marshal(struct {
		Conditions     []Condition
		Messages       Messages
		EmergencyTypes []EmergencyType
	}{conditions, messages, types})
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Version is the author's label for the knowledge base, e.g. "2025.06".
func (kb *KnowledgeBase) Version() string {
	return kb.version
}

// Fingerprint is a digest of the knowledge base content. It changes on any
// edit, whether or not the version label was bumped.
func (kb *KnowledgeBase) Fingerprint() string {
	return kb.fingerprint
}

// Conditions returns the conditions in declaration order.
// The returned slice must not be modified.
func (kb *KnowledgeBase) Conditions() []Condition {
	return kb.conditions
}

// Len returns the number of conditions.
func (kb *KnowledgeBase) Len() int {
	return len(kb.conditions)
}

// Condition looks up a condition by ID.
func (kb *KnowledgeBase) Condition(id string) (Condition, bool) {
	i, ok := kb.index[id]
	if !ok {
		return Condition{}, false
	}
	return kb.conditions[i], true
}

// EmergencyConditions returns the conditions tagged as emergency.
func (kb *KnowledgeBase) EmergencyConditions() []Condition {
	var out []Condition
	for _, c := range kb.conditions {
		if c.Emergency {
			out = append(out, c)
		}
	}
	return out
}

// EmergencyTypes returns the per-type emergency keyword tables.
func (kb *KnowledgeBase) EmergencyTypes() []EmergencyType {
	return kb.emergencyTypes
}

// Message returns the template for key in lang, falling back to English.
// Returns an empty string if the key is unknown.
func (kb *KnowledgeBase) Message(key string, lang Language) string {
	texts := kb.messages[key]
	if text := texts[lang]; text != "" {
		return text
	}
	return texts[DefaultLanguage]
}
