package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// errEmergencyUnavailable is returned by emergency tools without an emergency service.
var errEmergencyUnavailable = errors.New("emergency service not configured")

// EvaluateInput is the input schema for the evaluate tool.
type EvaluateInput struct {
	Text     string `json:"text" jsonschema:"free-text description of the symptoms"`
	Language string `json:"language,omitempty" jsonschema:"optional language hint: en, hi, te, ta or bn"`
}

// EvaluateOutput is the output schema for the evaluate tool.
type EvaluateOutput struct {
	Guidance          string                    `json:"guidance"`
	DetectedSymptoms  []string                  `json:"detected_symptoms"`
	Severity          string                    `json:"severity"`
	Urgency           string                    `json:"urgency"`
	Language          string                    `json:"language"`
	Confidence        string                    `json:"confidence"`
	Disclaimers       []string                  `json:"disclaimers"`
	IsEmergency       bool                      `json:"is_emergency"`
	EmergencyContacts []domain.EmergencyContact `json:"emergency_contacts,omitempty"`
	Mode              string                    `json:"mode"`
	Warnings          []string                  `json:"warnings,omitempty"`
	Protocol          *domain.EmergencyProtocol `json:"protocol,omitempty"`
}

// ListResourcesInput is the input schema for the list_resources tool.
type ListResourcesInput struct {
	Region        string `json:"region,omitempty" jsonschema:"region to filter by, e.g. rural or urban"`
	EmergencyOnly bool   `json:"emergency_only,omitempty" jsonschema:"only resources offering emergency care"`
	Limit         int    `json:"limit,omitempty" jsonschema:"maximum number of resources to return (default 5)"`
}

// ListResourcesOutput is the output schema for the list_resources tool.
type ListResourcesOutput struct {
	Resources []domain.LocalResource `json:"resources"`
	Count     int                    `json:"count"`
}

// GetProtocolInput is the input schema for the get_protocol tool.
type GetProtocolInput struct {
	Type string `json:"type" jsonschema:"emergency type: cardiac, respiratory, unconscious, bleeding, burns, poisoning or choking"`
}

// AssessVitalsInput is the input schema for the assess_vitals tool.
type AssessVitalsInput struct {
	HeartRate       *int   `json:"heart_rate,omitempty" jsonschema:"beats per minute; omit if not measured"`
	SystolicBP      *int   `json:"systolic_bp,omitempty" jsonschema:"systolic blood pressure in mmHg; omit if not measured"`
	RespiratoryRate *int   `json:"respiratory_rate,omitempty" jsonschema:"breaths per minute; omit if not measured"`
	AgeGroup        string `json:"age_group,omitempty" jsonschema:"infant, toddler, preschool, school_age, adult or elderly (default adult)"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "evaluate",
		Description: "Evaluate a symptom description and return health guidance, severity and urgency",
	}, s.handleEvaluate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_resources",
		Description: "List nearby healthcare resources, emergency-capable and nearest first",
	}, s.handleListResources)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_protocol",
		Description: "Get the first-aid protocol for an emergency type",
	}, s.handleGetProtocol)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "assess_vitals",
		Description: "Classify vital signs against normal ranges for an age group",
	}, s.handleAssessVitals)
}

// handleEvaluate handles the evaluate tool invocation.
func (s *Server) handleEvaluate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EvaluateInput,
) (*mcp.CallToolResult, EvaluateOutput, error) {
	result, err := s.ports.Guidance.Evaluate(ctx, input.Text, input.Language)
	if err != nil {
		return nil, EvaluateOutput{}, err
	}

	output := EvaluateOutput{
		Guidance:          result.Guidance,
		DetectedSymptoms:  result.DetectedSymptoms,
		Severity:          result.Severity.String(),
		Urgency:           result.Urgency.String(),
		Language:          result.Language.String(),
		Confidence:        string(result.Confidence),
		Disclaimers:       result.Disclaimers,
		IsEmergency:       result.IsEmergency,
		EmergencyContacts: result.EmergencyContacts,
		Mode:              string(result.Mode),
		Warnings:          result.Warnings,
	}
	if result.IsEmergency && s.ports.Emergency != nil {
		protocol := s.ports.Emergency.ProtocolFor(ctx, result.EmergencyTypes)
		output.Protocol = &protocol
	}
	return nil, output, nil
}

// handleListResources handles the list_resources tool invocation.
func (s *Server) handleListResources(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListResourcesInput,
) (*mcp.CallToolResult, ListResourcesOutput, error) {
	if s.ports.Emergency == nil {
		return nil, ListResourcesOutput{}, errEmergencyUnavailable
	}

	resources, err := s.ports.Emergency.Resources(ctx, domain.ResourceQuery{
		Region:        input.Region,
		EmergencyOnly: input.EmergencyOnly,
		Limit:         input.Limit,
	})
	if err != nil {
		return nil, ListResourcesOutput{}, err
	}
	return nil, ListResourcesOutput{Resources: resources, Count: len(resources)}, nil
}

// handleGetProtocol handles the get_protocol tool invocation.
func (s *Server) handleGetProtocol(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetProtocolInput,
) (*mcp.CallToolResult, domain.EmergencyProtocol, error) {
	if s.ports.Emergency == nil {
		return nil, domain.GenericProtocol(), nil
	}
	return nil, s.ports.Emergency.Protocol(ctx, input.Type), nil
}

// handleAssessVitals handles the assess_vitals tool invocation.
func (s *Server) handleAssessVitals(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input AssessVitalsInput,
) (*mcp.CallToolResult, domain.VitalsAssessment, error) {
	if s.ports.Emergency == nil {
		return nil, domain.VitalsAssessment{}, errEmergencyUnavailable
	}
	vitals := domain.VitalSigns{
		HeartRate:       input.HeartRate,
		SystolicBP:      input.SystolicBP,
		RespiratoryRate: input.RespiratoryRate,
	}
	return nil, s.ports.Emergency.AssessVitals(vitals, domain.AgeGroup(input.AgeGroup)), nil
}
