package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// URIScheme is the custom URI scheme for Sahaaya resources.
	uriScheme = "sahaaya://"
)

// conditionInfo is the summary listed by the conditions resource.
type conditionInfo struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Severity  string `json:"severity"`
	Urgency   string `json:"urgency"`
	Emergency bool   `json:"emergency,omitempty"`
	Keywords  int    `json:"keywords"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the active condition table.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "conditions",
		Name:        "conditions",
		Description: "Conditions in the active knowledge base",
		MIMEType:    "application/json",
	}, s.handleConditionsResource)

	// Static resource for the national hotlines.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "hotlines",
		Name:        "hotlines",
		Description: "National emergency numbers in priority order",
		MIMEType:    "application/json",
	}, s.handleHotlinesResource)

	// Template for first-aid protocols.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "protocols/{type}",
		Name:        "protocol",
		Description: "First-aid protocol for an emergency type",
		MIMEType:    "application/json",
	}, s.handleProtocolResource)
}

// handleConditionsResource lists the conditions of the active knowledge base.
func (s *Server) handleConditionsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Knowledge == nil || s.ports.Knowledge.Current() == nil {
		return jsonResource(req.Params.URI, []conditionInfo{})
	}

	conditions := s.ports.Knowledge.Current().Conditions()
	infos := make([]conditionInfo, len(conditions))
	for i := range conditions {
		c := &conditions[i]
		infos[i] = conditionInfo{
			ID:        c.ID,
			Category:  c.Category,
			Severity:  c.Severity.String(),
			Urgency:   c.Urgency.String(),
			Emergency: c.Emergency,
			Keywords:  c.KeywordCount(),
		}
	}
	return jsonResource(req.Params.URI, infos)
}

// handleHotlinesResource returns the national emergency numbers.
func (s *Server) handleHotlinesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Emergency == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, s.ports.Emergency.Hotlines())
}

// handleProtocolResource returns the protocol named in the URI.
func (s *Server) handleProtocolResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Emergency == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract type from URI: sahaaya://protocols/{type}
	emergencyType := extractProtocolType(req.Params.URI)
	if emergencyType == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, s.ports.Emergency.Protocol(ctx, emergencyType))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractProtocolType extracts the emergency type from a URI like sahaaya://protocols/{type}.
func extractProtocolType(uri string) string {
	const prefix = uriScheme + "protocols/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.Trim(strings.TrimPrefix(uri, prefix), "/")
}
