package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
)

// ==================== Resource Store ====================

// resourceStore implements driven.ResourceStore.
type resourceStore struct {
	store *Store
}

var _ driven.ResourceStore = (*resourceStore)(nil)

// ListResources returns resources passing the region and emergency filters.
func (s *resourceStore) ListResources(ctx context.Context, query domain.ResourceQuery) ([]domain.LocalResource, error) {
	sqlQuery := `
		SELECT id, type, name, location, contact, services, emergency_available,
			distance_km, availability, region
		FROM resources
		WHERE (? = '' OR region = ? OR region = ?)
			AND (? = 0 OR emergency_available = 1)
		ORDER BY id
	`
	rows, err := s.store.db.QueryContext(ctx, sqlQuery,
		query.Region, query.Region, domain.RegionAll, boolToInt(query.EmergencyOnly))
	if err != nil {
		return nil, fmt.Errorf("querying resources: %w", err)
	}
	defer rows.Close()

	resources := []domain.LocalResource{}
	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating resources: %w", err)
	}

	return resources, nil
}

// SaveResource creates a resource when ID is zero, otherwise updates it.
func (s *resourceStore) SaveResource(ctx context.Context, resource *domain.LocalResource) error {
	if resource == nil || resource.Name == "" {
		return domain.ErrInvalidInput
	}
	if resource.Region == "" {
		resource.Region = domain.RegionAll
	}

	services, err := marshalStrings(resource.Services)
	if err != nil {
		return fmt.Errorf("marshalling services: %w", err)
	}

	if resource.ID == 0 {
		res, err := s.store.db.ExecContext(ctx, `
			INSERT INTO resources (type, name, location, contact, services,
				emergency_available, distance_km, availability, region)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, resource.Type, resource.Name, resource.Location, resource.Contact, services,
			boolToInt(resource.EmergencyAvailable), resource.DistanceKm,
			resource.Availability, resource.Region)
		if err != nil {
			return fmt.Errorf("inserting resource: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading resource id: %w", err)
		}
		resource.ID = id
		return nil
	}

	res, err := s.store.db.ExecContext(ctx, `
		UPDATE resources SET type = ?, name = ?, location = ?, contact = ?, services = ?,
			emergency_available = ?, distance_km = ?, availability = ?, region = ?
		WHERE id = ?
	`, resource.Type, resource.Name, resource.Location, resource.Contact, services,
		boolToInt(resource.EmergencyAvailable), resource.DistanceKm,
		resource.Availability, resource.Region, resource.ID)
	if err != nil {
		return fmt.Errorf("updating resource: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating resource: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanResource(rows *sql.Rows) (*domain.LocalResource, error) {
	var r domain.LocalResource
	var services string
	var emergency int

	if err := rows.Scan(&r.ID, &r.Type, &r.Name, &r.Location, &r.Contact, &services,
		&emergency, &r.DistanceKm, &r.Availability, &r.Region); err != nil {
		return nil, fmt.Errorf("scanning resource: %w", err)
	}
	r.Services = unmarshalStrings(services)
	r.EmergencyAvailable = emergency == 1
	return &r, nil
}

// ==================== Protocol Store ====================

// protocolStore implements driven.ProtocolStore.
type protocolStore struct {
	store *Store
}

var _ driven.ProtocolStore = (*protocolStore)(nil)

// GetProtocol returns the protocol for an emergency type.
func (s *protocolStore) GetProtocol(ctx context.Context, emergencyType string) (*domain.EmergencyProtocol, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT type, title, immediate_action, steps, warning_signs, do_not_do, call_emergency
		FROM protocols WHERE type = ?
	`, emergencyType)

	var p domain.EmergencyProtocol
	var steps, warnings, doNot string
	err := row.Scan(&p.Type, &p.Title, &p.ImmediateAction, &steps, &warnings, &doNot, &p.CallEmergency)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning protocol: %w", err)
	}
	p.Steps = unmarshalStrings(steps)
	p.WarningSigns = unmarshalStrings(warnings)
	p.DoNotDo = unmarshalStrings(doNot)
	return &p, nil
}

// ListProtocols returns all stored protocols ordered by type.
func (s *protocolStore) ListProtocols(ctx context.Context) ([]domain.EmergencyProtocol, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT type, title, immediate_action, steps, warning_signs, do_not_do, call_emergency
		FROM protocols ORDER BY type
	`)
	if err != nil {
		return nil, fmt.Errorf("querying protocols: %w", err)
	}
	defer rows.Close()

	var protocols []domain.EmergencyProtocol //nolint:prealloc // size unknown from query
	for rows.Next() {
		var p domain.EmergencyProtocol
		var steps, warnings, doNot string
		if err := rows.Scan(&p.Type, &p.Title, &p.ImmediateAction, &steps, &warnings, &doNot, &p.CallEmergency); err != nil {
			return nil, fmt.Errorf("scanning protocol: %w", err)
		}
		p.Steps = unmarshalStrings(steps)
		p.WarningSigns = unmarshalStrings(warnings)
		p.DoNotDo = unmarshalStrings(doNot)
		protocols = append(protocols, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating protocols: %w", err)
	}
	return protocols, nil
}

// SaveProtocol creates or replaces the protocol for its type.
func (s *protocolStore) SaveProtocol(ctx context.Context, protocol *domain.EmergencyProtocol) error {
	if protocol == nil || protocol.Type == "" || protocol.ImmediateAction == "" {
		return domain.ErrInvalidInput
	}

	steps, err := marshalStrings(protocol.Steps)
	if err != nil {
		return fmt.Errorf("marshalling steps: %w", err)
	}
	warnings, err := marshalStrings(protocol.WarningSigns)
	if err != nil {
		return fmt.Errorf("marshalling warning signs: %w", err)
	}
	doNot, err := marshalStrings(protocol.DoNotDo)
	if err != nil {
		return fmt.Errorf("marshalling do-not-do list: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO protocols (type, title, immediate_action, steps, warning_signs, do_not_do, call_emergency)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(type) DO UPDATE SET
			title = excluded.title,
			immediate_action = excluded.immediate_action,
			steps = excluded.steps,
			warning_signs = excluded.warning_signs,
			do_not_do = excluded.do_not_do,
			call_emergency = excluded.call_emergency
	`, protocol.Type, protocol.Title, protocol.ImmediateAction, steps, warnings, doNot, protocol.CallEmergency)
	if err != nil {
		return fmt.Errorf("saving protocol: %w", err)
	}
	return nil
}
