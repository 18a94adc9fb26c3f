package api

import (
	"context"
	"fmt"
	"time"
)

// Property types and unit statuses as the API enumerates them.
const (
	PropertyTypeResidential = "RESIDENTIAL"
	PropertyTypeCommercial  = "COMMERCIAL"
	PropertyTypeMixed       = "MIXED"

	UnitStatusVacant      = "VACANT"
	UnitStatusOccupied    = "OCCUPIED"
	UnitStatusMaintenance = "MAINTENANCE"
	UnitStatusReserved    = "RESERVED"
)

type Property struct {
	ID            int       `json:"id,omitempty"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	City          string    `json:"city,omitempty"`
	PropertyType  string    `json:"property_type,omitempty"`
	Image         string    `json:"image,omitempty"`
	TotalUnits    int       `json:"total_units,omitempty"`
	VacantUnits   int       `json:"vacant_units,omitempty"`
	OccupiedUnits int       `json:"occupied_units,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

type Unit struct {
	ID           int       `json:"id,omitempty"`
	Property     int       `json:"property"`
	PropertyName string    `json:"property_name,omitempty"`
	UnitNumber   string    `json:"unit_number"`
	UnitType     string    `json:"unit_type"`
	YearlyRent   string    `json:"yearly_rent,omitempty"`
	Bedrooms     int       `json:"bedrooms,omitempty"`
	Bathrooms    int       `json:"bathrooms,omitempty"`
	SquareFeet   int       `json:"square_feet,omitempty"`
	Status       string    `json:"status,omitempty"`
	Details      *Property `json:"property_details,omitempty"`
}

// PropertiesService covers the /properties/ resource.
type PropertiesService struct {
	client *Client
}

func (c *Client) Properties() *PropertiesService {
	return &PropertiesService{client: c}
}

func (s *PropertiesService) List(ctx context.Context) ([]Property, error) {
	var out []Property
	if err := s.client.get(ctx, "/properties/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PropertiesService) Get(ctx context.Context, id int) (*Property, error) {
	var out Property
	if err := s.client.get(ctx, fmt.Sprintf("/properties/%d/", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PropertiesService) Create(ctx context.Context, p Property) (*Property, error) {
	var out Property
	if err := s.client.post(ctx, "/properties/", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PropertiesService) Update(ctx context.Context, id int, p Property) (*Property, error) {
	var out Property
	if err := s.client.put(ctx, fmt.Sprintf("/properties/%d/", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PropertiesService) Delete(ctx context.Context, id int) error {
	return s.client.delete(ctx, fmt.Sprintf("/properties/%d/", id))
}

// UnitsService covers the /units/ resource.
type UnitsService struct {
	client *Client
}

func (c *Client) Units() *UnitsService {
	return &UnitsService{client: c}
}

func (s *UnitsService) List(ctx context.Context) ([]Unit, error) {
	var out []Unit
	if err := s.client.get(ctx, "/units/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *UnitsService) Get(ctx context.Context, id int) (*Unit, error) {
	var out Unit
	if err := s.client.get(ctx, fmt.Sprintf("/units/%d/", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UnitsService) Create(ctx context.Context, u Unit) (*Unit, error) {
	var out Unit
	if err := s.client.post(ctx, "/units/", u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UnitsService) Update(ctx context.Context, id int, u Unit) (*Unit, error) {
	var out Unit
	if err := s.client.put(ctx, fmt.Sprintf("/units/%d/", id), u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UnitsService) Delete(ctx context.Context, id int) error {
	return s.client.delete(ctx, fmt.Sprintf("/units/%d/", id))
}
