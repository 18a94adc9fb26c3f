package api

import (
	"context"
	"fmt"
	"time"
)

// Maintenance ticket priorities and statuses.
const (
	PriorityLow       = "LOW"
	PriorityMedium    = "MEDIUM"
	PriorityHigh      = "HIGH"
	PriorityEmergency = "EMERGENCY"

	TicketStatusOpen       = "OPEN"
	TicketStatusInProgress = "IN_PROGRESS"
	TicketStatusResolved   = "RESOLVED"
	TicketStatusClosed     = "CLOSED"
)

type MaintenanceTicket struct {
	ID              int       `json:"id,omitempty"`
	Unit            int       `json:"unit"`
	UnitNumber      string    `json:"unit_number,omitempty"`
	PropertyName    string    `json:"property_name,omitempty"`
	PropertyAddress string    `json:"property_address,omitempty"`
	Tenant          int       `json:"tenant,omitempty"`
	TenantName      string    `json:"tenant_name,omitempty"`
	TenantPhone     string    `json:"tenant_phone,omitempty"`
	AssignedTo      int       `json:"assigned_to,omitempty"`
	AssignedToName  string    `json:"assigned_to_name,omitempty"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Priority        string    `json:"priority,omitempty"`
	Status          string    `json:"status,omitempty"`
	Image           string    `json:"image,omitempty"`
	Source          string    `json:"source,omitempty"`
	ResolutionNotes string    `json:"resolution_notes,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
}

// MaintenanceService covers the /maintenance/ resource.
type MaintenanceService struct {
	client *Client
}

func (c *Client) Maintenance() *MaintenanceService {
	return &MaintenanceService{client: c}
}

func (s *MaintenanceService) List(ctx context.Context) ([]MaintenanceTicket, error) {
	var out []MaintenanceTicket
	if err := s.client.get(ctx, "/maintenance/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MaintenanceService) Get(ctx context.Context, id int) (*MaintenanceTicket, error) {
	var out MaintenanceTicket
	if err := s.client.get(ctx, fmt.Sprintf("/maintenance/%d/", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *MaintenanceService) Create(ctx context.Context, ticket MaintenanceTicket) (*MaintenanceTicket, error) {
	var out MaintenanceTicket
	if err := s.client.post(ctx, "/maintenance/", ticket, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *MaintenanceService) Update(ctx context.Context, id int, ticket MaintenanceTicket) (*MaintenanceTicket, error) {
	var out MaintenanceTicket
	if err := s.client.put(ctx, fmt.Sprintf("/maintenance/%d/", id), ticket, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetStatus moves a ticket through its workflow without resending the whole
// record.
func (s *MaintenanceService) SetStatus(ctx context.Context, id int, status string) (*MaintenanceTicket, error) {
	var out MaintenanceTicket
	payload := map[string]string{"status": status}
	if err := s.client.patch(ctx, fmt.Sprintf("/maintenance/%d/", id), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *MaintenanceService) Delete(ctx context.Context, id int) error {
	return s.client.delete(ctx, fmt.Sprintf("/maintenance/%d/", id))
}
