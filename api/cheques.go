package api

import (
	"context"
	"fmt"
	"time"
)

// Cheque lifecycle statuses.
const (
	ChequeStatusPending   = "PENDING"
	ChequeStatusDeposited = "DEPOSITED"
	ChequeStatusCleared   = "CLEARED"
	ChequeStatusBounced   = "BOUNCED"
)

type Cheque struct {
	ID           int       `json:"id,omitempty"`
	Tenant       int       `json:"tenant"`
	TenantName   string    `json:"tenant_name,omitempty"`
	Lease        int       `json:"lease,omitempty"`
	UnitNumber   string    `json:"unit_number,omitempty"`
	BankName     string    `json:"bank_name,omitempty"`
	Amount       string    `json:"amount"`
	ChequeNumber string    `json:"cheque_number"`
	ChequeDate   string    `json:"cheque_date"`
	Status       string    `json:"status,omitempty"`
	Image        string    `json:"image,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// ChequesService covers the /cheques/ resource.
type ChequesService struct {
	client *Client
}

func (c *Client) Cheques() *ChequesService {
	return &ChequesService{client: c}
}

func (s *ChequesService) List(ctx context.Context) ([]Cheque, error) {
	var out []Cheque
	if err := s.client.get(ctx, "/cheques/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ChequesService) Get(ctx context.Context, id int) (*Cheque, error) {
	var out Cheque
	if err := s.client.get(ctx, fmt.Sprintf("/cheques/%d/", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ChequesService) Create(ctx context.Context, ch Cheque) (*Cheque, error) {
	var out Cheque
	if err := s.client.post(ctx, "/cheques/", ch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetStatus advances a cheque through its lifecycle (deposit, clear, bounce).
func (s *ChequesService) SetStatus(ctx context.Context, id int, status string) (*Cheque, error) {
	var out Cheque
	payload := map[string]string{"status": status}
	if err := s.client.patch(ctx, fmt.Sprintf("/cheques/%d/", id), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ChequesService) Delete(ctx context.Context, id int) error {
	return s.client.delete(ctx, fmt.Sprintf("/cheques/%d/", id))
}
