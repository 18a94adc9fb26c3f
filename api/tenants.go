package api

import (
	"context"
	"fmt"
	"time"
)

// Payment frequencies the lease contract supports.
const (
	PaymentFrequencyOneCheque     = "1_CHEQUE"
	PaymentFrequencyFourCheques   = "4_CHEQUES"
	PaymentFrequencyTwelveCheques = "12_CHEQUES"
)

type Tenant struct {
	ID             int       `json:"id,omitempty"`
	User           int       `json:"user,omitempty"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Nationality    string    `json:"nationality,omitempty"`
	EmiratesID     string    `json:"emirates_id,omitempty"`
	PassportNumber string    `json:"passport_number,omitempty"`
	EjariNumber    string    `json:"ejari_number,omitempty"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
	ActiveLease    *Lease    `json:"active_lease,omitempty"`
}

type Lease struct {
	ID               int    `json:"id,omitempty"`
	Tenant           int    `json:"tenant"`
	Unit             int    `json:"unit"`
	UnitDetails      *Unit  `json:"unit_details,omitempty"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	RentAmount       string `json:"rent_amount"`
	PaymentFrequency string `json:"payment_frequency,omitempty"`
	IsActive         bool   `json:"is_active,omitempty"`
	ContractFile     string `json:"contract_file,omitempty"`
}

// TenantsService covers the /tenants/ resource.
type TenantsService struct {
	client *Client
}

func (c *Client) Tenants() *TenantsService {
	return &TenantsService{client: c}
}

func (s *TenantsService) List(ctx context.Context) ([]Tenant, error) {
	var out []Tenant
	if err := s.client.get(ctx, "/tenants/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TenantsService) Get(ctx context.Context, id int) (*Tenant, error) {
	var out Tenant
	if err := s.client.get(ctx, fmt.Sprintf("/tenants/%d/", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TenantsService) Create(ctx context.Context, t Tenant) (*Tenant, error) {
	var out Tenant
	if err := s.client.post(ctx, "/tenants/", t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TenantsService) Update(ctx context.Context, id int, t Tenant) (*Tenant, error) {
	var out Tenant
	if err := s.client.put(ctx, fmt.Sprintf("/tenants/%d/", id), t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TenantsService) Delete(ctx context.Context, id int) error {
	return s.client.delete(ctx, fmt.Sprintf("/tenants/%d/", id))
}

// Profile returns the tenant profile bound to the authenticated user
// (GET /me/).
func (s *TenantsService) Profile(ctx context.Context) (*Tenant, error) {
	var out Tenant
	if err := s.client.get(ctx, "/me/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LeasesService covers the /leases/ resource.
type LeasesService struct {
	client *Client
}

func (c *Client) Leases() *LeasesService {
	return &LeasesService{client: c}
}

func (s *LeasesService) List(ctx context.Context) ([]Lease, error) {
	var out []Lease
	if err := s.client.get(ctx, "/leases/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *LeasesService) Get(ctx context.Context, id int) (*Lease, error) {
	var out Lease
	if err := s.client.get(ctx, fmt.Sprintf("/leases/%d/", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *LeasesService) Create(ctx context.Context, l Lease) (*Lease, error) {
	var out Lease
	if err := s.client.post(ctx, "/leases/", l, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *LeasesService) Update(ctx context.Context, id int, l Lease) (*Lease, error) {
	var out Lease
	if err := s.client.put(ctx, fmt.Sprintf("/leases/%d/", id), l, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *LeasesService) Delete(ctx context.Context, id int) error {
	return s.client.delete(ctx, fmt.Sprintf("/leases/%d/", id))
}
