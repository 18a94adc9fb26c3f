package api

import "context"

// DashboardStats mirrors GET /dashboard/stats/.
type DashboardStats struct {
	TotalProperties    int     `json:"total_properties"`
	TotalUnits         int     `json:"total_units"`
	OccupiedUnits      int     `json:"occupied_units"`
	VacantUnits        int     `json:"vacant_units"`
	OccupancyRate      float64 `json:"occupancy_rate"`
	ActiveTenants      int     `json:"active_tenants"`
	PendingCheques     int     `json:"pending_cheques"`
	TotalPendingAmount float64 `json:"total_pending_amount"`
	TotalRevenue       float64 `json:"total_revenue"`
	BouncedCheques     int     `json:"bounced_cheques"`
	BouncedAmount      float64 `json:"bounced_amount"`
}

// DashboardStats fetches the admin dashboard analytics.
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats
	if err := c.get(ctx, "/dashboard/stats/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
