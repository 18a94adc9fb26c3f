package stub_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/propdesk/propdesk/api"
	"github.com/propdesk/propdesk/session"
	"github.com/propdesk/propdesk/session/storefake"
	"github.com/propdesk/propdesk/stub"
	"github.com/propdesk/propdesk/token"
)

func newStubClient(t *testing.T, s *stub.Server) (*api.Client, *storefake.FakeStore, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	store := storefake.NewFakeStore()
	return api.New(srv.URL, store), store, srv
}

func TestStub_LoginAndBrowse(t *testing.T) {
	client, store, _ := newStubClient(t, stub.New())

	claims, err := client.Login(context.Background(), "manager", "manager123")
	require.NoError(t, err)
	require.Equal(t, token.RoleManager, claims.Role)
	require.Equal(t, "manager", claims.Username)

	properties, err := client.Properties().List(context.Background())
	require.NoError(t, err)
	require.Len(t, properties, 2)

	units, err := client.Units().List(context.Background())
	require.NoError(t, err)
	require.Len(t, units, 3)

	stats, err := client.DashboardStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalProperties)
	require.Equal(t, 3, stats.TotalUnits)
	require.Equal(t, 1, stats.OccupiedUnits)
	require.InDelta(t, 33.3, stats.OccupancyRate, 0.1)
	require.InDelta(t, 16250.0, stats.TotalRevenue, 0.01)

	// The cached role attribute mirrors the token claim.
	role, _ := store.Get(session.KeyRole)
	require.Equal(t, "MANAGER", role)
}

func TestStub_RejectsBadCredentials(t *testing.T) {
	client, store, _ := newStubClient(t, stub.New())

	_, err := client.Login(context.Background(), "manager", "wrong")
	require.ErrorIs(t, err, api.CredentialsRejectedErr)
	require.Zero(t, store.Len())
}

func TestStub_ExpiredAccessTokenIsRefreshedTransparently(t *testing.T) {
	s := stub.New()
	client, store, _ := newStubClient(t, s)

	_, err := client.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	// Swap in an already-expired access token, keeping the valid refresh
	// token: the next call must 401, refresh, and replay unseen.
	user, ok := s.FindUser("admin")
	require.True(t, ok)
	expired, err := s.Issuer().IssueAccess(user, -time.Minute)
	require.NoError(t, err)
	refresh, _ := store.Get(session.KeyRefreshToken)
	require.NoError(t, store.Set(expired, refresh))

	properties, err := client.Properties().List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, properties)

	// A fresh access token replaced the expired one; refresh is unrotated.
	access, _ := store.Get(session.KeyAccessToken)
	require.NotEqual(t, expired, access)
	refreshAfter, _ := store.Get(session.KeyRefreshToken)
	require.Equal(t, refresh, refreshAfter)
}

func TestStub_InvalidRefreshTokenTerminatesSession(t *testing.T) {
	s := stub.New()
	client, store, _ := newStubClient(t, s)

	_, err := client.Login(context.Background(), "tenant", "tenant123")
	require.NoError(t, err)

	user, ok := s.FindUser("tenant")
	require.True(t, ok)
	expired, err := s.Issuer().IssueAccess(user, -time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.Set(expired, "garbage-refresh"))

	_, err = client.Cheques().List(context.Background())
	require.ErrorIs(t, err, api.SessionExpiredErr)
	require.Zero(t, store.Len())
}

func TestStub_ResourceLifecycle(t *testing.T) {
	client, _, _ := newStubClient(t, stub.New(stub.WithoutSeedData()))

	_, err := client.Login(context.Background(), "owner", "owner123")
	require.NoError(t, err)

	ctx := context.Background()

	created, err := client.Properties().Create(ctx, api.Property{Name: "Palm View", Address: "JBR", City: "Dubai", PropertyType: api.PropertyTypeResidential})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	fetched, err := client.Properties().Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Palm View", fetched.Name)

	fetched.Name = "Palm View Residences"
	updated, err := client.Properties().Update(ctx, created.ID, *fetched)
	require.NoError(t, err)
	require.Equal(t, "Palm View Residences", updated.Name)

	unit, err := client.Units().Create(ctx, api.Unit{Property: created.ID, UnitNumber: "P-101", UnitType: "2BHK", Status: api.UnitStatusVacant})
	require.NoError(t, err)

	ticket, err := client.Maintenance().Create(ctx, api.MaintenanceTicket{Unit: unit.ID, Title: "Leaking tap", Priority: api.PriorityLow})
	require.NoError(t, err)

	moved, err := client.Maintenance().SetStatus(ctx, ticket.ID, api.TicketStatusInProgress)
	require.NoError(t, err)
	require.Equal(t, api.TicketStatusInProgress, moved.Status)
	require.Equal(t, "Leaking tap", moved.Title)

	require.NoError(t, client.Properties().Delete(ctx, created.ID))
	_, err = client.Properties().Get(ctx, created.ID)
	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, 404, statusErr.StatusCode)
}

func TestStub_ChatAndProfile(t *testing.T) {
	client, _, _ := newStubClient(t, stub.New())

	_, err := client.Login(context.Background(), "tenant", "tenant123")
	require.NoError(t, err)

	reply, err := client.Chat(context.Background(), "when is my next cheque due?")
	require.NoError(t, err)
	require.Contains(t, reply, "when is my next cheque due?")

	profile, err := client.Tenants().Profile(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Fatima Hassan", profile.Name)
}
