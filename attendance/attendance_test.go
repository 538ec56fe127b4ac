package attendance_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevendraPaulmerchants/Sprenza/attendance"
	"github.com/DevendraPaulmerchants/Sprenza/client"
	"github.com/DevendraPaulmerchants/Sprenza/client/auth/mock"
)

func newService(t *testing.T, options ...attendance.Option) (*attendance.Service, *mock.HTTPTestAttendanceServer) {
	t.Helper()
	server, err := mock.NewHTTPTestAttendanceServer()
	require.NoError(t, err)
	t.Cleanup(server.Close)
	cli, err := client.New(server.URL)
	require.NoError(t, err)
	credential, err := server.IssueCredential()
	require.NoError(t, err)
	require.NoError(t, cli.SaveCredential(context.Background(), credential))
	return attendance.New(cli, options...), server
}

func selfie() attendance.Image {
	return attendance.Image{Data: []byte{0xff, 0xd8, 0xff, 0xe0, 0x00}}
}

func TestService_PunchCycle(t *testing.T) {
	clock := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	service, server := newService(t, attendance.WithClock(func() time.Time { return clock }))
	ctx := context.Background()

	today, err := service.Today(ctx)
	require.NoError(t, err)
	assert.False(t, today.IsCheckedIn)

	record, err := service.PunchIn(ctx, &attendance.Punch{Latitude: 12.9716, Longitude: 77.5946, Address: "MG Road, Bengaluru", Image: selfie()})
	require.NoError(t, err)
	assert.Equal(t, "PRESENT", record.Status)
	assert.NotNil(t, record.PunchIn)
	assert.Equal(t, 12.9716, record.Location.Latitude)
	assert.Equal(t, "selfie_1792229400000.jpg", record.Image)

	today, err = service.Today(ctx)
	require.NoError(t, err)
	assert.True(t, today.IsCheckedIn)
	assert.False(t, today.IsCheckedOut)
	require.NotNil(t, today.Location)
	assert.Equal(t, "MG Road, Bengaluru", today.Location.Address)

	server.ExpireAccessTokens()
	record, err = service.PunchOut(ctx, &attendance.Punch{Latitude: 12.97, Longitude: 77.59, Address: "Indiranagar", Image: attendance.Image{Name: "out.png", ContentType: "image/png", Data: []byte{1}}})
	require.NoError(t, err)
	assert.NotNil(t, record.PunchOut)
	assert.Equal(t, "out.png", record.Image)
	assert.EqualValues(t, 1, server.RefreshCalls.Load())

	history, err := service.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Indiranagar", history[0].Location.Address)
}

func TestService_ServerRejection(t *testing.T) {
	service, _ := newService(t)
	_, err := service.PunchOut(context.Background(), &attendance.Punch{Latitude: 1, Longitude: 2, Address: "x", Image: selfie()})
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Not punched in today", apiErr.Message)
}

func TestService_LocalValidation(t *testing.T) {
	service, server := newService(t)
	ctx := context.Background()
	testCases := []struct {
		description string
		punch       *attendance.Punch
	}{
		{description: "nil punch"},
		{description: "no image", punch: &attendance.Punch{Address: "x"}},
		{description: "blank address", punch: &attendance.Punch{Address: "  ", Image: selfie()}},
	}
	for _, testCase := range testCases {
		_, err := service.PunchIn(ctx, testCase.punch)
		assert.Error(t, err, testCase.description)
	}
	assert.Empty(t, server.Records())
}

func TestService_SessionExpired(t *testing.T) {
	service, server := newService(t)
	server.ExpireAccessTokens()
	server.RevokeRefreshTokens()
	_, err := service.History(context.Background())
	assert.ErrorIs(t, err, client.ErrSessionExpired)
}
