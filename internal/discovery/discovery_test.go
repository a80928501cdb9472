package discovery

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	svc, err := newService("studio", 8080, []net.IP{net.IPv4(192, 168, 1, 20)})
	require.NoError(t, err)
	require.Equal(t, "studio", svc.Instance)
	require.Equal(t, ServiceType, svc.Service)
	require.Equal(t, 8080, svc.Port)
	require.Equal(t, []string{"drawshapes", "path=/ws/canvas"}, svc.TXT)
}

func TestNewServiceDefaultsToHostname(t *testing.T) {
	svc, err := newService("", 9000, []net.IP{net.IPv4(10, 0, 0, 2)})
	require.NoError(t, err)
	require.NotEmpty(t, svc.Instance)
}
