// Package discovery advertises drawshapes servers on the local network
// over mDNS and finds them again.
package discovery

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

const ServiceType = "_drawshapes._tcp"

// Server is a drawshapes server found on the local network.
type Server struct {
	Name string
	Addr string // host:port
	Info []string
}

func newService(instance string, port int, ips []net.IP) (*mdns.MDNSService, error) {
	if instance == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("could not get hostname: %w", err)
		}
		instance = host
	}
	info := []string{"drawshapes", "path=/ws/canvas"}
	service, err := mdns.NewMDNSService(instance, ServiceType, "", "", port, ips, info)
	if err != nil {
		return nil, fmt.Errorf("create mDNS service: %w", err)
	}
	return service, nil
}

// Advertise announces a server listening on port. Close the returned
// server with Shutdown.
func Advertise(instance string, port int) (*mdns.Server, error) {
	service, err := newService(instance, port, nil)
	if err != nil {
		return nil, err
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("start mDNS server: %w", err)
	}
	return server, nil
}

// Browse queries the network for servers until timeout and calls found for
// each IPv4 answer.
func Browse(ctx context.Context, timeout time.Duration, found func(Server)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(Server{
				Name: e.Name,
				Addr: net.JoinHostPort(e.AddrV4.String(), fmt.Sprint(e.Port)),
				Info: e.InfoFields,
			})
		}
	}()

	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.QueryContext(ctx, params)
	close(entries)
	<-done
	return err
}
