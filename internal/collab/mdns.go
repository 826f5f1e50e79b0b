package collab

import (
	"fmt"
	"os"

	"github.com/hashicorp/mdns"
)

const serviceType = "_coursecanvas._tcp"

// Advertise publishes this host's session on the local network. The caller
// shuts the returned server down when the session ends.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}
	service, err := mdns.NewMDNSService(host, serviceType, "", "", port, nil, []string{"coursecanvas"})
	if err != nil {
		return nil, fmt.Errorf("create mdns service: %w", err)
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("start mdns server: %w", err)
	}
	return server, nil
}

// Browse looks up advertised sessions, calling found with host:port for
// each.
func Browse(found func(addr string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	go func() {
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port))
		}
	}()
	if err := mdns.Lookup(serviceType, entries); err != nil {
		return fmt.Errorf("mdns lookup: %w", err)
	}
	return nil
}
