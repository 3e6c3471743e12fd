// Package netutil holds small network address helpers for the CLI.
package netutil

import (
	"errors"
	"net"
)

// LocalIPv4 - the first non-loopback, non-link-local IPv4 address of
// this machine; used for the server's "join me at" banner.
func LocalIPv4() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ip := ipnet.IP.To4()
		if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
			continue
		}
		return ip.String(), nil
	}
	return "", errors.New("netutil: no routable IPv4 address found")
}
