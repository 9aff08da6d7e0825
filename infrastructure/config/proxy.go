package config

import (
	"net"
	"time"

	"github.com/btcsuite/go-socks/socks"
	"github.com/pkg/errors"
)

// DialFunc dials addr on the given network within timeout.
type DialFunc func(network, addr string, timeout time.Duration) (net.Conn, error)

// ProxyFlags holds the SOCKS5 proxy configuration used for outgoing
// connections.
type ProxyFlags struct {
	Proxy     string `long:"proxy" description:"Connect via SOCKS5 proxy (eg. 127.0.0.1:9050)"`
	ProxyUser string `long:"proxyuser" description:"Username for proxy server"`
	ProxyPass string `long:"proxypass" default-mask:"-" description:"Password for proxy server"`
}

// Dial returns the dial function for outgoing connections. The default is
// the standard net.DialTimeout function. When a proxy is specified, the dial
// function goes through the proxy.
func (proxyFlags *ProxyFlags) Dial() (DialFunc, error) {
	if proxyFlags.Proxy == "" {
		if proxyFlags.ProxyUser != "" || proxyFlags.ProxyPass != "" {
			return nil, errors.New("proxy credentials were given without a proxy")
		}
		return net.DialTimeout, nil
	}

	_, _, err := net.SplitHostPort(proxyFlags.Proxy)
	if err != nil {
		return nil, errors.Errorf("Proxy address '%s' is invalid: %s", proxyFlags.Proxy, err)
	}

	proxy := &socks.Proxy{
		Addr:     proxyFlags.Proxy,
		Username: proxyFlags.ProxyUser,
		Password: proxyFlags.ProxyPass,
	}
	return proxy.DialTimeout, nil
}
