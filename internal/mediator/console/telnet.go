package console

import (
	"context"
	"fmt"
	"net"
	"time"
)

const dialTimeout = 10 * time.Second

// dialTelnet opens a plain TCP connection to a node's console port. The
// console protocol is treated as an opaque byte stream: no IAC option
// negotiation is performed beyond what arrives unsolicited in the byte
// stream (see DESIGN.md for why no telnet client library is used here).
func dialTelnet(ctx context.Context, host string, port int) (net.Conn, error) {
	d := net.Dialer{Timeout: dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return nil, err
	}
	return conn, nil
}
