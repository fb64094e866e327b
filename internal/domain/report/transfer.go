package report

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// TransferConfig holds the SFTP destination of the populated report.
type TransferConfig struct {
	Hostname   string
	Port       int
	Username   string
	Password   string
	RemotePath string
	KnownHosts string // Empty disables host key verification
	Timeout    time.Duration
}

// Address returns host:port for dialing; IPv6 hosts are bracketed.
func (t TransferConfig) Address() string {
	return net.JoinHostPort(t.Hostname, strconv.Itoa(t.Port))
}

// Validate is only called right before publishing.
func (t TransferConfig) Validate() error {
	var missing []string
	if t.Hostname == "" {
		missing = append(missing, "SFTP_HOSTNAME")
	}
	if t.Username == "" {
		missing = append(missing, "SFTP_USERNAME")
	}
	if t.Password == "" {
		missing = append(missing, "SFTP_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s not set", strings.Join(missing, ", "))
	}
	return nil
}
