package tool

import (
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

// QuickPingProbe sends a single unprivileged ping and reports whether the host
// answered within the timeout. Used by the health endpoint to check upstream
// reachability.
func QuickPingProbe(host string, timeout time.Duration) bool {
	pinger, err := probing.NewPinger(host)
	if err != nil {
		DefaultLogger.Debugf("QuickPingProbe: failed to create pinger for %s: %v", host, err)
		return false
	}
	pinger.Count = 1
	pinger.Timeout = timeout
	pinger.SetPrivileged(false)
	if err := pinger.Run(); err != nil {
		DefaultLogger.Debugf("QuickPingProbe: ping %s failed: %v", host, err)
		return false
	}
	return pinger.Statistics().PacketsRecv > 0
}
