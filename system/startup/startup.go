package startup

import (
	"fmt"
	"os"
	"strings"
)

type ServiceOptions struct {
	UnitPath string
	Binary   string
	User     string
	Args     []string
}

// InstallService writes a systemd unit that starts the presence matrix once
// the network is online and restarts it on failure.
func InstallService(opts ServiceOptions) error {
	if opts.UnitPath == "" || opts.Binary == "" {
		return fmt.Errorf("unit path and binary are required")
	}
	user := opts.User
	if user == "" {
		user = "root"
	}

	execStart := opts.Binary
	if len(opts.Args) > 0 {
		execStart += " " + strings.Join(opts.Args, " ")
	}

	unit := fmt.Sprintf(`[Unit]
Description=Slack presence matrix
Wants=network-online.target
After=network-online.target

[Service]
Type=simple
User=%s
ExecStart=%s
Restart=on-failure
RestartSec=5s

[Install]
WantedBy=multi-user.target
`, user, execStart)

	return os.WriteFile(opts.UnitPath, []byte(unit), 0644)
}
