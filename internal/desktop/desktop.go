// Package desktop wraps the desktop tools glance talks to: the status bar
// and the Wayland clipboard.
package desktop

import (
	"context"
	"fmt"
	"os/exec"
)

// SignalBar asks waybar to re-poll the module bound to signal n. Delivery is
// best-effort: a missing bar or pkill binary is not an error. n <= 0 disables
// signalling.
func SignalBar(ctx context.Context, n int) {
	if n <= 0 {
		return
	}
	cmd := exec.CommandContext(ctx, "pkill", fmt.Sprintf("-RTMIN+%d", n), "waybar")
	_ = cmd.Run()
}

// Copy places path on the clipboard via wl-copy.
func Copy(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, "wl-copy", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("wl-copy: %w: %s", err, out)
	}
	return nil
}
