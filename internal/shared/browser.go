package shared

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

var (
	getRuntime = func() string { return runtime.GOOS }

	// launch starts the opener and reaps it in the background.
	launch = func(cmd *exec.Cmd) error {
		if err := cmd.Start(); err != nil {
			return err
		}
		go func() { _ = cmd.Wait() }()
		return nil
	}
)

// browserCommand returns the opener program and arguments for goos.
func browserCommand(goos, url string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{url}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// OpenBrowser plays a generated video by handing its URL to the system browser.
//
// The opener is bound to ctx, so it is killed if ctx ends before it exits.
func OpenBrowser(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	name, args, err := browserCommand(getRuntime(), url)
	if err != nil {
		return err
	}

	if err := launch(exec.CommandContext(ctx, name, args...)); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
