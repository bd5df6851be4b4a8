package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Validate reports whether rawURL is safe to hand to the system opener.
func Validate(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("link has no URL")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}
	return nil
}

// Open launches the platform browser on rawURL without waiting for it.
func Open(rawURL string) error {
	if err := Validate(rawURL); err != nil {
		return err
	}
	return opener(rawURL).Start()
}

func opener(rawURL string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", rawURL)
	case "windows":
		// rundll32 avoids cmd.exe interpreting the URL
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return exec.Command("xdg-open", rawURL)
	}
}
