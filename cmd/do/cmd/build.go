package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"
)

func BuildCmd() *cobra.Command {
	var output string
	var goos, goarch string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the API server binary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return buildServer(output, goos, goarch)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "bin/server", "output path")
	cmd.Flags().StringVar(&goos, "os", "", "target GOOS (default: host)")
	cmd.Flags().StringVar(&goarch, "arch", "", "target GOARCH (default: host)")
	return cmd
}

// buildServer produces a static binary; the sqlite driver is pure Go so
// CGO stays off.
func buildServer(output, goos, goarch string) error {
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return err
	}

	env := append(os.Environ(), "CGO_ENABLED=0")
	if goos != "" {
		env = append(env, "GOOS="+goos)
	}
	if goarch != "" {
		env = append(env, "GOARCH="+goarch)
	}

	fmt.Printf("==> Building %s...\n", output)
	if err := runEnv(env, "go", "build", "-trimpath", "-ldflags", "-s -w", "-o", output, "./cmd/server"); err != nil {
		return fmt.Errorf("go build failed: %w", err)
	}

	if _, err := os.Stat("scripts/portia_agent.py"); err != nil {
		fmt.Println("warning: scripts/portia_agent.py not found; script mode will serve fallback plans")
	}

	fmt.Println("==> Done")
	return nil
}

func runEnv(env []string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Env = env
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
