package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const testPIN = "4321"

func TestEndToEndWorkflow(t *testing.T) {
	// 1. Locate the binary. Override with DAYBOOK_BIN_DIR, default ../../bin.
	binDir := os.Getenv("DAYBOOK_BIN_DIR")
	if binDir == "" {
		binDir = filepath.Join("..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)
	cliPath := filepath.Join(binDir, "daybook")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s; build it with 'go build -o bin/daybook ./cmd/daybook'", cliPath)
	}

	// 2. Isolate HOME so config, logs and the journal land in a temp dir.
	tempDir := t.TempDir()
	var cleanEnv []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "DAYBOOK_") {
			continue
		}
		cleanEnv = append(cleanEnv, e)
	}
	cleanEnv = append(cleanEnv,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("DAYBOOK_DATABASE=%s", filepath.Join(tempDir, "journal", "daybook.db")),
		"DAYBOOK_TIMEZONE=UTC",
	)

	// 3. Create the journal and an account.
	t.Log("Initializing journal...")
	runCmd(t, cliPath, cleanEnv, "init")
	runCmd(t, cliPath, cleanEnv, "setup", "--username", "sam", "--pin", testPIN, "--no-recovery")

	// 4. The journal is locked without the PIN.
	if out, err := tryCmd(cliPath, cleanEnv, "entry", "list"); err == nil {
		t.Fatalf("expected locked journal to refuse listing, got: %s", out)
	}

	lockedEnv := append(cleanEnv, "DAYBOOK_PIN="+testPIN)

	// 5. Write today's entry with moods and tags.
	t.Log("Writing entry...")
	runCmd(t, cliPath, lockedEnv, "entry", "write",
		"--title", "First light",
		"--content", "<p>Walked to the <b>river</b> before work.</p>",
		"--mood", "Happy", "--secondary", "Calm",
		"--tag", "Nature,Morning walk")

	out := runCmd(t, cliPath, lockedEnv, "entry", "list")
	if !strings.Contains(out, "First light") {
		t.Errorf("expected entry in list, got: %s", out)
	}

	// 6. Statistics as JSON.
	out = runCmd(t, cliPath, lockedEnv, "stats", "--format", "json")
	var stats struct {
		Entries       int `json:"entries"`
		CurrentStreak int `json:"current_streak"`
		TotalWords    int `json:"total_words"`
	}
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("failed to parse stats output: %v\n%s", err, out)
	}
	if stats.Entries != 1 || stats.CurrentStreak != 1 || stats.TotalWords != 6 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	// 7. Export to stdout keeps the markup out.
	out = runCmd(t, cliPath, lockedEnv, "export", "--format", "markdown", "-o", "-")
	if !strings.Contains(out, "Walked to the river before work.") || strings.Contains(out, "<b>") {
		t.Errorf("unexpected export: %s", out)
	}
	if !strings.Contains(out, "Morning walk") {
		t.Errorf("expected custom tag in export: %s", out)
	}

	// 8. Backups.
	t.Log("Creating backup...")
	runCmd(t, cliPath, cleanEnv, "backup", "create")
	out = runCmd(t, cliPath, cleanEnv, "backup", "list")
	if !strings.Contains(out, "daybook-") {
		t.Errorf("expected a backup in list, got: %s", out)
	}

	// 9. Health checks pass.
	out = runCmd(t, cliPath, cleanEnv, "doctor")
	if strings.Contains(out, "FAIL") {
		t.Errorf("doctor reported a failure: %s", out)
	}
}

func tryCmd(path string, env []string, args ...string) (string, error) {
	cmd := exec.Command(path, args...)
	cmd.Env = env
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String() + stderr.String(), err
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("command %s %v failed: %v\nstdout: %s\nstderr: %s", path, args, err, stdout.String(), stderr.String())
	}
	return stdout.String()
}
