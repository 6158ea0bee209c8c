package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("the go tool is required to build the extension")
	}
	tempDir := t.TempDir()

	// 1. Create stmt-hello, an extension printing the settings it received.
	helloCmdSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("args=%%v\n", os.Args[1:])
	os.Exit(3)
}
`, EnvLayout, EnvLayout, EnvVerbose, EnvVerbose)

	helloCmdPath := filepath.Join(tempDir, "stmt-hello")
	srcFile := helloCmdPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloCmdSource), 0644); err != nil {
		t.Fatalf("Failed to write stmt-hello source: %v", err)
	}
	build := exec.Command("go", "build", "-o", helloCmdPath, srcFile)
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("Failed to compile stmt-hello: %v", err)
	}

	// 2. Compile the main stmt binary.
	stmtBinaryPath := filepath.Join(tempDir, "stmt")
	build = exec.Command("go", "build", "-o", stmtBinaryPath, "../stmt")
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("Failed to compile stmt binary: %v", err)
	}

	// 3. Call stmt with global flags and the extension subcommand.
	stmtCmd := exec.Command(stmtBinaryPath, "-layout", "2017", "-v", "debug", "hello", "world")
	stmtCmd.Env = []string{"PATH=" + tempDir + string(os.PathListSeparator) + os.Getenv("PATH")}
	var stdout, stderr bytes.Buffer
	stmtCmd.Stdout = &stdout
	stmtCmd.Stderr = &stderr
	err := stmtCmd.Run()

	// 4. The exit code of the extension is the exit code of stmt.
	exitErr, ok := err.(*exec.ExitError)
	if !ok || exitErr.ExitCode() != 3 {
		t.Fatalf("stmt hello returned %v, want exit status 3\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	output := stdout.String()
	for _, want := range []string{EnvLayout + "=2017", EnvVerbose + "=debug", "args=[world]"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, but got:\n%s", want, output)
		}
	}
}

func TestRunExtensionNotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, code := RunExtension("missing", nil); found || code != 0 {
		t.Errorf("RunExtension(missing) = %v, %d, want false, 0", found, code)
	}
}
