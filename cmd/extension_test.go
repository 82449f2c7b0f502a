package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestRunExtension(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extension script requires a posix shell")
	}
	tempDir := t.TempDir()
	out := filepath.Join(tempDir, "out.txt")

	script := "#!/bin/sh\n" +
		"echo \"$" + EnvConfigFile + "\" > " + out + "\n" +
		"echo \"$" + EnvVerbose + "\" >> " + out + "\n" +
		"echo \"$@\" >> " + out + "\n" +
		"exit 3\n"
	if err := os.WriteFile(filepath.Join(tempDir, "rr-hello"), []byte(script), 0o755); err != nil {
		t.Fatalf("Failed to write rr-hello: %v", err)
	}
	t.Setenv("PATH", tempDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	oldConfig := *configPath
	*configPath = filepath.Join(tempDir, "custom.toml")
	*Verbose = true
	t.Cleanup(func() { *configPath, *Verbose = oldConfig, false })

	found, code := RunExtension("hello", []string{"a", "b"})
	if !found {
		t.Fatalf("RunExtension() did not find rr-hello")
	}
	if code != 3 {
		t.Errorf("RunExtension() exit code = %d, want 3", code)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("extension did not run: %v", err)
	}
	want := *configPath + "\ntrue\na b\n"
	if string(data) != want {
		t.Errorf("extension saw %q, want %q", data, want)
	}
}

func TestRunExtension_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, _ := RunExtension("missing", nil); found {
		t.Errorf("RunExtension() found a missing extension")
	}
}

func TestCompletion(t *testing.T) {
	c := Completion()
	for _, cmd := range Commands {
		if _, ok := c.Sub[cmd.Command.Name()]; !ok {
			t.Errorf("Completion() misses %q", cmd.Command.Name())
		}
	}
	pay := c.Sub["pay"]
	for _, flag := range []string{"c", "r", "a", "account", "d", "note"} {
		if _, ok := pay.Flags[flag]; !ok {
			t.Errorf("Completion() misses pay -%s", flag)
		}
	}
}
