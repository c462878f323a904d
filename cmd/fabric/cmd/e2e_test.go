package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const demoDescription = `name: demo
regions: 2
bits:
  - {value: 1, region: 0, bl: "00", wl: "10"}
  - {value: 0, region: 0, bl: "01", wl: "10"}
  - {value: 1, region: 0, bl: "00", wl: "10"}
  - {value: 0, region: 1, bl: "1x", wl: "00"}
  - {value: 1, region: 1, bl: "1x", wl: "00"}
`

// runCommand executes the root command with captured stdout.
func runCommand(t *testing.T, args []string) (string, error) {
	t.Helper()

	// Capture stdout
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		buf.ReadFrom(r)
		close(done)
	}()

	// Reset flags to prevent accumulation between tests
	verbose = false
	writeProtocol = "standalone"
	writeOutput = ""
	verifyProtocol = "standalone"

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	w.Close()
	os.Stdout = old
	<-done

	return buf.String(), err
}

func writeDemoDescription(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := os.WriteFile(path, []byte(demoDescription), 0o644); err != nil {
		t.Fatalf("writing description: %v", err)
	}
	return path
}

func TestWriteE2E(t *testing.T) {
	desc := writeDemoDescription(t)

	tests := []struct {
		name     string
		protocol string
		want     string
	}{
		{"standalone", "standalone", "10101\n"},
		{"scan chain", "scan-chain", "10\n01\n1\n\n"},
		{"memory bank", "memory-bank", "00 10 11\n01 10 0\n1x 00 01\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.bit")
			_, err := runCommand(t, []string{"write", "-p", tt.protocol, "-o", out, desc})
			if err != nil {
				t.Fatalf("write failed: %v", err)
			}
			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatalf("reading output: %v", err)
			}
			if got := string(data); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteE2EStdout(t *testing.T) {
	desc := writeDemoDescription(t)

	out, err := runCommand(t, []string{"write", desc})
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if out != "10101\n" {
		t.Errorf("stdout = %q, want %q", out, "10101\n")
	}
}

func TestWriteE2EVerbose(t *testing.T) {
	desc := writeDemoDescription(t)
	out := filepath.Join(t.TempDir(), "out.bit")

	output, err := runCommand(t, []string{"write", "-v", "-p", "scan-chain", "-o", out, desc})
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !strings.Contains(output, "5 configuration bits") {
		t.Errorf("verbose output missing bit count:\n%s", output)
	}
}

func TestWriteE2EErrors(t *testing.T) {
	desc := writeDemoDescription(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown protocol", []string{"write", "-p", "quantum", desc}},
		{"missing description", []string{"write", filepath.Join(t.TempDir(), "nope.yaml")}},
		{"no args", []string{"write"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCommand(t, tt.args); err == nil {
				t.Error("expected error but got none")
			}
		})
	}
}

func TestInfoE2E(t *testing.T) {
	desc := writeDemoDescription(t)

	out, err := runCommand(t, []string{"info", desc})
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	for _, want := range []string{
		"Fabric: demo",
		"Configuration bits: 5",
		"Regions: 2",
		"scan-chain:  3 clock rows",
		"memory-bank: 3 address lines",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}
}

func TestVerifyE2E(t *testing.T) {
	desc := writeDemoDescription(t)
	out := filepath.Join(t.TempDir(), "bank.bit")

	if _, err := runCommand(t, []string{"write", "-p", "memory-bank", "-o", out, desc}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	output, err := runCommand(t, []string{"verify", "-p", "memory-bank", desc, out})
	if err != nil {
		t.Fatalf("verify failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "OK") {
		t.Errorf("verify output missing OK:\n%s", output)
	}

	// Corrupt one din bit; verify must fail and name the line.
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading bitstream: %v", err)
	}
	corrupted := strings.Replace(string(data), "00 10 11", "00 10 10", 1)
	if err := os.WriteFile(out, []byte(corrupted), 0o644); err != nil {
		t.Fatalf("writing corrupted bitstream: %v", err)
	}

	output, err = runCommand(t, []string{"verify", "-p", "memory-bank", desc, out})
	if err == nil {
		t.Fatal("verify of a corrupted bitstream should fail")
	}
	if !strings.Contains(output, "line 1") {
		t.Errorf("verify output missing mismatch line:\n%s", output)
	}
}

func TestExampleE2E(t *testing.T) {
	out, err := runCommand(t, []string{"example"})
	if err != nil {
		t.Fatalf("example failed: %v", err)
	}
	if !strings.Contains(out, "name: demo") || !strings.Contains(out, "bits:") {
		t.Errorf("example output is not a description:\n%s", out)
	}

	// The emitted description must parse and serialize.
	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		t.Fatalf("writing description: %v", err)
	}
	if _, err := runCommand(t, []string{"write", "-p", "memory-bank", path}); err != nil {
		t.Fatalf("writing emitted example failed: %v", err)
	}
}
