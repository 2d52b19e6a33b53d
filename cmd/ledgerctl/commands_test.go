package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"donationledger/internal/domain"
)

func TestFormatBag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "-"},
		{"5x", "5 x"},
		{"10000uatom 1234567x", "10,000 uatom, 1,234,567 x"},
	}
	for _, tc := range tests {
		bag, err := domain.ParseCoinBag(tc.in)
		if err != nil {
			t.Fatalf("ParseCoinBag(%q): %v", tc.in, err)
		}
		if got := formatBag(bag); got != tc.want {
			t.Fatalf("formatBag(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"init", "totals", "donations", "balance"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("command %q not registered: %v", name, err)
		}
	}
}

func runCtl(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommandsShareTheFileStore(t *testing.T) {
	dir := t.TempDir()

	out, err := runCtl(t, "init", "--database-url=", "--data-dir", dir, "--owner", "owner", "--fee-collector", "fees")
	if err != nil {
		t.Fatalf("init error: %v", err)
	}
	if !strings.Contains(out, "action: instantiate") {
		t.Fatalf("init output = %q", out)
	}

	_, err = runCtl(t, "init", "--database-url=", "--data-dir", dir, "--owner", "other", "--fee-collector", "fees")
	if !errors.Is(err, domain.ErrAlreadyInitialized) {
		t.Fatalf("second init error = %v, want ErrAlreadyInitialized", err)
	}

	out, err = runCtl(t, "totals", "project-p", "--database-url=", "--data-dir", dir)
	if err != nil {
		t.Fatalf("totals error: %v", err)
	}
	if !strings.Contains(out, "raw:     -") {
		t.Fatalf("totals output = %q", out)
	}

	out, err = runCtl(t, "balance", "owner", "--database-url=", "--data-dir", dir)
	if err != nil {
		t.Fatalf("balance error: %v", err)
	}
	if out != "owner: -\n" {
		t.Fatalf("balance output = %q", out)
	}
}

func TestCommandsNeedAStore(t *testing.T) {
	_, err := runCtl(t, "balance", "owner", "--database-url=", "--data-dir=")
	if err == nil || !strings.Contains(err.Error(), "--data-dir") {
		t.Fatalf("error = %v, want missing store error", err)
	}
}
