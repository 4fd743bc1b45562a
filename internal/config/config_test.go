// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate keeps the loader away from any real config on the test host.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	wd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	s, err := Load(nil, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Language != "en" {
		t.Errorf("language = %q, want en", s.Language)
	}
	if s.AccountsFile != "" || s.SSHDir != "" || s.Debug {
		t.Errorf("unexpected non-default settings: %+v", s)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "git-id.yaml")
	content := "language: de\nssh_dir: /tmp/keys\ndebug: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(nil, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Language != "de" {
		t.Errorf("language = %q, want de", s.Language)
	}
	if s.SSHDir != "/tmp/keys" {
		t.Errorf("ssh_dir = %q", s.SSHDir)
	}
	if !s.Debug {
		t.Errorf("debug not picked up")
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	isolate(t)
	_, err := Load(nil, filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("missing explicit config file should be an error")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "git-id.yaml")
	if err := os.WriteFile(path, []byte("language: de\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GIT_ID_LANGUAGE", "en")

	s, err := Load(nil, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Language != "en" {
		t.Errorf("language = %q, env should win over file", s.Language)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "git-id.yaml")
	if err := os.WriteFile(path, []byte("language: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(nil, path); err == nil {
		t.Fatal("malformed config should be an error")
	}
}
