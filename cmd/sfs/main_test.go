package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// runApp runs one command against a directory store in `dir` and returns
// what it wrote to stdout.
func runApp(t *testing.T, dir string, stdin string, args ...string) string {
	t.Setenv("SFS_CONFIG_FILE", filepath.Join(dir, "missing.yaml"))
	t.Setenv("SFS_DEVICE", "")
	t.Setenv("SFS_STORE", StoreDir)
	t.Setenv("SFS_SNAPSHOT", "test-disk")
	t.Setenv("SFS_SNAPSHOT_DIR", filepath.Join(dir, "snapshots"))

	var stdout bytes.Buffer
	app := newApp(strings.NewReader(stdin), &stdout)
	if err := app.Run(append([]string{appName}, args...)); err != nil {
		t.Fatalf("%s %s: unexpected err: %v", appName, strings.Join(args, " "), err)
	}
	return stdout.String()
}

func TestPut_CreatesThenOverwrites(t *testing.T) {
	dir := t.TempDir()
	runApp(t, dir, "", "format")

	runApp(t, dir, "hello", "put", "greeting")
	if found := runApp(t, dir, "", "cat", "greeting"); found != "hello" {
		t.Fatalf("cat: wanted `hello`; found `%s`", found)
	}

	runApp(t, dir, "goodbye", "put", "greeting")
	if found := runApp(t, dir, "", "cat", "greeting"); found != "goodbye" {
		t.Fatalf("cat: wanted `goodbye`; found `%s`", found)
	}

	// overwriting reuses the existing entry
	listing := runApp(t, dir, "", "ls")
	if n := strings.Count(listing, "greeting"); n != 1 {
		t.Fatalf("ls: wanted `1` entry for `greeting`; found `%d`:\n%s", n, listing)
	}
}

func TestPut_ShorterInputKeepsTail(t *testing.T) {
	dir := t.TempDir()
	runApp(t, dir, "", "format")
	runApp(t, dir, "hello", "put", "greeting")
	runApp(t, dir, "HI", "put", "greeting")

	if found := runApp(t, dir, "", "cat", "greeting"); found != "HIllo" {
		t.Fatalf("cat: wanted `HIllo`; found `%s`", found)
	}
}

func TestSnapshots_List(t *testing.T) {
	dir := t.TempDir()
	runApp(t, dir, "", "format")

	if found := runApp(t, dir, "", "snapshots", "ls"); found != "test-disk\n" {
		t.Fatalf("snapshots ls: wanted `test-disk`; found `%s`", found)
	}
}
