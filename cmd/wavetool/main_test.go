package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/oceanwaves/internal/config"
	"github.com/Faultbox/oceanwaves/internal/ocean"
	"github.com/Faultbox/oceanwaves/internal/wave"
	"github.com/Faultbox/oceanwaves/internal/wavestore"
)

// writeConfig creates a config file pointing at a fresh wave directory.
func writeConfig(t *testing.T, waves int) (configPath, waveDir string) {
	t.Helper()
	dir := t.TempDir()
	waveDir = filepath.Join(dir, "waves")
	configPath = filepath.Join(dir, "config.yaml")
	yaml := "simulation:\n  waves: " + strconv.Itoa(waves) + "\n  wave_dir: " + waveDir + "\nlogging:\n  level: error\n"
	if err := os.WriteFile(configPath, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	return configPath, waveDir
}

func runCmd(t *testing.T, command string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(command, args, &out)
	return out.String(), err
}

func TestInitAndShow(t *testing.T) {
	cfg, dir := writeConfig(t, 8)

	if _, err := runCmd(t, "init", "-config", cfg); err != nil {
		t.Fatalf("init: %v", err)
	}
	for i := 1; i <= 8; i++ {
		if _, err := os.Stat(filepath.Join(dir, strconv.Itoa(i)+".txt")); err != nil {
			t.Errorf("expected wave file %d: %v", i, err)
		}
	}

	out, err := runCmd(t, "show", "-config", cfg)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 9 {
		t.Errorf("expected header + 8 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "amplitude") {
		t.Errorf("expected header, got %q", lines[0])
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	cfg, _ := writeConfig(t, 2)

	if _, err := runCmd(t, "init", "-config", cfg); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := runCmd(t, "init", "-config", cfg); err == nil {
		t.Error("expected second init to fail without -force")
	}
	if _, err := runCmd(t, "init", "-config", cfg, "-force"); err != nil {
		t.Errorf("expected -force to overwrite, got %v", err)
	}
}

func TestInitRejectsTooFewWaves(t *testing.T) {
	cfg, dir := writeConfig(t, 4)

	_, err := runCmd(t, "init", "-config", cfg, "-n", "2")
	if !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "1.txt")); !os.IsNotExist(err) {
		t.Errorf("expected no wave files written, got %v", err)
	}

	if _, err := runCmd(t, "init", "-config", cfg, "-n", "6"); err != nil {
		t.Fatalf("expected extra waves to be accepted, got %v", err)
	}
	if _, err := runCmd(t, "show", "-config", cfg); err != nil {
		t.Errorf("expected show to load after init -n 6, got %v", err)
	}
}

func TestConfigPrintAndWrite(t *testing.T) {
	cfg, dir := writeConfig(t, 3)

	out, err := runCmd(t, "config", "-config", cfg)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "waves: 3") {
		t.Errorf("expected resolved simulation settings, got:\n%s", out)
	}

	dst := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if _, err := runCmd(t, "config", "-config", cfg, "-o", dst); err != nil {
		t.Fatalf("config -o: %v", err)
	}
	loaded, err := config.LoadFile(dst)
	if err != nil {
		t.Fatalf("loading written config: %v", err)
	}
	if loaded.Simulation.Waves != 3 || loaded.Simulation.WaveDir != dir {
		t.Errorf("expected 3 waves in %s, got %d in %s", dir, loaded.Simulation.Waves, loaded.Simulation.WaveDir)
	}
}

func TestConfigSave(t *testing.T) {
	cfg, _ := writeConfig(t, 5)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))
	t.Setenv("APPDATA", filepath.Join(home, "appdata"))

	if _, err := runCmd(t, "config", "-config", cfg, "-save"); err != nil {
		t.Fatalf("config -save: %v", err)
	}
	saved, err := config.LoadFile(filepath.Join(config.ConfigDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if saved.Simulation.Waves != 5 {
		t.Errorf("expected 5 waves, got %d", saved.Simulation.Waves)
	}
}

func TestShowMissingWaves(t *testing.T) {
	cfg, _ := writeConfig(t, 2)

	_, err := runCmd(t, "show", "-config", cfg)
	if !errors.Is(err, wave.ErrRecordUnavailable) {
		t.Errorf("expected ErrRecordUnavailable, got %v", err)
	}
}

func TestSet(t *testing.T) {
	cfg, dir := writeConfig(t, 3)
	if _, err := runCmd(t, "init", "-config", cfg); err != nil {
		t.Fatalf("init: %v", err)
	}

	if _, err := runCmd(t, "set", "-config", cfg, "2", "amp", "1.5"); err != nil {
		t.Fatalf("set: %v", err)
	}

	w, err := wavestore.NewDir(dir).ReadWave(1)
	if err != nil {
		t.Fatal(err)
	}
	if w.Amplitude != 1.5 {
		t.Errorf("expected amplitude 1.5 saved, got %f", w.Amplitude)
	}

	_, err = runCmd(t, "set", "-config", cfg, "4", "amp", "1")
	if !errors.Is(err, ocean.ErrInvalidSelection) {
		t.Errorf("expected ErrInvalidSelection for wave 4, got %v", err)
	}

	if _, err := runCmd(t, "set", "-config", cfg, "1", "colour", "1"); err == nil {
		t.Error("expected unknown field error")
	}

	_, err = runCmd(t, "set", "-config", cfg, "1")
	if !errors.Is(err, errUsage) {
		t.Errorf("expected usage error, got %v", err)
	}
}

func TestSample(t *testing.T) {
	cfg, dir := writeConfig(t, 1)
	store := wavestore.NewDir(dir)
	if err := store.WriteWave(0, wave.Wave{Amplitude: 1, Direction: mgl32.Vec2{0, 0}, Frequency: 1}); err != nil {
		t.Fatal(err)
	}

	out, err := runCmd(t, "sample", "-config", cfg, "3", "4")
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	// sin(5 × 0.015)
	if !strings.Contains(out, "height(3, 4) @ frame 0 = +0.074930") {
		t.Errorf("unexpected sample output:\n%s", out)
	}

	if _, err := runCmd(t, "sample", "-config", cfg, "64", "0"); err == nil {
		t.Error("expected out-of-grid error")
	}
}

func TestMesh(t *testing.T) {
	cfg, _ := writeConfig(t, 2)
	if _, err := runCmd(t, "init", "-config", cfg); err != nil {
		t.Fatalf("init: %v", err)
	}

	out, err := runCmd(t, "mesh", "-config", cfg, "-frame", "5", "-quad", "0", "-workers", "4")
	if err != nil {
		t.Fatalf("mesh: %v", err)
	}
	for _, want := range []string{
		"quads:     3600 (60x60)",
		"vertices:  14400",
		"indices:   21600",
		"v0 pos(0.000,",
		"v3 pos(1.000,",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	if _, err := runCmd(t, "mesh", "-config", cfg, "-quad", "3600"); err == nil {
		t.Error("expected out-of-range quad error")
	}
}

func TestUnknownCommand(t *testing.T) {
	_, err := runCmd(t, "frobnicate")
	if !errors.Is(err, errUsage) {
		t.Errorf("expected usage error, got %v", err)
	}
}
