package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/pcpp/translator"
)

func TestMissingConfigUsesDefaults(t *testing.T) {
	conf, err := loadConfig(filepath.Join(t.TempDir(), configFile), false)
	if err != nil {
		t.Fatal(err)
	}
	if conf != defaultConfig() {
		t.Errorf("got %s", repr.String(conf))
	}
	if conf.MaxTokens != 1024 || conf.Indent != "   " {
		t.Errorf("got %s", repr.String(conf))
	}
}

func TestMissingConfigRequired(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), configFile), true); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFile)
	data := "Target: llvm\nLenientEnd: true\nMaxTokens: 0\n"
	if err := ioutil.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	conf, err := loadConfig(path, true)
	if err != nil {
		t.Fatal(err)
	}
	opts, err := conf.options()
	if err != nil {
		t.Fatal(err)
	}

	expected := translator.Options{Indent: "   ", Target: translator.LLVM, LenientEnd: true, MaxTokens: 0}
	if opts != expected {
		t.Errorf("got %s", repr.String(opts))
	}
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFile)
	conf := defaultConfig()
	conf.Output = "out.cpp"

	if err := conf.write(path); err != nil {
		t.Fatal(err)
	}
	got, err := loadConfig(path, true)
	if err != nil {
		t.Fatal(err)
	}
	if got != conf {
		t.Errorf("got %s", repr.String(got))
	}
}

func TestUnknownTarget(t *testing.T) {
	conf := defaultConfig()
	conf.Target = "java"
	if _, err := conf.options(); err == nil {
		t.Error("expected an error for an unknown target")
	}
}

func TestOpenInput(t *testing.T) {
	in, name, err := openInput("")
	if err != nil || name != "<stdin>" {
		t.Errorf("got %s, %v", name, err)
	}
	in.Close()

	if _, _, err := openInput(filepath.Join(t.TempDir(), "missing")); !os.IsNotExist(tracerr.Unwrap(err)) {
		t.Errorf("got %v", err)
	}
}
