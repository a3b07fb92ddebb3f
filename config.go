package main

import (
	"io/ioutil"
	"os"

	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"

	"github.com/pontaoski/pcpp/codegen/cpp"
	"github.com/pontaoski/pcpp/lexer"
	"github.com/pontaoski/pcpp/translator"
)

const configFile = "pcpp.yaml"

type pcppConfig struct {
	Indent     string `yaml:"Indent"`
	Target     string `yaml:"Target"`
	Output     string `yaml:"Output,omitempty"`
	Debug      bool   `yaml:"Debug"`
	MaxTokens  int    `yaml:"MaxTokens"`
	LenientEnd bool   `yaml:"LenientEnd"`
}

func defaultConfig() pcppConfig {
	return pcppConfig{
		Indent:    cpp.DefaultIndent,
		Target:    string(translator.CPP),
		MaxTokens: lexer.DefaultMaxTokens,
	}
}

// loadConfig reads path on top of the defaults. A missing file is only an
// error when it was asked for explicitly.
func loadConfig(path string, required bool) (pcppConfig, error) {
	conf := defaultConfig()

	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) && !required {
		return conf, nil
	}
	if err != nil {
		return conf, tracerr.Wrap(err)
	}

	if err := yaml.Unmarshal(data, &conf); err != nil {
		return conf, tracerr.Wrap(err)
	}
	return conf, nil
}

func (c pcppConfig) write(path string) error {
	out, err := yaml.Marshal(c)
	if err != nil {
		return tracerr.Wrap(err)
	}
	return tracerr.Wrap(ioutil.WriteFile(path, out, 0o644))
}

func (c pcppConfig) options() (translator.Options, error) {
	target, err := translator.ParseTarget(c.Target)
	if err != nil {
		return translator.Options{}, err
	}

	return translator.Options{
		Indent:     c.Indent,
		Target:     target,
		LenientEnd: c.LenientEnd,
		MaxTokens:  c.MaxTokens,
	}, nil
}
