package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// RulesFile is the YAML rules file.
type RulesFile struct {
	StemWords   []string `yaml:"stem_words"`
	OptionWords []string `yaml:"option_words"`
	Vocabulary  string   `yaml:"vocabulary,omitempty"`
	Threshold   *int     `yaml:"threshold,omitempty"`
}

// LoadRules reads a rules file. Unknown keys and multiple documents are
// rejected.
func LoadRules(path string) (*RulesFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules file: %w", err)
	}
	defer f.Close()

	r, err := DecodeRules(f)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return r, nil
}

// DecodeRules decodes a single YAML rules document.
func DecodeRules(r io.Reader) (*RulesFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var rf RulesFile
	if err := dec.Decode(&rf); err != nil {
		if errors.Is(err, io.EOF) {
			return &rf, nil
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: expected a single document")
	}
	if rf.Threshold != nil && *rf.Threshold < 0 {
		return nil, fmt.Errorf("threshold must not be negative")
	}
	return &rf, nil
}

// EncodeRules writes the effective rules as YAML.
func EncodeRules(w io.Writer, c Config) error {
	cfg := c.Rules()
	threshold := c.Threshold
	rf := RulesFile{
		StemWords:   cfg.StemWords,
		OptionWords: cfg.OptionWords,
		Vocabulary:  c.VocabPath,
		Threshold:   &threshold,
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rf); err != nil {
		return err
	}
	return enc.Close()
}
