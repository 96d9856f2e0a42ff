package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

// DefaultScenarioFile is the file name looked up inside a scenario directory.
const DefaultScenarioFile = "scenario.yaml"

// ScenarioLoader reads declarative scenario definitions.
type ScenarioLoader interface {
	// Load decodes the scenario at path. When path is a directory the
	// loader reads the scenario file inside it.
	Load(ctx context.Context, path m.Path) (m.Scenario, error)
}

// YAMLScenarioLoader decodes scenario files with strict field checking so a
// misspelled key fails the load instead of silently disabling a rule.
type YAMLScenarioLoader struct {
	fileName string
}

// NewYAMLScenarioLoader returns a loader that looks for fileName inside
// scenario directories. An empty name selects DefaultScenarioFile.
func NewYAMLScenarioLoader(fileName string) *YAMLScenarioLoader {
	if fileName == "" {
		fileName = DefaultScenarioFile
	}

	return &YAMLScenarioLoader{fileName: fileName}
}

// FileName is the scenario file name this loader reads.
func (l *YAMLScenarioLoader) FileName() string {
	return l.fileName
}

// Load implements ScenarioLoader.
func (l *YAMLScenarioLoader) Load(ctx context.Context, path m.Path) (m.Scenario, error) {
	if err := ctx.Err(); err != nil {
		return m.Scenario{}, err
	}

	filePath := string(path)

	info, err := os.Stat(filePath)
	if err != nil {
		return m.Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}

	if info.IsDir() {
		filePath = filepath.Join(filePath, l.fileName)
	}

	// #nosec G304 - scenario paths are supplied by the operator
	content, err := os.ReadFile(filePath)
	if err != nil {
		return m.Scenario{}, fmt.Errorf("read scenario: %w", err)
	}

	var scenario m.Scenario

	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)

	if err := decoder.Decode(&scenario); err != nil && !errors.Is(err, io.EOF) {
		return m.Scenario{}, fmt.Errorf("decode scenario %s: %w", filePath, err)
	}

	scenario.Dir = m.Path(filepath.Dir(filePath))
	if scenario.Name == "" {
		dir := string(scenario.Dir)
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}

		scenario.Name = filepath.Base(dir)
	}

	return scenario, nil
}
