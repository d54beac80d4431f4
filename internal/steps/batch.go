package steps

import (
	"fmt"

	"github.com/mj1618/sikuli-cli/internal/sikuli"
	"gopkg.in/yaml.v3"
)

// Step is one entry of a batch: a single action name mapped to its params.
type Step map[string]map[string]interface{}

// BatchResult is the output of a batch run.
type BatchResult struct {
	OK        bool     `yaml:"ok"              json:"ok"`
	Action    string   `yaml:"action"          json:"action"`
	Steps     int      `yaml:"steps"           json:"steps"`
	Completed int      `yaml:"completed"       json:"completed"`
	Error     string   `yaml:"error,omitempty" json:"error,omitempty"`
	Results   []Result `yaml:"results"         json:"results"`
}

// ParseSteps decodes a YAML list of steps.
func ParseSteps(data []byte) ([]Step, error) {
	var raw []Step
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML steps: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("no steps provided; expected a YAML list of actions")
	}
	return raw, nil
}

// StepsFromAny converts a decoded JSON array of single-key objects.
func StepsFromAny(v interface{}) ([]Step, error) {
	arr, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("steps must be an array")
	}
	out := make([]Step, 0, len(arr))
	for i, item := range arr {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("step %d: must be an object", i+1)
		}
		step := Step{}
		for action, p := range obj {
			switch params := p.(type) {
			case map[string]interface{}:
				step[action] = params
			case nil:
				step[action] = map[string]interface{}{}
			default:
				return nil, fmt.Errorf("step %d: params of %q must be an object", i+1, action)
			}
		}
		out = append(out, step)
	}
	return out, nil
}

// RunBatch executes steps in order. With stopOnError the first failure
// ends the run.
func RunBatch(s *sikuli.Session, steps []Step, stopOnError bool) BatchResult {
	batch := BatchResult{
		Action:  "do",
		Steps:   len(steps),
		Results: make([]Result, 0, len(steps)),
	}
	hasFailure := false

	for i, step := range steps {
		stepNum := i + 1
		result, err := runStep(s, step)
		result.Step = stepNum
		if err != nil {
			result.OK = false
			result.Error = err.Error()
			batch.Results = append(batch.Results, result)
			hasFailure = true
			if stopOnError {
				batch.Error = fmt.Sprintf("step %d: %s", stepNum, err.Error())
				break
			}
			continue
		}
		result.OK = true
		batch.Completed++
		batch.Results = append(batch.Results, result)
	}

	batch.OK = !hasFailure
	return batch
}

func runStep(s *sikuli.Session, step Step) (Result, error) {
	if len(step) != 1 {
		return Result{}, fmt.Errorf("expected exactly one action key, got %d", len(step))
	}
	for action, params := range step {
		return Execute(s, action, params)
	}
	return Result{}, nil
}
