package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"pqapi/models"
)

// Generator produces the input and expected output for one attempt at a set.
// The concrete implementation shells out to the challenge's scripts; tests
// substitute their own.
type Generator interface {
	Generate(ctx context.Context, challenge *models.Challenge, set *models.Set) (Result, error)
}

// Result holds the generated puzzle material for one attempt
type Result struct {
	Input    string // the input served to the participant
	Expected string // the validator's expected output for that input
}

// Runner invokes the per-challenge generator and validator programs.
// Both invocations are bounded by Timeout; a hang counts as a generation
// failure.
type Runner struct {
	Timeout time.Duration
}

func New(timeout time.Duration) *Runner {
	return &Runner{Timeout: timeout}
}

// Generate runs the generator with the set id as its sole argument, selects
// the puzzle input according to the challenge's input-validation rule, then
// feeds that input to the validator and captures the expected output.
func (r *Runner) Generate(ctx context.Context, challenge *models.Challenge, set *models.Set) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	generated, err := r.runGenerator(ctx, challenge, set)
	if err != nil {
		return Result{}, err
	}

	// When input validation is off the participant receives a stable
	// placeholder instead of the generator's output; the generator still
	// runs for its side effects.
	input := generated
	if !challenge.UseInputValidation {
		input = strconv.FormatUint(uint64(set.ID), 10)
	}

	expected, err := r.runValidator(ctx, challenge, input)
	if err != nil {
		return Result{}, err
	}

	return Result{Input: input, Expected: expected}, nil
}

func (r *Runner) runGenerator(ctx context.Context, challenge *models.Challenge, set *models.Set) (string, error) {
	if challenge.GeneratorPath == "" {
		return "", fmt.Errorf("challenge %d has no generator", challenge.ID)
	}

	cmd := exec.CommandContext(ctx, challenge.GeneratorPath, strconv.FormatUint(uint64(set.ID), 10))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("generator timed out after %s", r.Timeout)
		}
		return "", fmt.Errorf("generator failed: %v: %s", err, stderr.String())
	}
	return stdout.String(), nil
}

func (r *Runner) runValidator(ctx context.Context, challenge *models.Challenge, input string) (string, error) {
	if challenge.ValidatorPath == "" {
		return "", fmt.Errorf("challenge %d has no validator", challenge.ID)
	}

	cmd := exec.CommandContext(ctx, challenge.ValidatorPath)
	cmd.Stdin = bytes.NewBufferString(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("validator timed out after %s", r.Timeout)
		}
		return "", fmt.Errorf("validator failed: %v: %s", err, stderr.String())
	}
	return stdout.String(), nil
}
