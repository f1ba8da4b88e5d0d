package main

import (
	"bytes"
	"strings"
	"testing"
)

func runCalc(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := calcCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestCalcBMI(t *testing.T) {
	out, err := runCalc(t, "bmi", "--weight", "70", "--height", "170")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "BMI: 24.2 (Normal weight)") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestCalcBMR(t *testing.T) {
	out, err := runCalc(t, "bmr", "--gender", "Female", "--weight", "60", "--height", "165", "--age", "25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 600 + 1031.25 - 125 - 161
	if !strings.Contains(out, "BMR: 1345 calories/day") {
		t.Errorf("unexpected output %q", out)
	}
	if strings.Count(out, "\n") != 6 {
		t.Errorf("expected BMR line plus five activity rows, got %q", out)
	}
}

func TestCalcRejectsOutOfRange(t *testing.T) {
	if _, err := runCalc(t, "bmi", "--weight", "0"); err == nil {
		t.Error("expected error for zero weight")
	}
	if _, err := runCalc(t, "bmr", "--gender", "Robot"); err == nil {
		t.Error("expected error for unknown gender")
	}
}
