package prompt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/epicevents/crm/app/crm/prompt"
)

func TestStringDefault(t *testing.T) {
	var out bytes.Buffer
	p := prompt.New(strings.NewReader("\n"), &out)

	got, err := p.String("Location", "Paris")
	if err != nil {
		t.Fatalf("expected the prompt to succeed: %s", err)
	}
	if got != "Paris" {
		t.Errorf("expected the default, got %q", got)
	}
}

func TestIntRetriesUntilValid(t *testing.T) {
	var out bytes.Buffer
	p := prompt.New(strings.NewReader("abc\n75\n"), &out)

	got, err := p.Int("Attendees", 0)
	if err != nil {
		t.Fatalf("expected the prompt to succeed: %s", err)
	}
	if got != 75 {
		t.Errorf("expected 75, got %d", got)
	}
	if !strings.Contains(out.String(), "whole number") {
		t.Error("expected a retry hint after the bad answer")
	}
}

func TestFloat(t *testing.T) {
	var out bytes.Buffer
	p := prompt.New(strings.NewReader("2500.50\n"), &out)

	got, err := p.Float("Total balance", 0)
	if err != nil {
		t.Fatalf("expected the prompt to succeed: %s", err)
	}
	if got != 2500.50 {
		t.Errorf("expected 2500.50, got %f", got)
	}
}

func TestBool(t *testing.T) {
	var out bytes.Buffer
	p := prompt.New(strings.NewReader("maybe\nyes\n"), &out)

	got, err := p.Bool("Signed", false)
	if err != nil {
		t.Fatalf("expected the prompt to succeed: %s", err)
	}
	if !got {
		t.Error("expected true")
	}
}

func TestChoiceCaseInsensitive(t *testing.T) {
	var out bytes.Buffer
	p := prompt.New(strings.NewReader("signed\n"), &out)

	got, err := p.Choice("Status", []string{"Created", "Signed", "Finished"}, "Created")
	if err != nil {
		t.Fatalf("expected the prompt to succeed: %s", err)
	}
	if got != "Signed" {
		t.Errorf("expected the canonical casing, got %q", got)
	}
}

func TestChoiceRejectsUnknown(t *testing.T) {
	var out bytes.Buffer
	p := prompt.New(strings.NewReader("Cancelled\nFinished\n"), &out)

	got, err := p.Choice("Status", []string{"Created", "Signed", "Finished"}, "Created")
	if err != nil {
		t.Fatalf("expected the prompt to succeed: %s", err)
	}
	if got != "Finished" {
		t.Errorf("expected the retry to win, got %q", got)
	}
	if !strings.Contains(out.String(), "Please pick one of") {
		t.Error("expected a retry hint after the unknown answer")
	}
}

func TestPasswordPipedInput(t *testing.T) {
	var out bytes.Buffer
	p := prompt.New(strings.NewReader("Password123\n"), &out)

	got, err := p.Password("Password")
	if err != nil {
		t.Fatalf("expected the prompt to succeed: %s", err)
	}
	if got != "Password123" {
		t.Errorf("unexpected password: %q", got)
	}
}

func TestTable(t *testing.T) {
	var out bytes.Buffer
	p := prompt.New(strings.NewReader(""), &out)

	err := p.Table([]string{"USERNAME", "TEAM"}, [][]string{
		{"salesrep", "Sales team"},
		{"boss", "Management team"},
	})
	if err != nil {
		t.Fatalf("expected the table to render: %s", err)
	}
	rendered := out.String()
	if !strings.Contains(rendered, "USERNAME") || !strings.Contains(rendered, "salesrep") {
		t.Errorf("unexpected table output:\n%s", rendered)
	}
}
