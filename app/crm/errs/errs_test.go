package errs_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/epicevents/crm/app/crm/errs"
)

func TestAppError(t *testing.T) {
	err := errs.New(errs.KindForbidden, "You do not have permission to access this feature")

	var appErr *errs.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected the error to be an *AppError, got %T", err)
	}
	if appErr.Kind != errs.KindForbidden {
		t.Errorf("expected kind forbidden, got %s", appErr.Kind)
	}
	if appErr.Error() != "You do not have permission to access this feature" {
		t.Errorf("unexpected message: %q", appErr.Error())
	}
	if appErr.FuncName == "" || appErr.FileName == "" {
		t.Error("expected the caller info to be captured")
	}
}

func TestValidationMessages(t *testing.T) {
	messages := []string{
		"The email is not valid.",
		"Employee ID must be 10 numbers.",
	}
	err := errs.NewValidation(messages)

	var appErr *errs.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected the error to be an *AppError, got %T", err)
	}
	if appErr.Kind != errs.KindValidation {
		t.Errorf("expected kind validation, got %s", appErr.Kind)
	}
	if appErr.Error() != "The email is not valid.\nEmployee ID must be 10 numbers." {
		t.Errorf("expected one message per line, got %q", appErr.Error())
	}
}

func TestExitCodes(t *testing.T) {
	tests := map[errs.Kind]int{
		errs.KindValidation:      2,
		errs.KindUnauthenticated: 3,
		errs.KindForbidden:       4,
		errs.KindNotFound:        5,
		errs.KindInternal:        1,
	}
	for kind, want := range tests {
		if got := kind.ExitCode(); got != want {
			t.Errorf("kind %s: expected exit code %d, got %d", kind, want, got)
		}
	}
}

func TestAppValidator_Check(t *testing.T) {
	appValidator, err := errs.NewAppValidator()
	if err != nil {
		t.Fatalf("should be able to construct an app validator with default translator set to english: %s", err)
	}

	type Data struct {
		input  any
		fields map[string]string
		check  bool
	}

	tests := map[string]Data{
		"pass validation": {
			input: struct {
				Name      string `json:"name" validate:"required"`
				Attendees int    `json:"attendees" validate:"required,gte=1"`
			}{
				Name:      "Wedding",
				Attendees: 75,
			},
			fields: nil,
			check:  true,
		},

		"fail validation": {
			input: struct {
				Name      string `json:"name" validate:"required"`
				Attendees int    `json:"attendees" validate:"required,gte=1"`
			}{},
			fields: map[string]string{
				"name":      "name is a required field",
				"attendees": "attendees is a required field",
			},
			check: false,
		},
	}

	for k, v := range tests {
		v := v
		t.Run(k, func(t *testing.T) {
			t.Parallel()
			fields, isOk := appValidator.Check(v.input)
			if v.check != isOk {
				t.Errorf("expected check result %t, got %t", v.check, isOk)
			}
			if !reflect.DeepEqual(fields, v.fields) {
				t.Errorf("expected fields \n%+v\n got \n%+v\n", v.fields, fields)
			}
		})
	}
}

func TestCustomValidators(t *testing.T) {
	data := struct {
		StartDate string `json:"startDate" validate:"required,eventDate"`
		Status    string `json:"status" validate:"required,contractStatus"`
	}{
		StartDate: "2023/01/01",
		Status:    "Cancelled",
	}
	appValidator, err := errs.NewAppValidator()
	if err != nil {
		t.Fatalf("should be able to construct an app validator with default translator set to english: %s", err)
	}

	fields, ok := appValidator.Check(data)
	if ok {
		t.Fatalf("should fail the check but it passed")
	}

	expectedFields := map[string]string{
		"startDate": "Invalid date, expected format: YYYY-MM-DD HH:MM.",
		"status":    "Status not in choice.",
	}
	if !reflect.DeepEqual(fields, expectedFields) {
		t.Logf("expected \n%+v\n got \n%+v\n", expectedFields, fields)
		t.Fatal("expected the returned results fields to be the same as expected results fields")
	}
}
