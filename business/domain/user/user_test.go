package user_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/epicevents/crm/business/domain/team"
	"github.com/epicevents/crm/business/domain/user"
	"github.com/epicevents/crm/business/domain/user/store/memory"
	"github.com/epicevents/crm/business/validate"
)

func newService() (*user.Service, *memory.Repository) {
	repo := &memory.Repository{Users: map[uuid.UUID]user.User{}}
	return user.NewService(repo), repo
}

func validNewUser() user.NewUser {
	return user.NewUser{
		PersonalNumber: "1234567890",
		Username:       "johndoe",
		FirstName:      "John",
		LastName:       "Doe",
		Email:          "john.doe@example.com",
		Phone:          "0601020304",
		Password:       "Secret123",
		Team:           team.KindSales,
	}
}

func TestValidateNew(t *testing.T) {
	if fe := user.ValidateNew(validNewUser()); len(fe) != 0 {
		t.Fatalf("expected a valid user to produce no errors, got: %v", fe)
	}
}

func TestValidateNewCollectsEveryError(t *testing.T) {
	nu := validNewUser()
	nu.Username = "ab"
	nu.PersonalNumber = "123"
	nu.Email = "not-an-email"
	nu.Password = "short"

	fe := user.ValidateNew(nu)
	if len(fe) != 4 {
		t.Fatalf("expected 4 errors to be collected, got %d: %v", len(fe), fe)
	}
	if !strings.Contains(fe[0], "at least 5 characters") {
		t.Errorf("expected the username error to cite the minimum length of 5, got %q", fe[0])
	}
}

func TestValidateUpdateSkipsUnsetFields(t *testing.T) {
	badEmail := "nope"
	fe := user.ValidateUpdate(user.UpdateUser{Email: &badEmail})
	if len(fe) != 1 {
		t.Fatalf("expected only the supplied field to be validated, got %d errors", len(fe))
	}
	if fe[0] != "The email is not valid." {
		t.Errorf("unexpected email error message: %q", fe[0])
	}

	if fe := user.ValidateUpdate(user.UpdateUser{}); len(fe) != 0 {
		t.Fatalf("expected an empty update to be valid, got: %v", fe)
	}
}

func TestCreateUser(t *testing.T) {
	service, repo := newService()

	usr, err := service.CreateUser(context.Background(), validNewUser())
	if err != nil {
		t.Fatalf("expected the user to be created: %s", err)
	}

	if usr.PasswordHash == nil {
		t.Fatal("expected the password to be hashed")
	}
	if string(usr.PasswordHash) == "Secret123" {
		t.Fatal("expected the stored password to not be the plaintext")
	}
	if err := bcrypt.CompareHashAndPassword(usr.PasswordHash, []byte("Secret123")); err != nil {
		t.Fatalf("expected the hash to match the plaintext: %s", err)
	}

	saved, ok := repo.Users[usr.ID]
	if !ok {
		t.Fatal("expected the user to be saved into the repo")
	}
	if saved.Team != team.KindSales {
		t.Errorf("expected the team to be %q, got %q", team.KindSales, saved.Team)
	}
}

func TestCreateUserInvalidData(t *testing.T) {
	service, _ := newService()

	nu := validNewUser()
	nu.Password = "alllowercase1"

	_, err := service.CreateUser(context.Background(), nu)
	if err == nil {
		t.Fatal("expected the creation to fail on invalid data")
	}

	var fe validate.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected a validation error, got %T: %s", err, err)
	}
	if len(fe) != 1 {
		t.Fatalf("expected a single error, got %d: %v", len(fe), fe)
	}
}

func TestRoundTripValidateCreate(t *testing.T) {
	// create succeeds exactly when validation returns no errors
	service, _ := newService()

	cases := []user.NewUser{
		validNewUser(),
		func() user.NewUser { nu := validNewUser(); nu.Username = "1bad"; return nu }(),
		func() user.NewUser { nu := validNewUser(); nu.PersonalNumber = "12345678901"; return nu }(),
	}

	for _, nu := range cases {
		fe := user.ValidateNew(nu)
		_, err := service.CreateUser(context.Background(), nu)
		if (len(fe) == 0) != (err == nil) {
			t.Errorf("validate and create disagree for %+v: validate=%v create=%v", nu, fe, err)
		}
	}
}

func TestUpdateUserPartial(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	usr, err := service.CreateUser(ctx, validNewUser())
	if err != nil {
		t.Fatalf("expected the user to be created: %s", err)
	}

	phone := "0707070707"
	updated, err := service.UpdateUser(ctx, usr, user.UpdateUser{Phone: &phone})
	if err != nil {
		t.Fatalf("expected the update to succeed: %s", err)
	}

	if updated.Phone != phone {
		t.Errorf("expected the phone to change to %q, got %q", phone, updated.Phone)
	}
	if updated.Username != usr.Username {
		t.Error("expected the username to be untouched")
	}
	if updated.Email != usr.Email {
		t.Error("expected the email to be untouched")
	}
	if string(updated.PasswordHash) != string(usr.PasswordHash) {
		t.Error("expected the password hash to be untouched")
	}
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	usr, err := service.CreateUser(ctx, validNewUser())
	if err != nil {
		t.Fatalf("expected the user to be created: %s", err)
	}

	password := "NewSecret9"
	updated, err := service.UpdateUser(ctx, usr, user.UpdateUser{Password: &password})
	if err != nil {
		t.Fatalf("expected the update to succeed: %s", err)
	}

	if string(updated.PasswordHash) == string(usr.PasswordHash) {
		t.Fatal("expected the password hash to change")
	}
	if err := bcrypt.CompareHashAndPassword(updated.PasswordHash, []byte(password)); err != nil {
		t.Fatalf("expected the new hash to match the new plaintext: %s", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	service, _ := newService()

	if _, err := service.GetUserByID(context.Background(), uuid.New()); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.GetUserByUsername(context.Background(), "ghost"); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	if _, err := service.CreateUser(ctx, validNewUser()); err != nil {
		t.Fatalf("expected the user to be created: %s", err)
	}

	usr, err := service.Authenticate(ctx, "johndoe", "Secret123")
	if err != nil {
		t.Fatalf("expected the login to succeed: %s", err)
	}
	if usr.Username != "johndoe" {
		t.Errorf("expected to get back the user, got %q", usr.Username)
	}

	// wrong password and unknown username fail with the same error
	_, badPassErr := service.Authenticate(ctx, "johndoe", "WrongPass1")
	if !errors.Is(badPassErr, user.ErrWrongCredentials) {
		t.Fatalf("expected ErrWrongCredentials for a bad password, got %v", badPassErr)
	}

	_, badUserErr := service.Authenticate(ctx, "nobody", "Secret123")
	if !errors.Is(badUserErr, user.ErrWrongCredentials) {
		t.Fatalf("expected ErrWrongCredentials for an unknown user, got %v", badUserErr)
	}

	if badPassErr.Error() != badUserErr.Error() {
		t.Fatal("expected the two failures to be indistinguishable")
	}
}

func TestCreateFirstAdmin(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	nu := validNewUser()
	nu.Team = team.KindSupport

	admin, err := service.CreateFirstAdmin(ctx, nu)
	if err != nil {
		t.Fatalf("expected the first admin to be created: %s", err)
	}
	if admin.Team != team.KindManagement {
		t.Errorf("expected the first admin to be in %q, got %q", team.KindManagement, admin.Team)
	}

	second := validNewUser()
	second.Username = "another"
	second.Email = "another@example.com"
	second.PersonalNumber = "0987654321"

	if _, err := service.CreateFirstAdmin(ctx, second); err == nil {
		t.Fatal("expected the bootstrap path to refuse a non empty user table")
	}
}
