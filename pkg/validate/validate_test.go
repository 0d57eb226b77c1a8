package validate_test

import (
	"strings"
	"testing"

	"github.com/shashiranjanraj/pizzeria/pkg/validate"
)

type signupInput struct {
	FirstName    string `json:"firstName"    validate:"required,max=100"`
	LastName     string `json:"lastName"     validate:"required,max=100"`
	Email        string `json:"email"        validate:"required,email"`
	Address      string `json:"address"      validate:"required"`
	Password     string `json:"password"     validate:"required"`
	TosAgreement bool   `json:"tosAgreement" validate:"accepted"`
}

type lineInput struct {
	Code     int    `json:"code"     validate:"required,gt=0"`
	Quantity int    `json:"quantity" validate:"required,gte=1,lte=99"`
	Size     string `json:"size"     validate:"nullable,in=small,medium,large"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(signupInput{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		Address:      "12 Analytical St",
		Password:     "engine",
		TosAgreement: true,
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(&signupInput{FirstName: "   "})
	for _, field := range []string{"firstName", "lastName", "email", "address", "password", "tosAgreement"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected %s to fail", field)
		}
	}
}

func TestAccepted(t *testing.T) {
	type in struct {
		Extend any `json:"extend" validate:"accepted"`
	}
	for _, v := range []any{true, "yes", "on", "1", "true"} {
		if errs := validate.Struct(in{Extend: v}); validate.HasErrors(errs) {
			t.Errorf("expected %v to be accepted, got %v", v, errs)
		}
	}
	for _, v := range []any{false, "no", "0", ""} {
		if errs := validate.Struct(in{Extend: v}); !validate.HasErrors(errs) {
			t.Errorf("expected %v to be rejected", v)
		}
	}
}

func TestEmailRule(t *testing.T) {
	valid := []string{"a@b", "first.last+tag@example.co.uk", "x_y@sub-domain.io"}
	invalid := []string{"plainaddress", "@example.com", "a@", "a@b..c", "a b@c.com", "a/b@example.com", ".ada@example.com"}

	for _, e := range valid {
		if !validate.IsEmail(e) {
			t.Errorf("expected %q to be a valid email", e)
		}
	}
	for _, e := range invalid {
		if validate.IsEmail(e) {
			t.Errorf("expected %q to be rejected", e)
		}
	}
}

func TestNumericBounds(t *testing.T) {
	if errs := validate.Struct(lineInput{Code: 1, Quantity: 0}); errs["quantity"] == "" {
		t.Error("expected quantity 0 to fail")
	}
	if errs := validate.Struct(lineInput{Code: -3, Quantity: 2}); errs["code"] == "" {
		t.Error("expected negative code to fail")
	}
	if errs := validate.Struct(lineInput{Code: 2, Quantity: 100}); errs["quantity"] == "" {
		t.Error("expected quantity above 99 to fail")
	}
	if errs := validate.Struct(lineInput{Code: 2, Quantity: 3}); validate.HasErrors(errs) {
		t.Errorf("expected valid line, got %v", errs)
	}
}

func TestInRuleWithNullable(t *testing.T) {
	if errs := validate.Struct(lineInput{Code: 1, Quantity: 1, Size: "medium"}); validate.HasErrors(errs) {
		t.Errorf("expected medium to pass, got %v", errs)
	}
	if errs := validate.Struct(lineInput{Code: 1, Quantity: 1, Size: "huge"}); errs["size"] == "" {
		t.Error("expected huge to fail")
	}
}

func TestSizeAndAlphaNum(t *testing.T) {
	type in struct {
		ID string `json:"id" validate:"required,size=20,alpha_num"`
	}
	if errs := validate.Struct(in{ID: strings.Repeat("a", 20)}); validate.HasErrors(errs) {
		t.Errorf("expected 20 chars to pass, got %v", errs)
	}
	if errs := validate.Struct(in{ID: strings.Repeat("a", 19)}); errs["id"] == "" {
		t.Error("expected 19 chars to fail")
	}
	if errs := validate.Struct(in{ID: strings.Repeat("a", 19) + "-"}); errs["id"] == "" {
		t.Error("expected punctuation to fail")
	}
}

func TestSliceLength(t *testing.T) {
	type in struct {
		Items []int `json:"items" validate:"required,min=1"`
	}
	if errs := validate.Struct(in{}); errs["items"] == "" {
		t.Error("expected empty items to fail")
	}
	if errs := validate.Struct(in{Items: []int{1}}); validate.HasErrors(errs) {
		t.Errorf("expected one item to pass, got %v", errs)
	}
}
