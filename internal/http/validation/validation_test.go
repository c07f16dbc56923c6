package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type addressForm struct {
	FirstName string `json:"first_name" binding:"required" validate:"required"`
	Phone     string `json:"phone" validate:"required,e164"`
	City      string `json:"city,omitempty" validate:"required"`
}

func TestFromBindErrorMapsJSONKeys(t *testing.T) {
	v := validator.New()

	form := addressForm{Phone: "not-a-phone"}
	err := v.Struct(form)
	if err == nil {
		t.Fatal("expected validation error")
	}

	fe := FromBindError(err, &form)

	if msg, ok := fe["first_name"]; !ok || msg != "Ce champ est obligatoire." {
		t.Errorf("first_name = %q, %v", msg, ok)
	}
	if msg, ok := fe["phone"]; !ok || msg == "" {
		t.Errorf("phone = %q, %v", msg, ok)
	}
	// the ",omitempty" suffix must be stripped from the key
	if _, ok := fe["city"]; !ok {
		t.Errorf("keys = %v, want city present", fe)
	}
}

func TestFromBindErrorGenericFallback(t *testing.T) {
	fe := FromBindError(errInvalidBody{}, &addressForm{})
	if msg, ok := fe["_"]; !ok || msg == "" {
		t.Errorf("generic fallback missing, got %v", fe)
	}
}

type errInvalidBody struct{}

func (errInvalidBody) Error() string { return "unexpected EOF" }
