package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"portal-auth/app/domain"
)

// Validator wraps the go-playground validator with custom rules
type Validator struct {
	validator *validator.Validate
}

// New creates a new validator instance with custom rules
func New() *Validator {
	validate := validator.New()

	// Register custom validators
	registerCustomValidators(validate)
	validate.RegisterStructValidation(registrationStructValidation, domain.RegistrationRequest{})

	// Use JSON field names for validation error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		validator: validate,
	}
}

// Validate validates a struct and returns validation errors
func (v *Validator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return NewValidationError(err.(validator.ValidationErrors))
	}
	return nil
}

// ValidateVar validates a single variable
func (v *Validator) ValidateVar(field interface{}, tag string) error {
	return v.validator.Var(field, tag)
}

// ValidationError represents a validation error with user-friendly messages
type ValidationError struct {
	Errors map[string]string `json:"errors"`
}

// Error implements the error interface
func (e ValidationError) Error() string {
	var messages []string
	for field, message := range e.Errors {
		messages = append(messages, fmt.Sprintf("%s: %s", field, message))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, ", "))
}

// NewValidationError creates a ValidationError from validator.ValidationErrors
func NewValidationError(errs validator.ValidationErrors) *ValidationError {
	errors := make(map[string]string)

	for _, err := range errs {
		field := err.Field()
		tag := err.Tag()

		switch tag {
		case "required":
			errors[field] = fmt.Sprintf("%s is required", field)
		case "required_for_role":
			errors[field] = fmt.Sprintf("%s is required for the %s role", field, err.Param())
		case "email":
			errors[field] = fmt.Sprintf("%s must be a valid email address", field)
		case "min":
			errors[field] = fmt.Sprintf("%s must be at least %s characters long", field, err.Param())
		case "max":
			errors[field] = fmt.Sprintf("%s must be at most %s characters long", field, err.Param())
		case "uuid4":
			errors[field] = fmt.Sprintf("%s must be a valid UUID", field)
		case "role_label":
			errors[field] = fmt.Sprintf("%s is not a recognized role", field)
		case "mrn":
			errors[field] = "medical record number must be a hospital code followed by year and sequence digits"
		case "birth_date":
			errors[field] = "date of birth must be a past date in YYYY-MM-DD format"
		case "blood_type":
			errors[field] = "blood type must be one of A, B, AB or O with an Rh sign"
		case "url":
			errors[field] = fmt.Sprintf("%s must be a valid URL", field)
		default:
			errors[field] = fmt.Sprintf("%s is invalid", field)
		}
	}

	return &ValidationError{Errors: errors}
}

// registerCustomValidators registers custom validation rules
func registerCustomValidators(validate *validator.Validate) {
	// Role label validation: any label the normalizer can resolve
	validate.RegisterValidation("role_label", func(fl validator.FieldLevel) bool {
		_, err := domain.NormalizeRole(fl.Field().String())
		return err == nil
	})

	// MRN validation: hospital code, two-digit year, six-digit sequence
	validate.RegisterValidation("mrn", func(fl validator.FieldLevel) bool {
		matched, _ := regexp.MatchString(`^[A-Z]{2,6}[0-9]{8}$`, fl.Field().String())
		return matched
	})

	// Birth date validation: parseable and not in the future
	validate.RegisterValidation("birth_date", func(fl validator.FieldLevel) bool {
		parsed, err := time.Parse("2006-01-02", fl.Field().String())
		if err != nil {
			return false
		}
		return parsed.Before(time.Now())
	})

	// Blood type validation
	validate.RegisterValidation("blood_type", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-":
			return true
		}
		return false
	})
}

// registrationStructValidation enforces the role-specific field rules on
// sign-up requests. It runs after field-level tags, so the role label is
// only checked when present.
func registrationStructValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(domain.RegistrationRequest)

	role, err := domain.NormalizeRole(req.Role)
	if err != nil {
		if req.Role != "" {
			sl.ReportError(req.Role, "role", "Role", "role_label", "")
		}
		return
	}

	if role.IsStaff() && req.HospitalID == "" {
		sl.ReportError(req.HospitalID, "hospital_id", "HospitalID", "required_for_role", string(role))
	}

	switch role {
	case domain.RoleDoctor:
		if req.LicenseNumber == "" {
			sl.ReportError(req.LicenseNumber, "license_number", "LicenseNumber", "required_for_role", string(role))
		}
	case domain.RoleAdmin, domain.RoleSuperAdmin:
		if req.EmployeeID == "" {
			sl.ReportError(req.EmployeeID, "employee_id", "EmployeeID", "required_for_role", string(role))
		}
	}

	if req.DateOfBirth != "" {
		if parsed, parseErr := time.Parse("2006-01-02", req.DateOfBirth); parseErr != nil || !parsed.Before(time.Now()) {
			sl.ReportError(req.DateOfBirth, "date_of_birth", "DateOfBirth", "birth_date", "")
		}
	}
	if req.BloodType != "" {
		switch req.BloodType {
		case "A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-":
		default:
			sl.ReportError(req.BloodType, "blood_type", "BloodType", "blood_type", "")
		}
	}
}

// Helper validation functions

// IsValidEmail checks if an email is valid
func IsValidEmail(email string) bool {
	v := New()
	return v.ValidateVar(email, "required,email") == nil
}

// IsValidUUID checks if a string is a valid UUID
func IsValidUUID(uuid string) bool {
	v := New()
	return v.ValidateVar(uuid, "required,uuid4") == nil
}

// IsValidMRN checks if a medical record number is well formed
func IsValidMRN(mrn string) bool {
	v := New()
	return v.ValidateVar(mrn, "required,mrn") == nil
}

// Common validation tags constants
const (
	TagRequired  = "required"
	TagEmail     = "email"
	TagUUID      = "uuid4"
	TagRoleLabel = "role_label"
	TagMRN       = "mrn"
	TagMin       = "min"
	TagMax       = "max"
	TagURL       = "url"
)
