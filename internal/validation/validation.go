// Package validation implements the field-validation engine: pure rule
// evaluation for email, password, and phone values. Rules are carried in
// an immutable value injected into the Engine, never in package state.
package validation

import (
	"regexp"
	"strings"

	"go.uber.org/fx"
)

// Fixed error messages reported by the default rules.
const (
	msgEmailRequired  = "Email is required"
	msgEmailFormat    = "Invalid email format. Expected e.g. user@example.com"
	msgPasswordNeeded = "Password is required"
	msgPasswordLength = "Password must be at least 8 characters long"
	msgPasswordNumber = "Password must contain at least one number"
	msgPasswordSpec   = "Password must contain at least one special character"
	msgPhoneRequired  = "Phone number is required"
	msgPhoneFormat    = "Phone number must be in international format, e.g. +14155552671"
)

// EmailRule validates the overall shape of an email address.
type EmailRule struct {
	Name    string
	Pattern *regexp.Regexp
	Error   string
}

// PasswordRule holds the independent password checks. Every failing
// check contributes its own message; they are not mutually exclusive.
type PasswordRule struct {
	MinLength  int
	HasNumber  *regexp.Regexp
	HasSpecial *regexp.Regexp
	Errors     PasswordErrors
}

// PasswordErrors names the message for each password check.
type PasswordErrors struct {
	Length  string
	Number  string
	Special string
}

// PhoneRule validates an international phone number after separator
// stripping.
type PhoneRule struct {
	Name      string
	Pattern   *regexp.Regexp
	Separator *regexp.Regexp
	Error     string
}

// Rules is the full immutable rule set evaluated by the Engine.
type Rules struct {
	Email    EmailRule
	Password PasswordRule
	Phone    PhoneRule
}

// DefaultRules returns the built-in rule set.
func DefaultRules() Rules {
	return Rules{
		Email: EmailRule{
			Name:    "email_format",
			Pattern: regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`),
			Error:   msgEmailFormat,
		},
		Password: PasswordRule{
			MinLength:  8,
			HasNumber:  regexp.MustCompile(`\d`),
			HasSpecial: regexp.MustCompile("[!@#$%^&*(),.?\":{}|<>\\[\\]\\\\/_\\-+=~`;:]"),
			Errors: PasswordErrors{
				Length:  msgPasswordLength,
				Number:  msgPasswordNumber,
				Special: msgPasswordSpec,
			},
		},
		Phone: PhoneRule{
			Name: "phone_international",
			// Country code plus national number, 7-15 digits total.
			Pattern:   regexp.MustCompile(`^\+?[1-9]\d{6,14}$`),
			Separator: regexp.MustCompile(`[\s()\-]`),
			Error:     msgPhoneFormat,
		},
	}
}

// Result reports the outcome for a single field. Errors is never nil so
// it marshals as an empty array.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Input carries the raw field values of a validate request. Nil means
// the field was absent from the payload.
type Input struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Phone    *string `json:"phone"`
}

// Details breaks a combined report down per field.
type Details struct {
	Email    Result `json:"email"`
	Password Result `json:"password"`
	Phone    Result `json:"phone"`
}

// Report is the aggregate outcome across all three fields.
type Report struct {
	Valid   bool     `json:"valid"`
	Errors  []string `json:"errors"`
	Details Details  `json:"details"`
}

// Engine evaluates field values against its rule set. The zero value is
// unusable; construct with NewEngine.
type Engine struct {
	rules Rules
}

// Module provides the validation engine to Fx.
var Module = fx.Provide(NewEngine)

// NewEngine builds an Engine over the default rules.
func NewEngine() *Engine {
	return &Engine{rules: DefaultRules()}
}

// NewEngineWithRules builds an Engine over a caller-supplied rule set.
func NewEngineWithRules(rules Rules) *Engine {
	return &Engine{rules: rules}
}

// Rules exposes the immutable rule set, e.g. for the rules listing
// endpoint.
func (e *Engine) Rules() Rules {
	return e.rules
}

// ValidateEmail checks the email format. An empty value short-circuits
// with the required error.
func (e *Engine) ValidateEmail(email string) Result {
	errs := []string{}
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		errs = append(errs, msgEmailRequired)
		return Result{Valid: false, Errors: errs}
	}
	if !e.rules.Email.Pattern.MatchString(trimmed) {
		errs = append(errs, e.rules.Email.Error)
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// ValidatePassword runs every password check and accumulates all failing
// messages. An empty value short-circuits with the required error.
func (e *Engine) ValidatePassword(password string) Result {
	errs := []string{}
	if password == "" {
		errs = append(errs, msgPasswordNeeded)
		return Result{Valid: false, Errors: errs}
	}

	rule := e.rules.Password
	if len(password) < rule.MinLength {
		errs = append(errs, rule.Errors.Length)
	}
	if !rule.HasNumber.MatchString(password) {
		errs = append(errs, rule.Errors.Number)
	}
	if !rule.HasSpecial.MatchString(password) {
		errs = append(errs, rule.Errors.Special)
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// ValidatePhone strips spaces, hyphens, and parentheses, then checks the
// international format. An empty value short-circuits with the required
// error.
func (e *Engine) ValidatePhone(phone string) Result {
	errs := []string{}
	if strings.TrimSpace(phone) == "" {
		errs = append(errs, msgPhoneRequired)
		return Result{Valid: false, Errors: errs}
	}
	normalized := e.rules.Phone.Separator.ReplaceAllString(phone, "")
	if !e.rules.Phone.Pattern.MatchString(normalized) {
		errs = append(errs, e.rules.Phone.Error)
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// ValidateAll evaluates all three fields independently. Overall validity
// is the conjunction of the per-field results and the combined error
// list concatenates them in email, password, phone order.
func (e *Engine) ValidateAll(in Input) Report {
	details := Details{
		Email:    e.ValidateEmail(deref(in.Email)),
		Password: e.ValidatePassword(deref(in.Password)),
		Phone:    e.ValidatePhone(deref(in.Phone)),
	}

	errs := []string{}
	errs = append(errs, details.Email.Errors...)
	errs = append(errs, details.Password.Errors...)
	errs = append(errs, details.Phone.Errors...)

	return Report{
		Valid:   details.Email.Valid && details.Password.Valid && details.Phone.Valid,
		Errors:  errs,
		Details: details,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
