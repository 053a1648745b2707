package validation

import (
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FullNameTag is the validator tag for names made of at least two words.
const FullNameTag = "fullname"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation(FullNameTag, fullNameValidation); err != nil {
		panic(err)
	}
	return v
}

// fullNameValidation accepts values that split into two or more words once trimmed.
func fullNameValidation(fl validator.FieldLevel) bool {
	return len(strings.Fields(fl.Field().String())) >= 2
}

// Check is a single predicate on a field value. Tag is any validator tag, e.g. "email" or "min=8".
// When Bail is set and the check fails, the remaining checks for the field are skipped.
type Check struct {
	Tag     string
	Message string
	Bail    bool
}

func (c Check) passes(value string) bool {
	return validate.Var(value, c.Tag) == nil
}

// Rule binds an ordered list of checks to a field name.
type Rule struct {
	Field  string
	Checks []Check
}

// Schema is an ordered set of rules. It holds no state between calls.
type Schema struct {
	rules []Rule
}

func NewSchema(rules ...Rule) *Schema {
	return &Schema{rules: rules}
}

// Fields returns the field names covered by the schema, in rule order.
func (s *Schema) Fields() []string {
	names := make([]string, len(s.rules))
	for i, r := range s.rules {
		names[i] = r.Field
	}
	return names
}

// Validate runs every rule against values. Missing fields are checked as the empty string.
// Errors from all fields are collected together.
func (s *Schema) Validate(values map[string]string) Result {
	var errs FieldErrors

	for _, rule := range s.rules {
		value := values[rule.Field]

		for _, check := range rule.Checks {
			if check.passes(value) {
				continue
			}

			if errs == nil {
				errs = make(FieldErrors)
			}
			errs[rule.Field] = append(errs[rule.Field], check.Message)

			if check.Bail {
				break
			}
		}
	}

	if errs == nil {
		return Success()
	}
	return Failure(errs)
}

// FieldErrors maps a field name to its messages.
type FieldErrors map[string][]string

// Get returns the messages for a field, or nil.
func (e FieldErrors) Get(field string) []string {
	return e[field]
}

func (e FieldErrors) Has(field string) bool {
	return len(e[field]) > 0
}

// Fields returns the names of the fields with errors, sorted.
func (e FieldErrors) Fields() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Result is either a success with no payload or a failure carrying field errors.
type Result struct {
	errs FieldErrors
}

func Success() Result {
	return Result{}
}

func Failure(errs FieldErrors) Result {
	return Result{errs: errs}
}

func (r Result) OK() bool {
	return len(r.errs) == 0
}

// Errors returns the field errors of a failure. It is nil on success.
func (r Result) Errors() FieldErrors {
	return r.errs
}
