package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds the CLI-level knobs translated into expand.Flags and
// expand.Collaborators before a run. Validation follows the teacher's
// go-playground/validator wiring (internal/validation in the original
// reflective flag parser), repointed here at plain CLI configuration
// instead of struct-tag field validation.
type Config struct {
	WorkingDir string `validate:"omitempty,dir"`
	LogPath    string `validate:"omitempty"`
	Mode       string `validate:"omitempty,oneof=argument completion"`
}

var configValidator = validator.New()

// Validate reports the first validation failure, reworded the way the
// teacher's invalidVarError did: substituting the field name into the
// library's generic message instead of surfacing validator's raw
// namespace-qualified text.
func (c Config) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}

	return fmt.Errorf("%s", describeFieldError(verrs[0]))
}

func describeFieldError(fe validator.FieldError) string {
	retag := regexp.MustCompile(`'\w+'$`)
	tag := retag.FindString(fmt.Sprintf("'%s'", fe.Tag()))
	tag = strings.Trim(tag, "'")
	return fmt.Sprintf("%q is not a valid %s for --%s", fe.Value(), tag, strings.ToLower(fe.Field()))
}
