package creator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate    = validator.New()
	optionsType = reflect.TypeOf(Options{})
)

// Options are the inputs of one create run.
type Options struct {
	Name           string `validate:"required" flag:"app-name"`
	Dir            string `validate:"required" flag:"dir"`
	Preset         string `flag:"preset"`
	PackageManager string `validate:"omitempty,oneof=npm yarn pnpm" flag:"package-manager"`
	Registry       string `validate:"omitempty,url" flag:"registry"`
	SkipGit        bool
	SkipInstall    bool
	Force          bool
	DryRun         bool
}

var messages = map[string]string{
	"required": "%s is required",
	"oneof":    "%s must be one of: %s",
	"url":      "%s must be a URL",
}

// Validate checks the options and reports every problem at once.
func (o Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fieldMessage(fe))
	}
	return fmt.Errorf("invalid options: %s", strings.Join(problems, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()
	if field, ok := optionsType.FieldByName(fe.StructField()); ok {
		if tag := field.Tag.Get("flag"); tag != "" {
			name = tag
		}
	}

	msg, ok := messages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("%s failed %s validation", name, fe.Tag())
	}
	if strings.Count(msg, "%s") == 2 {
		return fmt.Sprintf(msg, name, strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return fmt.Sprintf(msg, name)
}
