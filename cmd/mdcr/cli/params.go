// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// FlagsFromParams creates a [pflag.FlagSet] with flags bound to the tagged
// fields of params. params must be a pointer to a struct. Panics on
// invalid input (programming error, not runtime data).
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.SortFlags = false
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers pflag entries for each tagged field in params.
// params must be a pointer to a struct.
//
// # Struct tags
//
//   - flag:"name" or flag:"name,n": the long flag name and optional
//     single-character shorthand. Fields without a flag tag are skipped.
//   - desc:"help text": the flag's help description.
//   - default:"value": the default value, parsed according to the field's
//     Go type. If omitted, the type's zero value is used.
//   - choices:"a,b,c": string fields only. Parsing fails for any other
//     value, and the help text lists the choices.
//
// # Supported field types
//
// string, bool, int, []string.
//
// Embedded structs are bound recursively, so shared parameter groups
// such as [GlobalParams] and [JSONOutput] compose by embedding.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	value := reflect.ValueOf(params)
	if value.Kind() != reflect.Ptr || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return bindStructFields(value.Elem(), flagSet)
}

// bindStructFields iterates over struct fields and binds them to flagSet.
func bindStructFields(structValue reflect.Value, flagSet *pflag.FlagSet) error {
	structType := structValue.Type()

	for i := range structType.NumField() {
		field := structType.Field(i)
		fieldValue := structValue.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := bindStructFields(fieldValue, flagSet); err != nil {
				return fmt.Errorf("embedded %s: %w", field.Name, err)
			}
			continue
		}

		flagTag := field.Tag.Get("flag")
		if flagTag == "" {
			continue
		}
		if !fieldValue.CanAddr() {
			return fmt.Errorf("field %s: not addressable", field.Name)
		}

		name, shorthand, _ := strings.Cut(flagTag, ",")
		spec := flagSpec{
			name:        name,
			shorthand:   shorthand,
			description: field.Tag.Get("desc"),
			defaultText: field.Tag.Get("default"),
		}
		if choices := field.Tag.Get("choices"); choices != "" {
			spec.choices = strings.Split(choices, ",")
		}
		if err := bindField(fieldValue, flagSet, spec); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}

	return nil
}

// flagSpec is the parsed tag set of one field.
type flagSpec struct {
	name        string
	shorthand   string
	description string
	defaultText string
	choices     []string
}

// bindField creates a pflag binding for a single struct field.
func bindField(fieldValue reflect.Value, flagSet *pflag.FlagSet, spec flagSpec) error {
	pointer := fieldValue.Addr().Interface()

	if spec.choices != nil {
		target, ok := pointer.(*string)
		if !ok {
			return fmt.Errorf("choices on non-string flag --%s", spec.name)
		}
		if spec.defaultText != "" && !slices.Contains(spec.choices, spec.defaultText) {
			return fmt.Errorf("default %q for --%s is not one of %v", spec.defaultText, spec.name, spec.choices)
		}
		*target = spec.defaultText
		description := fmt.Sprintf("%s (%s)", spec.description, strings.Join(spec.choices, "|"))
		flagSet.VarP(&choiceValue{target: target, choices: spec.choices}, spec.name, spec.shorthand, description)
		return nil
	}

	switch target := pointer.(type) {
	case *string:
		flagSet.StringVarP(target, spec.name, spec.shorthand, spec.defaultText, spec.description)

	case *bool:
		defaultValue := false
		if spec.defaultText != "" {
			parsed, err := strconv.ParseBool(spec.defaultText)
			if err != nil {
				return fmt.Errorf("default for --%s: %w", spec.name, err)
			}
			defaultValue = parsed
		}
		flagSet.BoolVarP(target, spec.name, spec.shorthand, defaultValue, spec.description)

	case *int:
		defaultValue := 0
		if spec.defaultText != "" {
			parsed, err := strconv.Atoi(spec.defaultText)
			if err != nil {
				return fmt.Errorf("default for --%s: %w", spec.name, err)
			}
			defaultValue = parsed
		}
		flagSet.IntVarP(target, spec.name, spec.shorthand, defaultValue, spec.description)

	case *[]string:
		var defaultValue []string
		if spec.defaultText != "" {
			defaultValue = strings.Split(spec.defaultText, ",")
		}
		flagSet.StringSliceVarP(target, spec.name, spec.shorthand, defaultValue, spec.description)

	default:
		return fmt.Errorf("unsupported type %s for flag --%s", fieldValue.Type(), spec.name)
	}

	return nil
}

// choiceValue is a string flag restricted to a fixed set of values.
type choiceValue struct {
	target  *string
	choices []string
}

func (v *choiceValue) String() string { return *v.target }

func (v *choiceValue) Type() string { return "string" }

func (v *choiceValue) Set(value string) error {
	if !slices.Contains(v.choices, value) {
		return fmt.Errorf("must be one of %s", strings.Join(v.choices, ", "))
	}
	*v.target = value
	return nil
}
