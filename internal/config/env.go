package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// applyEnv replaces every Config field whose `env` variable is set and
// returns the variables it used, in field order. Sections are walked
// recursively. Only string and int fields exist in Config; durations such
// as DB_CONN_MAX_LIFETIME stay strings here and are checked by validateConfig.
func applyEnv(cfg *Config) ([]string, error) {
	var used []string
	if err := applyEnvSection(reflect.ValueOf(cfg).Elem(), "", &used); err != nil {
		return nil, err
	}
	return used, nil
}

func applyEnvSection(section reflect.Value, path string, used *[]string) error {
	typ := section.Type()
	for i := 0; i < section.NumField(); i++ {
		field, meta := section.Field(i), typ.Field(i)
		name := meta.Name
		if path != "" {
			name = path + "." + name
		}

		if field.Kind() == reflect.Struct {
			if err := applyEnvSection(field, name, used); err != nil {
				return err
			}
			continue
		}

		key := meta.Tag.Get("env")
		if key == "" {
			continue
		}
		raw, ok := os.LookupEnv(key)
		if !ok {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			// kept verbatim, a password may carry spaces
			field.SetString(raw)
		case reflect.Int:
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return fmt.Errorf("%s (%s) must be a whole number, got %q", key, name, raw)
			}
			field.SetInt(int64(n))
		default:
			return fmt.Errorf("%s (%s): %s fields cannot be set from the environment", key, name, field.Kind())
		}
		*used = append(*used, key)
	}
	return nil
}
