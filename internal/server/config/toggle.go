package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Toggle is a boolean that also accepts "yes" and "no". It works both as an
// environment value and as a boolean command-line flag.
type Toggle bool

func (t *Toggle) UnmarshalText(b []byte) error {
	return t.Set(string(b))
}

func (t *Toggle) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "on":
		*t = true
		return nil
	case "no", "n", "off":
		*t = false
		return nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid toggle %q", s)
	}
	*t = Toggle(v)
	return nil
}

func (t *Toggle) String() string {
	if t == nil {
		return "false"
	}
	return strconv.FormatBool(bool(*t))
}

func (t *Toggle) IsBoolFlag() bool { return true }
