package envutil

import (
	"os"
	"strconv"
	"strings"

	"github.com/yungbote/complexparts-backend/internal/platform/logger"
)

// String returns the trimmed value of name, or def when unset or blank.
func String(name, def string, log *logger.Logger) string {
	if log != nil {
		log = log.With("env_var", name)
	}
	v, ok := os.LookupEnv(name)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		if log != nil {
			log.Debug("Environment variable not found, using default", "default", def)
		}
		return def
	}
	if log != nil {
		shown := v
		if secretName(name) {
			shown = "[REDACTED]"
		}
		log.Debug("Environment variable found, using environment", "value", shown)
	}
	return v
}

func secretName(name string) bool {
	n := strings.ToUpper(name)
	for _, marker := range []string{"PASSWORD", "SECRET", "TOKEN", "HEADERS", "DSN"} {
		if strings.Contains(n, marker) {
			return true
		}
	}
	return false
}

func Int(name string, def int, log *logger.Logger) int {
	raw := String(name, "", nil)
	if raw == "" {
		return def
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		if log != nil {
			log.Debug("Environment variable could not be parsed as int, using default", "env_var", name, "providedVal", raw, "defaultVal", def, "error", err)
		}
		return def
	}
	return i
}

func Bool(name string, def bool, log *logger.Logger) bool {
	switch strings.ToLower(String(name, "", nil)) {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		if log != nil {
			log.Debug("Environment variable could not be parsed as bool, using default", "env_var", name, "defaultVal", def)
		}
		return def
	}
}

// List splits a comma separated value, dropping empty entries.
func List(name string, def []string, log *logger.Logger) []string {
	raw := String(name, "", log)
	if raw == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
