package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "config":
		return configTemplate, nil
	case "schema":
		return schemaTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const configTemplate = `schema = "schema.toml"
max_body_bytes = 8388608
max_buffered_bytes = 16777216
retain_write_bytes = 65536
read_chunk_bytes = 4096
metrics_addr = ""
log_level = "info"
`

const schemaTemplate = `[[read]]
name = "Hello"
id = 1
fields = [
  { name = "version", type = "uint" },
  { name = "agent", type = "istring" },
]

[[read]]
name = "Scores"
id = 2
fields = [
  { name = "player", type = "istring" },
  { name = "scores", type = "array", args = [{ type = "ushort" }, { type = "uint" }] },
]

[[write]]
name = "Hello"
id = 1
fields = [
  { name = "version", type = "uint" },
  { name = "agent", type = "istring" },
]

[[write]]
name = "Scores"
id = 2
fields = [
  { name = "player", type = "istring" },
  { name = "scores", type = "array", args = [{ type = "ushort" }, { type = "uint" }] },
]
`
