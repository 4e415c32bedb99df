package cli

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "FRAMEGRAPH_"

// LoadEnv returns the FRAMEGRAPH_* variables from the dotenv file at path,
// overlaid with the process environment. A missing file is not an error.
// The process environment is not modified.
func LoadEnv(path string) (map[string]string, error) {
	env := make(map[string]string)
	if path != "" {
		fileEnv, err := godotenv.Read(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		for k, v := range fileEnv {
			if strings.HasPrefix(k, EnvPrefix) {
				env[k] = v
			}
		}
	}
	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(k, EnvPrefix) {
			env[k] = v
		}
	}
	return env, nil
}
