package main

import (
	"os"

	"shed-server/internal/config"

	"gopkg.in/yaml.v2"
)

// prints the default configuration as YAML
func main() {
	if err := yaml.NewEncoder(os.Stdout).Encode(config.DefaultConfig()); err != nil {
		panic(err)
	}
}
