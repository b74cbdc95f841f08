// Package messages resolves business codes to human-readable text through a
// YAML catalog embedded at build time and parsed once at startup.
package messages

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed messages.yml
var catalogYAML []byte

var (
	once    sync.Once
	catalog map[string]string
	loadErr error
)

func load() {
	catalog = make(map[string]string)
	loadErr = yaml.Unmarshal(catalogYAML, &catalog)
}

// Get returns the message for the given key, or the key itself when the
// catalog has no entry (so missing keys surface visibly rather than as "").
func Get(key string) string {
	once.Do(load)
	if loadErr != nil {
		return key
	}
	if msg, ok := catalog[key]; ok {
		return msg
	}
	return key
}

// Getf resolves the key and formats it with the given arguments.
func Getf(key string, args ...interface{}) string {
	return fmt.Sprintf(Get(key), args...)
}
