package config

import "fmt"

const (
	errRequiredEnvNotSetFmt = "required environment variable %s is not set"
)

type messageBuilders struct {
	requiredEnvNotSet func(key string) string
}

var messages = messageBuilders{
	requiredEnvNotSet: func(key string) string {
		return fmt.Sprintf(errRequiredEnvNotSetFmt, key)
	},
}
