package instance

import "os"

const EnvInstanceID = "FOODGRAM_INSTANCE_ID"

// GetID names the running process for log correlation: the configured
// instance id, then the host name, then "local".
func GetID() string {
	if id := os.Getenv(EnvInstanceID); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
