package config

import "os"

func GetRuntimePath() string {
	path := os.Getenv("FINBOT_RUNTIME_PATH")
	if path == "" {
		path = ".finbot"
	}
	return path
}

func IsDebug() bool {
	return os.Getenv("FINBOT_DEBUG") == "1"
}
