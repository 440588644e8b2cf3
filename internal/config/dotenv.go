package config

import "github.com/joho/godotenv"

// LoadDotEnv reads KEY=value lines from a .env file into the environment.
// Variables already present in the environment, even empty ones, win.
// Lines may start with "export "; unquoted values may end in a # comment.
func LoadDotEnv(path string) error {
	return godotenv.Load(path)
}
