package config

import (
	"errors"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Env holds settings taken from the environment.
type Env struct {
	ConfigDir  string `env:"TODO_CONFIG_DIR"`
	File       string `env:"TODO_FILE"`
	RemoteList string `env:"TODO_REMOTE_LIST"`
	Debug      bool   `env:"TODO_DEBUG" env-default:"false"`
}

type Reader interface {
	Read() (*Env, error)
}

// EnvReader reads Env from process variables, after loading DotEnvFile
// when it exists. Variables already set are not overridden.
type EnvReader struct {
	DotEnvFile string
}

func NewEnvReader() EnvReader {
	return EnvReader{DotEnvFile: ".env"}
}

func (r EnvReader) Read() (*Env, error) {
	if r.DotEnvFile != "" {
		if err := godotenv.Load(r.DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	env := new(Env)
	if err := cleanenv.ReadEnv(env); err != nil {
		return nil, err
	}
	return env, nil
}
