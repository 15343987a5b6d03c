package envhelper

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Environment struct {
	SUBGRAPH_API_TOKEN string
	NETWORK_ID         string

	POSTGRES_HOST     string
	POSTGRES_PORT     string
	POSTGRES_USER     string
	POSTGRES_PASSWORD string
	POSTGRES_DB_NAME  string
	POSTGRES_SSL_MODE string

	KAFKA_SERVER          string
	KAFKA_PAIR_TAGS_TOPIC string

	CSV_OUTPUT_PATH string
}

var env *Environment

func GetEnv() (*Environment, error) {
	if env != nil {
		return env, nil
	}

	env = &Environment{}
	err := load()
	if err != nil {
		env = nil
		return nil, err
	}
	return env, nil
}

// PostgresEnabled reports whether the postgres sink is configured.
func (e *Environment) PostgresEnabled() bool {
	return e.POSTGRES_HOST != ""
}

// KafkaEnabled reports whether the kafka sink is configured.
func (e *Environment) KafkaEnabled() bool {
	return e.KAFKA_SERVER != ""
}

const _SUBGRAPH_API_TOKEN = "SUBGRAPH_API_TOKEN"
const _NETWORK_ID = "NETWORK_ID"

const _POSTGRES_HOST = "POSTGRES_HOST"
const _POSTGRES_PORT = "POSTGRES_PORT"
const _POSTGRES_USER = "POSTGRES_USER"
const _POSTGRES_PASSWORD = "POSTGRES_PASSWORD"
const _POSTGRES_DB_NAME = "POSTGRES_DB_NAME"
const _POSTGRES_SSL_MODE = "POSTGRES_SSL_MODE"

const _KAFKA_SERVER = "KAFKA_SERVER"
const _KAFKA_PAIR_TAGS_TOPIC = "KAFKA_PAIR_TAGS_TOPIC"

const _CSV_OUTPUT_PATH = "CSV_OUTPUT_PATH"

const defaultNetworkID = "1"

func load() error {
	godotenv.Load()

	env.SUBGRAPH_API_TOKEN = os.Getenv(_SUBGRAPH_API_TOKEN)
	if env.SUBGRAPH_API_TOKEN == "" {
		return buildLoadingEnvError(_SUBGRAPH_API_TOKEN)
	}

	env.NETWORK_ID = os.Getenv(_NETWORK_ID)
	if env.NETWORK_ID == "" {
		env.NETWORK_ID = defaultNetworkID
	}

	env.POSTGRES_HOST = os.Getenv(_POSTGRES_HOST)
	env.POSTGRES_PORT = os.Getenv(_POSTGRES_PORT)
	env.POSTGRES_USER = os.Getenv(_POSTGRES_USER)
	env.POSTGRES_PASSWORD = os.Getenv(_POSTGRES_PASSWORD)
	env.POSTGRES_DB_NAME = os.Getenv(_POSTGRES_DB_NAME)
	env.POSTGRES_SSL_MODE = os.Getenv(_POSTGRES_SSL_MODE)
	if env.PostgresEnabled() {
		for key, value := range map[string]string{
			_POSTGRES_PORT:     env.POSTGRES_PORT,
			_POSTGRES_USER:     env.POSTGRES_USER,
			_POSTGRES_PASSWORD: env.POSTGRES_PASSWORD,
			_POSTGRES_DB_NAME:  env.POSTGRES_DB_NAME,
			_POSTGRES_SSL_MODE: env.POSTGRES_SSL_MODE,
		} {
			if value == "" {
				return buildLoadingEnvError(key)
			}
		}
	}

	env.KAFKA_SERVER = os.Getenv(_KAFKA_SERVER)
	env.KAFKA_PAIR_TAGS_TOPIC = os.Getenv(_KAFKA_PAIR_TAGS_TOPIC)
	if env.KafkaEnabled() && env.KAFKA_PAIR_TAGS_TOPIC == "" {
		return buildLoadingEnvError(_KAFKA_PAIR_TAGS_TOPIC)
	}

	env.CSV_OUTPUT_PATH = os.Getenv(_CSV_OUTPUT_PATH)

	return nil
}

func buildLoadingEnvError(key string) error {
	return fmt.Errorf("error with variable: %s", key)
}
