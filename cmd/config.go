package cmd

// Storage drivers accepted in STORAGE_DRIVER.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	StorageDriver          string
	KafkaHost              string
	KafkaOrderChangedTopic string
	LogLevel               string
}

// UsesMemoryStorage reports whether orders are kept in process memory
// instead of PostgreSQL.
func (c Config) UsesMemoryStorage() bool {
	return c.StorageDriver == StorageMemory
}
