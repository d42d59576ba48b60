package cmd

// Config carries all environment-driven settings for the application.
type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	MigrationsDir          string
	KafkaHost              string
	KafkaRotationTopic     string
	ResponseTimeoutMinutes string
}
