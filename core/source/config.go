package source

// Config holds configuration for the snapshot source the watch command
// and pull-mode sessions join against.
type Config struct {
	// Kind selects the implementation (file, object, database).
	Kind string `mapstructure:"kind" default:"file"`
	// Name identifies the source in logs and cache keys.
	Name string `mapstructure:"name" default:"default"`
	// KeyField is the record field used as the join key.
	KeyField string `mapstructure:"key_field" default:"id"`
	// Path is the JSON file path for file sources.
	Path string `mapstructure:"path" default:""`
	// Object is the object name for object sources.
	Object string `mapstructure:"object" default:""`
	// Query is the SQL query for database sources.
	Query string `mapstructure:"query" default:""`
	// CacheTTLSeconds is the snapshot cache time-to-live.
	// Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"0"`
	// IntervalSeconds is the poll interval for the watch command.
	IntervalSeconds int `mapstructure:"interval_seconds" default:"10"`
}
