package config

const (
	defaultConfigPath     = "~/.config/movierec/config.toml"
	defaultDatabasePath   = "~/.local/share/movierec/corpus.db"
	defaultGenreDelimiter = "|"
	defaultK              = 5
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Corpus formats understood by the loader.
const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// Title match modes used when no exact title entry exists.
const (
	MatchSubstring = "substring"
	MatchToken     = "token"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Corpus: Corpus{
			Format:         FormatCSV,
			GenreDelimiter: defaultGenreDelimiter,
			DatabasePath:   defaultDatabasePath,
		},
		Recommend: Recommend{
			DefaultK:  defaultK,
			MatchMode: MatchSubstring,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
