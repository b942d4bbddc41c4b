package config

const (
	defaultDataDir   = "~/.local/share/genremap"
	defaultLogDir    = "~/.local/share/genremap/logs"
	defaultMusicDir  = "~/music"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

func defaultExtensions() []string {
	return []string{".flac", ".mp3", ".m4a", ".m4b"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Library: Library{
			MusicDir:   defaultMusicDir,
			Extensions: defaultExtensions(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
