package config

const (
	defaultConfigPath  = "~/.config/gedcompare/config.toml"
	projectConfigName  = "gedcompare.toml"
	defaultDataDir     = "~/.local/share/gedcompare"
	defaultLogDir      = "~/.local/share/gedcompare/logs"
	defaultBackend     = BackendSQLite
	defaultEncoding    = EncodingAuto
	defaultColorMode   = ColorAuto
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	dataDirEnvVariable = "GEDCOMPARE_DATA_DIR"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// EncodingAuto defers charset selection to the file itself.
const EncodingAuto = "auto"

// SupportedEncodings lists the canonical names accepted by input.encoding.
var SupportedEncodings = []string{
	EncodingAuto,
	"utf-8",
	"utf-16",
	"windows-1252",
	"iso-8859-1",
	"ibm437",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Storage: Storage{Backend: defaultBackend},
		Input:   Input{Encoding: defaultEncoding},
		Display: Display{Color: defaultColorMode},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
