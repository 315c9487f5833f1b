package astrosim

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Ephemeris mode names accepted in conf.toml.
const (
	ModeKeplerian = "keplerian"
	ModeVSOP87    = "vsop87"
	ModeJPL       = "jpl"
)

var (
	cfgLoaded = false
	config    = _config{mode: ModeKeplerian}
)

// _config is a "hidden" struct, just use `astroConfig`.
type _config struct {
	mode      string // keplerian, vsop87 or jpl
	vsop87Dir string
	jplPath   string
	catalog   string // planet catalog JSON, empty for the built-in one
	outputDir string
}

// astroConfig returns the astrosim configuration. Without the ASTROSIM_CONFIG
// environment variable the defaults apply: Keplerian propagation, built-in
// catalog, output in the working directory. With it, conf.toml in that
// directory is required.
func astroConfig() _config {
	if cfgLoaded {
		return config
	}
	confPath := os.Getenv("ASTROSIM_CONFIG")
	if confPath == "" {
		cfgLoaded = true
		return config
	}
	viper.SetConfigName("conf")
	viper.AddConfigPath(confPath)
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("%s/conf.toml not found", confPath))
	}

	vsop87Enabled := viper.GetBool("VSOP87.enabled")
	vsop87Dir := viper.GetString("VSOP87.directory")
	jplEnabled := viper.GetBool("JPL.enabled")
	jplPath := viper.GetString("JPL.ephemeris_file")
	catalog := viper.GetString("general.catalog")
	outputDir := viper.GetString("general.output_path")

	if vsop87Enabled && jplEnabled {
		panic("both VSOP87 and JPL are enabled, please make up your mind (JPL DE is more precise)")
	}
	mode := ModeKeplerian
	if vsop87Enabled {
		mode = ModeVSOP87
	} else if jplEnabled {
		mode = ModeJPL
	}
	cfgLoaded = true
	config = _config{mode: mode, vsop87Dir: vsop87Dir, jplPath: jplPath, catalog: catalog, outputDir: outputDir}
	return config
}

// EphemerisFromConfig builds the configured high-accuracy source, or nil when
// running pure Keplerian propagation.
func EphemerisFromConfig() (Ephemeris, error) {
	conf := astroConfig()
	switch conf.mode {
	case ModeVSOP87:
		return NewVSOP87Ephemeris(conf.vsop87Dir), nil
	case ModeJPL:
		return NewJPLEphemeris(conf.jplPath)
	default:
		return nil, nil
	}
}
