package config

import (
	"github.com/spf13/viper"
)

// Settings holds tool-level options read from the environment, as
// opposed to per-problem scenario files.
type Settings struct {
	DataDir    string
	LogLevel   string
	PlotWidth  int
	PlotHeight int
}

// LoadSettings reads STUBMATCH_* environment variables over defaults.
func LoadSettings() *Settings {
	viper.SetDefault("STUBMATCH_DATA_DIR", ".stubmatch")
	viper.SetDefault("STUBMATCH_LOG_LEVEL", "info")
	viper.SetDefault("STUBMATCH_PLOT_WIDTH", 80)
	viper.SetDefault("STUBMATCH_PLOT_HEIGHT", 10)

	viper.AutomaticEnv()
	viper.BindEnv("STUBMATCH_DATA_DIR")
	viper.BindEnv("STUBMATCH_LOG_LEVEL")
	viper.BindEnv("STUBMATCH_PLOT_WIDTH")
	viper.BindEnv("STUBMATCH_PLOT_HEIGHT")

	return &Settings{
		DataDir:    viper.GetString("STUBMATCH_DATA_DIR"),
		LogLevel:   viper.GetString("STUBMATCH_LOG_LEVEL"),
		PlotWidth:  viper.GetInt("STUBMATCH_PLOT_WIDTH"),
		PlotHeight: viper.GetInt("STUBMATCH_PLOT_HEIGHT"),
	}
}
