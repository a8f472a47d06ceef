package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/ukaji3/xledit-go/pkg/xledit"
)

const (
	configFileName = ".xledit"
	configFileType = "yaml"
	envPrefix      = "XLEDIT"

	cfgKeySheetLabel  = "sheet_label"
	cfgKeyDefaultName = "default_name"
	cfgKeyRawValues   = "raw_values"
	cfgKeyPassword    = "password"
)

// flagKeys maps persistent flags onto config keys.
var flagKeys = map[string]string{
	"sheet-label": cfgKeySheetLabel,
	"raw":         cfgKeyRawValues,
	"password":    cfgKeyPassword,
}

// loadConfig resolves settings from flags, XLEDIT_* environment variables
// (a .env file in the working directory is loaded first), a YAML config
// file and defaults, in that order of precedence.
// A missing config file is not an error unless path names it explicitly.
func loadConfig(path string, flags *pflag.FlagSet) (*viper.Viper, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault(cfgKeySheetLabel, xledit.DefaultSheetLabel)
	v.SetDefault(cfgKeyDefaultName, xledit.DefaultName)
	v.SetDefault(cfgKeyRawValues, false)
	v.SetDefault(cfgKeyPassword, "")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

func optionsFrom(v *viper.Viper) xledit.Options {
	return xledit.Options{
		SheetLabel:  v.GetString(cfgKeySheetLabel),
		DefaultName: v.GetString(cfgKeyDefaultName),
		RawValues:   v.GetBool(cfgKeyRawValues),
		Password:    v.GetString(cfgKeyPassword),
	}
}
