/*
 * DiceCalc
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package config contains the configuration of DiceCalc.

The configuration is a map of known options. It can be loaded from a JSON
file and individual options can be overridden by environment variables.
*/
package config

import (
	"fmt"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/krotik/common/errorutil"
	"github.com/krotik/common/fileutil"
)

// Global variables
// ================

/*
DefaultConfigFile is the default config file which will be used to configure DiceCalc
*/
var DefaultConfigFile = "dicecalc.config.json"

/*
Known configuration options for DiceCalc
*/
const (
	MaxDiceQuantity         = "MaxDiceQuantity"
	MaxDiceFaces            = "MaxDiceFaces"
	ParseCacheMaxSize       = "ParseCacheMaxSize"
	ParseCacheMaxAgeSeconds = "ParseCacheMaxAgeSeconds"
	LogLevel                = "LogLevel"
)

/*
DefaultConfig is the defaut configuration
*/
var DefaultConfig = map[string]interface{}{
	MaxDiceQuantity:         "1000",
	MaxDiceFaces:            "1000000",
	ParseCacheMaxSize:       "1000",
	ParseCacheMaxAgeSeconds: "0",
	LogLevel:                "info",
}

/*
Config is the actual config which is used
*/
var Config map[string]interface{}

func init() {
	LoadDefaultConfig()
}

/*
LoadConfigFile loads a given config file. If the config file does not exist it is
created with the default options.
*/
func LoadConfigFile(configfile string) error {
	var err error

	Config, err = fileutil.LoadConfig(configfile, DefaultConfig)

	return err
}

/*
LoadDefaultConfig loads the default configuration.
*/
func LoadDefaultConfig() {
	data := make(map[string]interface{})
	for k, v := range DefaultConfig {
		data[k] = v
	}

	Config = data
}

/*
envConfig lists the environment variables which can override config options.
*/
type envConfig struct {
	MaxDiceQuantity         *int64  `env:"DICECALC_MAX_DICE_QUANTITY"`
	MaxDiceFaces            *int64  `env:"DICECALC_MAX_DICE_FACES"`
	ParseCacheMaxSize       *int64  `env:"DICECALC_PARSE_CACHE_MAX_SIZE"`
	ParseCacheMaxAgeSeconds *int64  `env:"DICECALC_PARSE_CACHE_MAX_AGE_SECONDS"`
	LogLevel                *string `env:"DICECALC_LOG_LEVEL"`
}

/*
LoadEnvConfig overrides config options with the values of environment
variables. Options without an environment variable keep their value.
*/
func LoadEnvConfig() error {
	var ec envConfig

	if err := env.Parse(&ec); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if Config == nil {
		LoadDefaultConfig()
	}

	for k, v := range map[string]*int64{
		MaxDiceQuantity:         ec.MaxDiceQuantity,
		MaxDiceFaces:            ec.MaxDiceFaces,
		ParseCacheMaxSize:       ec.ParseCacheMaxSize,
		ParseCacheMaxAgeSeconds: ec.ParseCacheMaxAgeSeconds,
	} {
		if v != nil {
			Config[k] = fmt.Sprint(*v)
		}
	}

	if ec.LogLevel != nil {
		Config[LogLevel] = *ec.LogLevel
	}

	return nil
}

// Helper functions
// ================

/*
Str reads a config value as a string value.
*/
func Str(key string) string {
	return fmt.Sprint(Config[key])
}

/*
Int reads a config value as an int value.
*/
func Int(key string) int64 {

	// Numbers from JSON config files are floats

	if f, ok := Config[key].(float64); ok {
		return int64(f)
	}

	ret, err := strconv.ParseInt(fmt.Sprint(Config[key]), 10, 64)

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return ret
}
