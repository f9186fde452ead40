/*
 * Copyright 2019 The CovenantSQL Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package conf

import (
	"io/ioutil"

	"github.com/mohae/deepcopy"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/validator.v9"
	"gopkg.in/yaml.v2"

	"github.com/CovenantSQL/ethkey/crypto/asymmetric"
	"github.com/CovenantSQL/ethkey/crypto/kms"
	"github.com/CovenantSQL/ethkey/utils"
	"github.com/CovenantSQL/ethkey/utils/log"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// WorkerConfig selects and sizes the execution context.
type WorkerConfig struct {
	// Mode is "pool" or "emulated".
	Mode string `yaml:"Mode" validate:"oneof=pool emulated"`
	// Workers is the pool size, 0 means runtime.NumCPU().
	Workers   int `yaml:"Workers" validate:"gte=0"`
	QueueSize int `yaml:"QueueSize" validate:"gte=0"`
	// StrictActions turns unknown actions into errors instead of null results.
	StrictActions bool `yaml:"StrictActions"`
}

// DeriveConfig tunes wallet derivation.
type DeriveConfig struct {
	// MaxAttempts caps the search, 0 keeps it unbounded.
	MaxAttempts int    `yaml:"MaxAttempts" validate:"gte=0"`
	Curve       string `yaml:"Curve"`
}

// KeystoreConfig selects the key derivation of new key records.
type KeystoreConfig struct {
	KDF     string `yaml:"KDF"`
	PBKDF2C int    `yaml:"PBKDF2C"`
	ScryptN int    `yaml:"ScryptN"`
	ScryptR int    `yaml:"ScryptR"`
	ScryptP int    `yaml:"ScryptP"`
}

// Config holds all the config read from yaml config file.
type Config struct {
	LogLevel string         `yaml:"LogLevel" validate:"omitempty,oneof=trace debug info warning warn error fatal panic"`
	Worker   WorkerConfig   `yaml:"Worker"`
	Derive   DeriveConfig   `yaml:"Derive"`
	Keystore KeystoreConfig `yaml:"Keystore"`
	// WSAPIAddr is the websocket JSON-RPC listen address, empty disables it.
	WSAPIAddr string `yaml:"WSAPIAddr"`
	// MetricWeb is the metrics listen address, empty disables it.
	MetricWeb string `yaml:"MetricWeb"`
}

// GConf is the global config pointer.
var GConf *Config

// DefaultConfig returns a config with every field set to its default.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Worker: WorkerConfig{
			Mode:      ModePool,
			QueueSize: DefaultQueueSize,
		},
		Derive: DeriveConfig{
			Curve: asymmetric.EthereumCurveName,
		},
		Keystore: KeystoreConfig{
			KDF:     kms.KDFPBKDF2,
			PBKDF2C: kms.DefaultPBKDF2C,
			ScryptN: kms.DefaultScryptN,
			ScryptR: kms.DefaultScryptR,
			ScryptP: kms.DefaultScryptP,
		},
	}
}

// LoadConfig loads config from configPath on top of DefaultConfig and
// validates it.
func LoadConfig(configPath string) (config *Config, err error) {
	configBytes, err := ioutil.ReadFile(utils.HomeDirExpand(configPath))
	if err != nil {
		log.WithError(err).Error("read config file failed")
		return nil, errors.Wrap(err, "read config file failed")
	}
	config = DefaultConfig()
	if err = yaml.Unmarshal(configBytes, config); err != nil {
		log.WithError(err).Error("unmarshal config file failed")
		return nil, errors.Wrap(err, "unmarshal config file failed")
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return
}

// KDFParams converts the keystore section to kms parameters.
func (c *Config) KDFParams() kms.Params {
	p := kms.Params{
		KDF:   c.Keystore.KDF,
		DKLen: kms.DerivedKeyLength,
	}
	switch p.KDF {
	case kms.KDFPBKDF2:
		p.C = c.Keystore.PBKDF2C
	case kms.KDFScrypt:
		p.N, p.R, p.P = c.Keystore.ScryptN, c.Keystore.ScryptR, c.Keystore.ScryptP
	}
	return p
}

// Curve returns the configured secp256k1 backend.
func (c *Config) Curve() (asymmetric.Curve, error) {
	return asymmetric.CurveByName(c.Derive.Curve)
}

// Clone returns a deep copy for per command overrides.
func (c *Config) Clone() *Config {
	return deepcopy.Copy(c).(*Config)
}

var validate = validator.New()

// Validate rejects unknown names and out of range numbers.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if _, err := c.Curve(); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if err := c.KDFParams().Validate(); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	return nil
}
