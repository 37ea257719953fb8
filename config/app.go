package config

import (
	"io/ioutil"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

type ConvocationConfig struct {
	AcceptanceWindow time.Duration `yaml:"acceptance_window"`
	ReleaseGrace     time.Duration `yaml:"release_grace"`
	DefaultDuration  int           `yaml:"default_duration_minutes"`
}

type FeeDefaults struct {
	Convocation   decimal.Decimal `yaml:"convocation"`
	Recharge      decimal.Decimal `yaml:"recharge"`
	Withdrawal    decimal.Decimal `yaml:"withdrawal"`
	CoinsPerReal  decimal.Decimal `yaml:"coins_per_real"`
	MinWithdrawal decimal.Decimal `yaml:"min_withdrawal"`
	MinRecharge   decimal.Decimal `yaml:"min_recharge"`
}

type JobsConfig struct {
	ExpirySweepSeconds  uint64 `yaml:"expiry_sweep_seconds"`
	ReleaseSweepMinutes uint64 `yaml:"release_sweep_minutes"`
}

type EventsConfig struct {
	SubjectPrefix string `yaml:"subject_prefix"`
	QueueGroup    string `yaml:"queue_group"`
}

type PixConfig struct {
	MerchantKey  string `yaml:"merchant_key"`
	MerchantName string `yaml:"merchant_name"`
	MerchantCity string `yaml:"merchant_city"`
}

type AppConfig struct {
	Convocation ConvocationConfig `yaml:"convocation"`
	Fees        FeeDefaults       `yaml:"fees"`
	Jobs        JobsConfig        `yaml:"jobs"`
	Events      EventsConfig      `yaml:"events"`
	Pix         PixConfig         `yaml:"pix"`
}

var App = DefaultAppConfig()

func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Convocation: ConvocationConfig{
			AcceptanceWindow: 30 * time.Minute,
			ReleaseGrace:     24 * time.Hour,
			DefaultDuration:  60,
		},
		Fees: FeeDefaults{
			Convocation:   decimal.NewFromInt(10),
			Recharge:      decimal.Zero,
			Withdrawal:    decimal.NewFromInt(2),
			CoinsPerReal:  decimal.NewFromInt(1),
			MinWithdrawal: decimal.NewFromInt(20),
			MinRecharge:   decimal.NewFromInt(10),
		},
		Jobs: JobsConfig{
			ExpirySweepSeconds:  60,
			ReleaseSweepMinutes: 10,
		},
		Events: EventsConfig{
			SubjectPrefix: "goleiroon.events",
			QueueGroup:    "goleiroon",
		},
		Pix: PixConfig{
			MerchantName: "GOLEIROON",
			MerchantCity: "SAO PAULO",
		},
	}
}

// LoadAppConfig overlays the yaml file at path onto the defaults. A missing file keeps the defaults.
func LoadAppConfig(path string) error {
	cfg := DefaultAppConfig()

	buf, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		Logger.Warnf("%s not found, using default app config", path)
		App = cfg
		return nil
	} else if err != nil {
		return err
	}

	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return err
	}

	App = cfg

	return nil
}
