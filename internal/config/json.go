package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout of the JSON
// config file. Durations are written as strings ("30s").
type StructuredJSONConfig struct {
	App struct {
		Env                string   `json:"env"`
		TokenSignKey       string   `json:"token_sign_key"`
		TokenIssuer        string   `json:"token_issuer"`
		TokenDuration      Duration `json:"token_duration"`
		CookieDuration     Duration `json:"cookie_duration"`
		PasswordCost       int      `json:"password_cost"`
		ResetTokenDuration Duration `json:"reset_token_duration"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Redis struct {
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		GRPCAddress     string   `json:"grpc_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		RateLimit       int      `json:"rate_limit"`
		RateLimitWindow Duration `json:"rate_limit_window"`
		BodyLimit       int64    `json:"body_limit"`
		TrustProxy      bool     `json:"trust_proxy"`
	} `json:"server,omitempty"`

	Adapter struct {
		Mail struct {
			APIKey      string `json:"api_key"`
			FromAddress string `json:"from_address"`
			FromName    string `json:"from_name"`
		} `json:"mail,omitempty"`
	} `json:"adapter,omitempty"`

	Workers struct {
		ResetTokenCleanup string `json:"reset_token_cleanup"`
		LimiterCleanup    string `json:"limiter_cleanup"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Env:                jsonCfg.App.Env,
			TokenSignKey:       jsonCfg.App.TokenSignKey,
			TokenIssuer:        jsonCfg.App.TokenIssuer,
			TokenDuration:      time.Duration(jsonCfg.App.TokenDuration),
			CookieDuration:     time.Duration(jsonCfg.App.CookieDuration),
			PasswordCost:       jsonCfg.App.PasswordCost,
			ResetTokenDuration: time.Duration(jsonCfg.App.ResetTokenDuration),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Redis: Redis{
				Address:  jsonCfg.Storage.Redis.Address,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			GRPCAddress:     jsonCfg.Server.GRPCAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			RateLimit:       jsonCfg.Server.RateLimit,
			RateLimitWindow: time.Duration(jsonCfg.Server.RateLimitWindow),
			BodyLimit:       jsonCfg.Server.BodyLimit,
			TrustProxy:      jsonCfg.Server.TrustProxy,
		},
		Adapter: Adapter{
			Mail: Mail{
				APIKey:      jsonCfg.Adapter.Mail.APIKey,
				FromAddress: jsonCfg.Adapter.Mail.FromAddress,
				FromName:    jsonCfg.Adapter.Mail.FromName,
			},
		},
		Workers: Workers{
			ResetTokenCleanup: jsonCfg.Workers.ResetTokenCleanup,
			LimiterCleanup:    jsonCfg.Workers.LimiterCleanup,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as plain nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
