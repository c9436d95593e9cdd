// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jessevdk/go-flags"
	"github.com/sapcc/go-bits/logg"
	log "github.com/sirupsen/logrus"
)

var (
	Global  Jobly
	Version = "0.1.0"
)

type Jobly struct {
	ConfigFile  string      `long:"config-file" description:"Use config file"`
	Default     Default     `group:"DEFAULT"`
	Database    Database    `group:"database"`
	ApiSettings ApiSettings `group:"api_settings"`
	Auth        Auth        `group:"auth"`
}

type Default struct {
	Debug            bool   `short:"d" long:"debug" description:"Show debug information"`
	Host             string `long:"hostname" ini-name:"host" description:"Hostname used by the server. Defaults to auto-discovery."`
	Prometheus       bool   `long:"prometheus" description:"Enable prometheus exporter."`
	PrometheusListen string `long:"prometheus-listen" ini-name:"prometheus_listen" default:"127.0.0.1:9090" description:"Prometheus listen TCP network address."`
	SentryDSN        string `long:"sentry-dsn" ini-name:"sentry_dsn" env:"SENTRY_DSN" description:"Sentry DSN, error reporting is disabled if empty."`
}

type ApiSettings struct {
	Listen       string  `long:"listen" ini-name:"listen" default:"127.0.0.1:3001" description:"API listen TCP network address."`
	ApiBaseURL   string  `long:"api_base_uri" ini-name:"api_base_uri" description:"Base URI of the API. This will be autodetected from the request if not overridden here."`
	AuthStrategy string  `long:"auth-strategy" ini-name:"auth_strategy" description:"The auth strategy for API requests, currently supported: [jwt, none]" default:"jwt"`
	RateLimit    float64 `long:"rate-limit" ini-name:"rate_limit" default:"100" description:"Maximum number of requests to limit per second."`
	DisableCors  bool    `long:"disable-cors" ini-name:"disable_cors" description:"Stops sending Access-Control-Allow-Origin Header to allow cross-origin requests."`
}

type Database struct {
	Connection string        `long:"database-connection" ini-name:"connection" env:"DATABASE_URL" description:"Connection string to use to connect to the database."`
	Trace      bool          `long:"database-trace" ini-name:"trace" description:"Trace all database queries."`
	Timeout    time.Duration `long:"database-timeout" ini-name:"connect_timeout" default:"30s" description:"How long to wait for the database to become available."`
}

type Auth struct {
	SecretKey     string        `long:"secret-key" ini-name:"secret_key" env:"SECRET_KEY" description:"HMAC key used to sign and verify tokens."`
	TokenLifetime time.Duration `long:"token-lifetime" ini-name:"token_lifetime" default:"24h" description:"Validity of issued tokens."`
}

// ParseConfig applies the ini file given by --config-file on top of the
// parsed command line and configures logging.
func ParseConfig(parser *flags.Parser) {
	if Global.ConfigFile != "" {
		iniParser := flags.NewIniParser(parser)
		if err := iniParser.ParseFile(Global.ConfigFile); err != nil {
			var pe *os.PathError
			if errors.As(err, &pe) {
				logg.Fatal("config file %s: %s", Global.ConfigFile, pe.Err.Error())
			}
			logg.Fatal(err.Error())
		}
	}

	if IsDebug() {
		logg.ShowDebug = true
		log.SetLevel(log.DebugLevel)
	}
}

func InitSentry() {
	if Global.Default.SentryDSN == "" {
		return
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:        Global.Default.SentryDSN,
		Release:    Version,
		ServerName: HostName(),
		Debug:      IsDebug(),
	}); err != nil {
		logg.Fatal("sentry.Init: %s", err.Error())
	}
	logg.Info("Sentry error reporting enabled")
}

func IsDebug() bool {
	return Global.Default.Debug
}

func HostName() string {
	if Global.Default.Host == "" {
		host, err := os.Hostname()
		if err != nil {
			logg.Fatal(err.Error())
		}
		return host
	}

	return Global.Default.Host
}

// GetApiBaseUrl returns the configured base URL or derives it from r.
func GetApiBaseUrl(r *http.Request) string {
	if Global.ApiSettings.ApiBaseURL != "" {
		return Global.ApiSettings.ApiBaseURL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}
