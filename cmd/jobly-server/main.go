// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"

	"github.com/sapcc/jobly/internal/config"
	"github.com/sapcc/jobly/internal/policy"
	"github.com/sapcc/jobly/internal/server"
)

func main() {
	parser := flags.NewParser(&config.Global, flags.Default)
	parser.ShortDescription = "Jobly"
	parser.LongDescription = "Jobly serves the company directory of a job board."

	if _, err := parser.Parse(); err != nil {
		code := 1
		var fe *flags.Error
		if errors.As(err, &fe) {
			if fe.Type == flags.ErrHelp {
				code = 0
			}
		}
		os.Exit(code)
	}

	config.ParseConfig(parser)
	config.InitSentry()
	policy.SetPolicyEngine(config.Global.ApiSettings.AuthStrategy)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := server.Run(ctx)
	sentry.Flush(2 * time.Second)
	if err != nil {
		log.Fatal(err.Error())
	}
}
