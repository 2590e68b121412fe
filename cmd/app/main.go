package main

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/tolgakurtuluss/hotel-accounting-system/config"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/appServer"
)

func main() {
	flags := config.NewFlagSet(os.Args[0])
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		logrus.Fatalf("error parsing flags: %s", err.Error())
	}

	viperCfg, err := config.LoadConfig(flags)
	if err != nil {
		logrus.Fatalf("error initializing configs: %s", err.Error())
	}

	cfg, err := config.ParseConfig(viperCfg)
	if err != nil {
		logrus.Fatalf("error parsing configs: %s", err.Error())
	}

	closeLog, err := appServer.SetupLogging(&cfg.Logging)
	if err != nil {
		logrus.Fatalf("error configuring logging: %s", err.Error())
	}
	defer closeLog()

	if err := appServer.Start(cfg, os.Stdin, os.Stdout); err != nil {
		logrus.Errorf("app stopped with error: %s", err.Error())
		closeLog()
		os.Exit(1)
	}
}
