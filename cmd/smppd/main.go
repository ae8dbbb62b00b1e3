/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/coreos/go-systemd/daemon"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/sys/unix"

	"github.com/smpp-go/smpp/smppserver"
)

func main() {
	var configFile, logLevel, pidFile string

	flag.StringVar(&configFile, "config-file", os.Getenv("SMPPD_CONFIG_FILE"), "path to the YAML config file (or set SMPPD_CONFIG_FILE)")
	flag.StringVar(&logLevel, "loglevel", "info", "set a log level. Can be: debug, info, warning, error")
	flag.StringVar(&pidFile, "pidfile", "", "pid file location (disabled if empty)")
	flag.Parse()

	switch logLevel {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warning":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.Fatalf("unrecognized log level: %v", logLevel)
	}

	if configFile == "" {
		log.Fatal("missing --config-file (or SMPPD_CONFIG_FILE)")
	}
	cfg, err := smppserver.ReadConfig(configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if pidFile != "" {
		if err := os.WriteFile(pidFile, []byte(fmt.Sprintf("%d\n", unix.Getpid())), 0644); err != nil {
			log.Fatalf("failed to write pidfile: %v", err)
		}
		defer os.Remove(pidFile)
	}

	reg := prometheus.NewRegistry()
	metrics := smppserver.NewMetrics(reg)
	reg.MustRegister(smppserver.NewSysStats())

	if cfg.MonitoringAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			log.Infof("serving metrics on %s/metrics", cfg.MonitoringAddr)
			log.Warning(http.ListenAndServe(cfg.MonitoringAddr, mux))
		}()
	}

	srv := smppserver.NewServer(*cfg)
	srv.Metrics = metrics

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Infof("received signal %s, shutting down", sig)
		cancel()
	}()

	log.Infof("smppd starting, system ids accepted: %s", acceptedSystemIDs(cfg))
	if err := srv.Listen(); err != nil {
		log.Fatalf("listen failed: %v", err)
	}
	if sent, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		log.WithError(err).Debug("smppd: SdNotify failed")
	} else if sent {
		log.Debug("smppd: notified systemd of readiness")
	}
	if err := srv.Serve(ctx); err != nil {
		log.Fatalf("server run failed: %v", err)
	}
}

// acceptedSystemIDs summarizes the configured credentials for the
// startup log line, deduplicating repeated system_ids the way a
// hand-rolled loop easily gets wrong (golang.org/x/exp/maps.Keys does
// the set-to-slice step ptp/sptp/client/sysstats_test.go relies on for
// its own map-of-metrics comparisons).
func acceptedSystemIDs(cfg *smppserver.Config) string {
	if len(cfg.Credentials) == 0 {
		return "any"
	}
	seen := make(map[string]struct{}, len(cfg.Credentials))
	for _, c := range cfg.Credentials {
		seen[c.SystemID] = struct{}{}
	}
	ids := maps.Keys(seen)
	sort.Strings(ids)
	return strings.Join(ids, ",") + " (" + strconv.Itoa(len(ids)) + " total)"
}
