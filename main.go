package main

import (
	"bufio"
	"flag"
	"fmt"
	"net"
	"os"
	"runtime"
	"strings"
	"syscall"

	"crypto/tls"
	"crypto/x509"
	"os/signal"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/go-fleet/fieldsync/agent"
	"github.com/go-fleet/fieldsync/comm"
	"github.com/go-fleet/fieldsync/config"
)

// Functions

// initLogger initializes a JSON gokit-logger set
// to the according log level supplied via cli flag.
func initLogger(loglevel string) log.Logger {

	logger := log.NewJSONLogger(log.NewSyncWriter(os.Stdout))
	logger = log.With(logger,
		"ts", log.DefaultTimestampUTC,
		"caller", log.DefaultCaller,
	)

	switch strings.ToLower(loglevel) {
	case "info":
		logger = level.NewFilter(logger, level.AllowInfo())
	case "warn":
		logger = level.NewFilter(logger, level.AllowWarn())
	case "error":
		logger = level.NewFilter(logger, level.AllowError())
	default:
		logger = level.NewFilter(logger, level.AllowDebug())
	}

	return logger
}

// initListener opens the sync socket this agent accepts peer snapshots on,
// wrapped in TLS when certificate material is configured.
func initListener(conf *config.Config) (net.Listener, error) {

	if conf.TLS == nil {
		return net.Listen("tcp", conf.ListenSyncAddr)
	}

	tlsConfig := &tls.Config{
		Certificates:     make([]tls.Certificate, 1),
		MinVersion:       tls.VersionTLS12,
		CurvePreferences: []tls.CurveID{tls.CurveP521, tls.CurveP384, tls.CurveP256},
	}

	// Put in supplied TLS cert and key.
	var err error
	tlsConfig.Certificates[0], err = tls.LoadX509KeyPair(conf.TLS.CertLoc, conf.TLS.KeyLoc)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS cert and key: %v", err)
	}

	return tls.Listen("tcp", conf.ListenSyncAddr, tlsConfig)
}

// initPeerTLSConfig builds the TLS config for outgoing peer connections.
// All units of a fleet present the same certificate, so exactly that one
// is trusted for dialing out.
func initPeerTLSConfig(conf *config.Config) (*tls.Config, error) {

	if conf.TLS == nil {
		return nil, nil
	}

	rootCert, err := os.ReadFile(conf.TLS.CertLoc)
	if err != nil {
		return nil, fmt.Errorf("failed to read fleet certificate into memory: %v", err)
	}

	rootPool := x509.NewCertPool()
	if ok := rootPool.AppendCertsFromPEM(rootCert); !ok {
		return nil, fmt.Errorf("failed to append fleet certificate to trust pool")
	}

	return &tls.Config{
		MinVersion: tls.VersionTLS12,
		RootCAs:    rootPool,
	}, nil
}

func main() {

	var err error

	// Set CPUs usable by fieldsync to all available.
	runtime.GOMAXPROCS(runtime.NumCPU())

	// Parse command-line flag that defines a config path.
	configFlag := flag.String("config", "config.toml", "Provide path to configuration file in TOML syntax.")
	loglevelFlag := flag.String("loglevel", "debug", "This flag sets the default logging level.")
	flag.Parse()

	logger := initLogger(*loglevelFlag)

	// Read configuration from file.
	conf, err := config.LoadConfig(*configFlag)
	if err != nil {
		level.Error(logger).Log(
			"msg", "failed to load the config", "err", err,
		)
		os.Exit(1)
	}

	metrics := NewFieldsyncMetrics(conf.PrometheusAddr)

	// Initialize the service owning this agent's
	// replicated section set.
	svc := agent.NewLoggingService(agent.NewService(conf.Agent), logger)

	socket, err := initListener(conf)
	if err != nil {
		level.Error(logger).Log(
			"msg", "failed to open sync listener",
			"err", err,
		)
		os.Exit(2)
	}
	defer socket.Close()

	// Accept and merge peer snapshots in the background.
	recv := comm.InitReceiver(logger, conf.Agent, socket, svc.Set(), metrics.Agent.SnapshotsApplied, metrics.Agent.SnapshotsRejected)
	go func() {

		if err := recv.AcceptIncMsgs(); err != nil {
			level.Warn(logger).Log(
				"msg", "sync listener closed",
				"err", err,
			)
		}
	}()

	peerTLSConfig, err := initPeerTLSConfig(conf)
	if err != nil {
		level.Error(logger).Log(
			"msg", "failed to prepare TLS config for peer connections",
			"err", err,
		)
		os.Exit(3)
	}

	// Broadcast this agent's snapshot to all peers once per round.
	downSender := comm.InitSender(logger, conf.Agent, peerTLSConfig, conf.Interval(), svc.Sections, metrics.Agent.SnapshotsSent, conf.Peers)
	defer close(downSender)

	go runPromHTTP(logger, conf.PrometheusAddr)

	// Feed locally completed sections into the set. The machine
	// controller reports one section code per line on stdin.
	go func() {

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {

			section := strings.TrimSpace(scanner.Text())
			if section == "" {
				continue
			}

			svc.Record(section)
			metrics.Agent.SectionsRecorded.Add(1)
		}
	}()

	level.Info(logger).Log(
		"msg", "fieldsync agent running",
		"agent", conf.Agent,
		"listen", conf.ListenSyncAddr,
		"peers", len(conf.Peers),
	)

	// Block until told to shut down.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	<-sigs

	level.Info(logger).Log("msg", "shutting down")
}
