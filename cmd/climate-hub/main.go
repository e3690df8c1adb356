package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/diwise/climate-hub/internal/pkg/application/coordinator"
	"github.com/diwise/climate-hub/internal/pkg/application/notifications"
	"github.com/diwise/climate-hub/internal/pkg/infrastructure/auxcloud"
	"github.com/diwise/climate-hub/internal/pkg/presentation/api"
	"github.com/diwise/climate-hub/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	k8shandlers "github.com/diwise/service-chassis/pkg/infrastructure/net/http/handlers"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/servicerunner"
)

const serviceName string = "climate-hub"

func defaultFlags() flagMap {
	return flagMap{
		listenAddress: "0.0.0.0",
		servicePort:   "8080",
		controlPort:   "8000",
		enableTracing: "true",

		policiesFile:      "/opt/diwise/config/authz.rego",
		configurationFile: "/opt/diwise/config/config.yaml",

		cloudEmail:    "",
		cloudPassword: "",
		cloudRegion:   "eu",
	}
}

func main() {
	ctx, flags := parseExternalConfig(context.Background(), defaultFlags())

	serviceVersion := buildinfo.SourceVersion()
	ctx, logger, cleanup := o11y.Init(ctx, serviceName, serviceVersion, "json")
	defer cleanup()

	policies, err := os.Open(flags[policiesFile])
	exitIf(err, logger, "unable to open opa policy file")

	var notificationCfg *notifications.Config

	cfgFile, err := os.Open(flags[configurationFile])
	if err == nil {
		notificationCfg, err = notifications.LoadConfiguration(cfgFile)
		cfgFile.Close()
		exitIf(err, logger, "could not parse configuration file")
	}

	runner, err := initialize(ctx, flags, policies, notificationCfg)
	exitIf(err, logger, "failed to initialize service runner")

	err = runner.Run(ctx)
	exitIf(err, logger, "failed to start service runner")
}

func initialize(ctx context.Context, flags flagMap, policies io.ReadCloser, notificationCfg *notifications.Config) (servicerunner.Runner[appConfig], error) {
	defer policies.Close()

	log := logging.GetFromContext(ctx)

	if flags[cloudEmail] == "" || flags[cloudPassword] == "" {
		return nil, fmt.Errorf("AUXCLOUD_EMAIL and AUXCLOUD_PASSWORD must be set")
	}

	region, err := auxcloud.ParseRegion(flags[cloudRegion])
	if err != nil {
		return nil, err
	}

	messenger, err := messaging.Initialize(ctx, messaging.LoadConfiguration(ctx, serviceName, log))
	if err != nil {
		return nil, fmt.Errorf("failed to init messenger: %w", err)
	}

	probes := map[string]k8shandlers.ServiceProber{
		"rabbitmq": func(context.Context) (string, error) { return "ok", nil },
	}

	cloud := auxcloud.New(region)

	var svc coordinator.Coordinator
	var listener *auxcloud.PushListener
	var notifier notifications.Notifier

	cfg := appConfig{notifications: notificationCfg}

	_, runner := servicerunner.New(ctx, cfg,
		webserver("control", listen(flags[listenAddress]), port(flags[controlPort]),
			pprof(), liveness(func() error { return nil }), readiness(probes),
		),
		webserver("public", listen(flags[listenAddress]), port(flags[servicePort]), tracing(flags[enableTracing] == "true"),
			muxinit(func(ctx context.Context, identifier string, port string, appCfg *appConfig, handler *http.ServeMux) error {
				return api.RegisterHandlers(ctx, handler, policies, svc)
			}),
		),
		oninit(func(ctx context.Context, ac *appConfig) (err error) {
			log.Debug("initializing servicerunner")

			svc = coordinator.New(cloud, messenger)
			notifier, err = notifications.New(ac.notifications)

			return
		}),
		onstarting(func(ctx context.Context, appCfg *appConfig) (err error) {
			log.Debug("starting servicerunner")

			err = cloud.Login(ctx, flags[cloudEmail], flags[cloudPassword])
			if err != nil {
				return fmt.Errorf("cloud login failed: %w", err)
			}

			err = svc.Start(ctx)
			if err != nil {
				return
			}

			// the listener binds to the session established by the login
			listener = auxcloud.NewPushListener(cloud, svc.HandlePushMessage)
			listener.Start(ctx)

			messenger.Start()

			err = svc.RegisterTopicMessageHandler(ctx)
			if err != nil {
				return
			}

			err = messenger.RegisterTopicMessageHandler(
				(&types.DeviceStateUpdated{}).TopicName(),
				notifications.NewDeviceStateUpdatedHandler(notifier),
			)

			return
		}),
		onshutdown(func(ctx context.Context, appCfg *appConfig) error {
			log.Debug("shutdown servicerunner")

			if listener != nil {
				listener.Stop()
			}

			err := svc.Stop(ctx)
			messenger.Close()

			return err
		}),
	)

	return runner, nil
}

func parseExternalConfig(ctx context.Context, flags flagMap) (context.Context, flagMap) {
	// Allow environment variables to override certain defaults
	envOrDef := env.GetVariableOrDefault

	flags[listenAddress] = envOrDef(ctx, "LISTEN_ADDRESS", flags[listenAddress])
	flags[controlPort] = envOrDef(ctx, "CONTROL_PORT", flags[controlPort])
	flags[servicePort] = envOrDef(ctx, "SERVICE_PORT", flags[servicePort])

	flags[policiesFile] = envOrDef(ctx, "POLICIES_FILE", flags[policiesFile])
	flags[enableTracing] = envOrDef(ctx, "ENABLE_TRACING", flags[enableTracing])

	flags[cloudEmail] = envOrDef(ctx, "AUXCLOUD_EMAIL", flags[cloudEmail])
	flags[cloudPassword] = envOrDef(ctx, "AUXCLOUD_PASSWORD", flags[cloudPassword])
	flags[cloudRegion] = envOrDef(ctx, "AUXCLOUD_REGION", flags[cloudRegion])

	apply := func(f flagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("policies", "an authorization policy file", apply(policiesFile))
	flag.Func("config", "notification configuration file", apply(configurationFile))
	flag.Func("region", "aux cloud region (eu, usa or cn)", apply(cloudRegion))
	flag.Parse()

	return ctx, flags
}

func exitIf(err error, logger *slog.Logger, msg string, args ...any) {
	if err != nil {
		logger.With(args...).Error(msg, "err", err.Error())
		time.Sleep(2 * time.Second)
		os.Exit(1)
	}
}
