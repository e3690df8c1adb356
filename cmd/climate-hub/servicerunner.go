package main

import (
	"github.com/diwise/climate-hub/internal/pkg/application/notifications"
	"github.com/diwise/service-chassis/pkg/infrastructure/servicerunner"
)

// appConfig carries the parts of the configuration that the servicerunner
// hands back to the lifecycle hooks.
type appConfig struct {
	notifications *notifications.Config
}

type flagType int
type flagMap map[flagType]string

const (
	listenAddress flagType = iota
	servicePort
	controlPort
	enableTracing

	policiesFile
	configurationFile

	cloudEmail
	cloudPassword
	cloudRegion
)

var (
	webserver  = servicerunner.WithHTTPServeMux[appConfig]
	listen     = servicerunner.WithListenAddr[appConfig]
	port       = servicerunner.WithPort[appConfig]
	pprof      = servicerunner.WithPPROF[appConfig]
	liveness   = servicerunner.WithK8SLivenessProbe[appConfig]
	readiness  = servicerunner.WithK8SReadinessProbes[appConfig]
	tracing    = servicerunner.WithTracing[appConfig]
	muxinit    = servicerunner.OnMuxInit[appConfig]
	oninit     = servicerunner.OnInit[appConfig]
	onstarting = servicerunner.OnStarting[appConfig]
	onshutdown = servicerunner.OnShutdown[appConfig]
)
