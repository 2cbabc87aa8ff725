package observability

import (
	crerr "github.com/cockroachdb/errors"
	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/team-growth/internal/config"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
)

var (
	baseProfiles = []pyroscope.ProfileType{
		pyroscope.ProfileCPU,
		pyroscope.ProfileAllocSpace,
		pyroscope.ProfileInuseSpace,
		pyroscope.ProfileGoroutines,
	}
	// Lock profiles cover the keyed match mutexes and the batch worker pool.
	contentionProfiles = []pyroscope.ProfileType{
		pyroscope.ProfileAllocObjects,
		pyroscope.ProfileInuseObjects,
		pyroscope.ProfileMutexCount,
		pyroscope.ProfileMutexDuration,
		pyroscope.ProfileBlockCount,
		pyroscope.ProfileBlockDuration,
	}
)

// InitPyroscope starts continuous profiling when enabled. Production only
// uploads the base profiles.
func InitPyroscope(cfg config.Config, logger *logging.Logger) (func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if !cfg.PyroscopeEnabled {
		logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return func() error { return nil }, nil
	}

	profiles := profileTypes(cfg.AppEnv)
	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":          cfg.AppEnv,
			"service":      cfg.ServiceName,
			"version":      cfg.ServiceVersion,
			"store_driver": cfg.StoreDriver,
		},
		ProfileTypes: profiles,
	})
	if err != nil {
		return nil, crerr.Wrapf(err, "start pyroscope profiler for %s", cfg.PyroscopeServerAddress)
	}

	logger.Info("pyroscope enabled",
		"server_address", cfg.PyroscopeServerAddress,
		"application", cfg.PyroscopeAppName,
		"profiles", len(profiles),
	)
	return profiler.Stop, nil
}

func profileTypes(env string) []pyroscope.ProfileType {
	if env == config.EnvProd {
		return baseProfiles
	}
	out := make([]pyroscope.ProfileType, 0, len(baseProfiles)+len(contentionProfiles))
	out = append(out, baseProfiles...)
	return append(out, contentionProfiles...)
}
