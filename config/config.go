package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	E "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	U "tfsp/util"
)

const (
	DEVELOPMENT = "development"
	STAGING     = "staging"
	PRODUCTION  = "production"
)

// Storage drivers for result logs and guarantee files.
const (
	StorageDisk = "disk"
	StorageGCS  = "gcs"
	StorageS3   = "s3"
)

// Policies for the "inf" token of the analytic kernel.
const (
	InfPolicySkip   = "skip"
	InfPolicyLegacy = "legacy"
)

// EnvPrefix namespaces every environment override, e.g. TFSP_KERNEL_SPMF_JAR.
const EnvPrefix = "tfsp"

type KernelConf struct {
	Java            string `json:"java" envconfig:"java"`
	JavaMaxHeap     string `json:"java_max_heap" envconfig:"java_max_heap"`
	SPMFJar         string `json:"spmf_jar" envconfig:"spmf_jar"`
	MiningAlgorithm string `json:"mining_algorithm" envconfig:"mining_algorithm"`
	ComputeLengths  string `json:"compute_lengths" envconfig:"compute_lengths"`
	RadeBound       string `json:"radebound" envconfig:"radebound"`
	ApproxRade      string `json:"approx_rade" envconfig:"approx_rade"`
	// Native runs the numeric kernels in-process instead of shelling out.
	Native          bool   `json:"native" envconfig:"native"`
	TimeoutSeconds  int    `json:"timeout_seconds" envconfig:"timeout_seconds"`
	MaxRetries      int    `json:"max_retries" envconfig:"max_retries"`
	CacheSize       int    `json:"cache_size" envconfig:"cache_size"`
}

type StorageConf struct {
	Driver     string `json:"driver" envconfig:"driver"`
	BucketName string `json:"bucket_name" envconfig:"bucket_name"`
	Region     string `json:"region" envconfig:"region"`
	// OutputDir receives result logs and guarantee files on local disk.
	OutputDir  string `json:"output_dir" envconfig:"output_dir"`
}

type SearchConf struct {
	InitialKappa  float64 `json:"initial_kappa" envconfig:"initial_kappa"`
	MaxIterations int     `json:"max_iterations" envconfig:"max_iterations"`
	InfPolicy     string  `json:"inf_policy" envconfig:"inf_policy"`
	// Seed fixes the sample splits. Zero seeds from the clock.
	Seed          int64   `json:"seed" envconfig:"seed"`
}

type Configuration struct {
	AppName string      `json:"app_name" envconfig:"app_name"`
	Env     string      `json:"env" envconfig:"env"`
	Kernel  KernelConf  `json:"kernel" envconfig:"kernel"`
	Storage StorageConf `json:"storage" envconfig:"storage"`
	Search  SearchConf  `json:"search" envconfig:"search"`
	Workers int         `json:"workers" envconfig:"workers"`
}

var configuration *Configuration = nil

// Default returns the settings the reference drivers ran with.
func Default() *Configuration {
	return &Configuration{
		AppName: "tfsp",
		Env:     DEVELOPMENT,
		Kernel: KernelConf{
			Java:            "java",
			JavaMaxHeap:     "50G",
			SPMFJar:         "src/spmf.jar",
			MiningAlgorithm: "PrefixSpan",
			ComputeLengths:  "./src/compute_lengths",
			RadeBound:       "./src/radebound",
			ApproxRade:      "./src/approx_rade",
			Native:          false,
			TimeoutSeconds:  0,
			MaxRetries:      2,
			CacheSize:       8,
		},
		Storage: StorageConf{
			Driver:    StorageDisk,
			OutputDir: "data/TFSP",
		},
		Search: SearchConf{
			InitialKappa:  10.0,
			MaxIterations: 64,
			InfPolicy:     InfPolicySkip,
		},
		Workers: 1,
	}
}

// Load builds a configuration from defaults, an optional JSON file, an
// optional dotenv file and TFSP_* environment variables, in that order.
func Load(configFilepath, dotEnvFilepath string) (*Configuration, error) {
	conf := Default()

	if configFilepath != "" {
		if err := loadFromFile(configFilepath, conf); err != nil {
			return nil, err
		}
	}

	if dotEnvFilepath != "" && U.FileExists(dotEnvFilepath) {
		// Existing environment variables win over the dotenv file.
		if err := godotenv.Load(dotEnvFilepath); err != nil {
			return nil, E.Wrapf(err, "failed to load env file %s", dotEnvFilepath)
		}
	}

	if err := envconfig.Process(EnvPrefix, conf); err != nil {
		return nil, E.Wrap(err, "failed to read environment overrides")
	}
	return conf, nil
}

func loadFromFile(configFilepath string, conf *Configuration) error {
	configFileAbsPath, _ := filepath.Abs(configFilepath)
	logCtx := log.WithFields(log.Fields{"file": configFileAbsPath})

	raw, err := ioutil.ReadFile(configFileAbsPath)
	if err != nil {
		logCtx.WithError(err).Error("Failed to load config")
		return E.Wrapf(err, "failed to read config file %s", configFileAbsPath)
	}
	if err := json.Unmarshal(raw, conf); err != nil {
		logCtx.WithError(err).Error("Failed to unmarshal json")
		return E.Wrapf(err, "failed to parse config file %s", configFileAbsPath)
	}
	logCtx.Debug("Config File Loaded")
	return nil
}

// Validate rejects settings the engine cannot run with.
func (c *Configuration) Validate() error {
	switch c.Env {
	case DEVELOPMENT, STAGING, PRODUCTION:
	default:
		return fmt.Errorf("env [ %s ] not recognised", c.Env)
	}
	switch c.Storage.Driver {
	case StorageDisk:
	case StorageGCS, StorageS3:
		if c.Storage.BucketName == "" {
			return fmt.Errorf("storage driver %s needs a bucket name", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Search.InfPolicy {
	case InfPolicySkip, InfPolicyLegacy:
	default:
		return fmt.Errorf("unknown inf policy %q", c.Search.InfPolicy)
	}
	if c.Search.InitialKappa <= 0 {
		return fmt.Errorf("initial kappa must be positive, got %v", c.Search.InitialKappa)
	}
	if c.Search.MaxIterations < 1 {
		return fmt.Errorf("max iterations must be at least one, got %d", c.Search.MaxIterations)
	}
	if c.Kernel.MaxRetries < 0 || c.Kernel.TimeoutSeconds < 0 {
		return fmt.Errorf("kernel retries and timeout cannot be negative")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least one, got %d", c.Workers)
	}
	if c.Kernel.SPMFJar == "" {
		return fmt.Errorf("spmf jar path is required")
	}
	return nil
}

// KernelTimeout is zero when external invocations may run unbounded.
func (c *Configuration) KernelTimeout() time.Duration {
	return time.Duration(c.Kernel.TimeoutSeconds) * time.Second
}

// InitConf validates and installs the process wide configuration.
func InitConf(c *Configuration) error {
	if c == nil {
		return fmt.Errorf("nil configuration")
	}
	if err := c.Validate(); err != nil {
		return err
	}
	configuration = c
	initLogging()
	return nil
}

func initLogging() {
	// Log as JSON instead of the default ASCII formatter.
	log.SetFormatter(&log.JSONFormatter{})

	if IsDevelopment() {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func GetConfig() *Configuration {
	return configuration
}

func IsDevelopment() bool {
	return configuration != nil && strings.Compare(configuration.Env, DEVELOPMENT) == 0
}
