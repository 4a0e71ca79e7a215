package config

import (
	"flag"
)

// Flags are the settings every script accepts on its command line. Flags
// left unset keep the value from the config file or environment.
type Flags struct {
	Env            *string
	ConfigFile     *string
	DotEnvFile     *string
	OutputDir      *string
	StorageDriver  *string
	BucketName     *string
	Region         *string
	Native         *bool
	Workers        *int
	InfPolicy      *string
	MaxIterations  *int
	TimeoutSeconds *int
	Seed           *int64
}

// RegisterFlags adds the shared flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		Env:            fs.String("env", "", "development, staging or production"),
		ConfigFile:     fs.String("config_filepath", "", "Optional JSON configuration file"),
		DotEnvFile:     fs.String("dotenv", ".env", "Optional file with TFSP_* variables"),
		OutputDir:      fs.String("output_dir", "", "Directory for result logs and guarantee files"),
		StorageDriver:  fs.String("storage", "", "Result storage: disk, gcs or s3"),
		BucketName:     fs.String("bucket_name", "", "Bucket for the gcs and s3 drivers"),
		Region:         fs.String("region", "", "Region for the s3 driver"),
		Native:         fs.Bool("native", false, "Run the numeric kernels in-process"),
		Workers:        fs.Int("num_routines", 0, "Concurrent sweep jobs"),
		InfPolicy:      fs.String("inf_policy", "", "skip or legacy handling of infinite bounds"),
		MaxIterations:  fs.Int("max_iterations", 0, "Iteration cap of the empirical search"),
		TimeoutSeconds: fs.Int("timeout_seconds", -1, "Timeout of every external invocation, 0 for none"),
		Seed:           fs.Int64("seed", 0, "Seed of the sample splits, 0 for a clock seed"),
	}
}

// LoadWithFlags loads the configuration and applies the flags explicitly
// set on fs, which must already be parsed.
func LoadWithFlags(fs *flag.FlagSet, f *Flags, appName string) (*Configuration, error) {
	conf, err := Load(*f.ConfigFile, *f.DotEnvFile)
	if err != nil {
		return nil, err
	}
	conf.AppName = appName

	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if set["env"] {
		conf.Env = *f.Env
	}
	if set["output_dir"] {
		conf.Storage.OutputDir = *f.OutputDir
	}
	if set["storage"] {
		conf.Storage.Driver = *f.StorageDriver
	}
	if set["bucket_name"] {
		conf.Storage.BucketName = *f.BucketName
	}
	if set["region"] {
		conf.Storage.Region = *f.Region
	}
	if set["native"] {
		conf.Kernel.Native = *f.Native
	}
	if set["num_routines"] {
		conf.Workers = *f.Workers
	}
	if set["inf_policy"] {
		conf.Search.InfPolicy = *f.InfPolicy
	}
	if set["max_iterations"] {
		conf.Search.MaxIterations = *f.MaxIterations
	}
	if set["timeout_seconds"] {
		conf.Kernel.TimeoutSeconds = *f.TimeoutSeconds
	}
	if set["seed"] {
		conf.Search.Seed = *f.Seed
	}
	return conf, nil
}
