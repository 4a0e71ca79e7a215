package task

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"tfsp/bound"
	"tfsp/command"
	C "tfsp/config"
	"tfsp/dataset"
	"tfsp/filestore"
	"tfsp/kernel"
	"tfsp/kernel/native"
	"tfsp/pattern"
	serviceDisk "tfsp/services/disk"
	serviceGCS "tfsp/services/gcstorage"
	serviceS3 "tfsp/services/s3"
)

// Result logs, one value per line.
const (
	RadeBoundLog        = "radeBound.txt"
	RadeApproxLog       = "radeApprox.txt"
	RadeBoundSingleLog  = "radeBound_singleDataset.txt"
	RadeApproxSingleLog = "radeApprox_singleDataset.txt"
	VCBoundSingleLog    = "vcBound_singleDataset.txt"
)

var taskLog = log.WithField("prefix", "Task#TFSP")

// Components is everything the jobs run with.
type Components struct {
	Conf      *C.Configuration
	Oracle    pattern.Oracle
	Lengths   kernel.LengthStatistics
	Analytic  kernel.AnalyticKernel
	Empirical kernel.EmpiricalKernel
	// Splitter is the base of the sample splits; sweep jobs split with
	// Splitter.Stream(job index).
	Splitter  *dataset.Splitter
	// Files stores the result logs. Publisher gets a copy of the certified
	// sets and is nil when everything stays on local disk.
	Files     filestore.FileManager
	Publisher filestore.FileManager
}

// NewComponents wires the kernels, the oracle and the storage driver
// selected by conf.
func NewComponents(conf *C.Configuration) (*Components, error) {
	runner := command.NewRunner(conf.KernelTimeout(), conf.Kernel.MaxRetries)
	comps := &Components{
		Conf: conf,
		Oracle: &pattern.SPMFOracle{
			Runner:    runner,
			Java:      conf.Kernel.Java,
			MaxHeap:   conf.Kernel.JavaMaxHeap,
			Jar:       conf.Kernel.SPMFJar,
			Algorithm: conf.Kernel.MiningAlgorithm,
		},
		Splitter: dataset.NewSplitter(nil),
	}
	if conf.Search.Seed != 0 {
		comps.Splitter = dataset.NewSplitterWithSeed(conf.Search.Seed)
	}

	if conf.Kernel.Native {
		cache, err := native.NewDatasetCache(conf.Kernel.CacheSize)
		if err != nil {
			return nil, err
		}
		comps.Lengths = &native.Lengths{Cache: cache}
		comps.Analytic = &native.RadeBound{Cache: cache}
		comps.Empirical = &native.ApproxRade{Cache: cache}
	} else {
		comps.Lengths = &kernel.LengthsCommand{Runner: runner, Binary: conf.Kernel.ComputeLengths}
		comps.Analytic = &kernel.RadeBoundCommand{Runner: runner, Binary: conf.Kernel.RadeBound}
		comps.Empirical = &kernel.ApproxRadeCommand{Runner: runner, Binary: conf.Kernel.ApproxRade}
	}

	files, err := NewFileManager(conf.Storage)
	if err != nil {
		return nil, err
	}
	comps.Files = files
	if conf.Storage.Driver != C.StorageDisk {
		comps.Publisher = files
	}

	taskLog.WithFields(log.Fields{"native": conf.Kernel.Native, "storage": conf.Storage.Driver,
		"output_dir": conf.Storage.OutputDir}).Info("Initialised components.")
	return comps, nil
}

// NewFileManager returns the driver for result logs.
func NewFileManager(conf C.StorageConf) (filestore.FileManager, error) {
	switch conf.Driver {
	case C.StorageDisk, "":
		return serviceDisk.New(conf.OutputDir), nil
	case C.StorageGCS:
		fm, err := serviceGCS.New(conf.BucketName)
		if err != nil {
			taskLog.WithError(err).Error("Failed to init New GCS Client")
			return nil, err
		}
		return fm, nil
	case C.StorageS3:
		fm, err := serviceS3.New(conf.BucketName, conf.Region)
		if err != nil {
			taskLog.WithError(err).Error("Failed to init New S3 Client")
			return nil, err
		}
		return fm, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", conf.Driver)
}

func (c *Components) analyticSearch() *bound.AnalyticSearch {
	return &bound.AnalyticSearch{Lengths: c.Lengths, Kernel: c.Analytic, InfPolicy: c.Conf.Search.InfPolicy}
}

func (c *Components) empiricalSearch() *bound.EmpiricalSearch {
	return &bound.EmpiricalSearch{Oracle: c.Oracle, Kernel: c.Empirical,
		InitialKappa: c.Conf.Search.InitialKappa, MaxIterations: c.Conf.Search.MaxIterations}
}

func (c *Components) certifier() *bound.Certifier {
	return &bound.Certifier{Oracle: c.Oracle, OutputDir: c.Conf.Storage.OutputDir, Publisher: c.Publisher}
}
