package bound

import (
	"context"
	"os"
	"path/filepath"

	E "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"tfsp/filestore"
	"tfsp/pattern"
	U "tfsp/util"
)

// Guarantee is one certified pattern set, or the reason it was not mined.
type Guarantee struct {
	Kind      string
	// Threshold is the support percentage handed to the oracle.
	Threshold float64
	Path      string
	Skipped   bool
	Reason    string
	Published string
}

type Certification struct {
	Dataset string
	Theta   float64
	Gap     float64
	FN      Guarantee
	FP      Guarantee
}

// Certifier re-mines a dataset at theta-gap, where no truly frequent pattern
// is missed, and at theta+gap, where no reported pattern is infrequent.
type Certifier struct {
	Oracle    pattern.Oracle
	OutputDir string
	// BoundName tags the file names, filestore.BoundRademacher when empty.
	BoundName string
	// Publisher, when set, receives a copy of every certified set. It must
	// not point at OutputDir itself.
	Publisher filestore.FileManager
}

// Certify mines the FN guarantee when theta-gap is not negative and always
// mines the FP guarantee. Oracle failures are returned as errors; a negative
// lower threshold is only reported.
func (c *Certifier) Certify(ctx context.Context, datasetPath string, theta, gap float64) (Certification, error) {
	name := U.DatasetName(datasetPath)
	cert := Certification{Dataset: name, Theta: theta, Gap: gap}
	if err := os.MkdirAll(c.OutputDir, 0755); err != nil {
		return cert, E.Wrapf(err, "failed to create output dir %s", c.OutputDir)
	}

	cert.FN = Guarantee{Kind: filestore.GuaranteeFN, Threshold: (theta - gap) * 100.0}
	if cert.FN.Threshold >= 0 {
		if err := c.mine(ctx, datasetPath, name, &cert.FN); err != nil {
			return cert, err
		}
	} else {
		cert.FN.Skipped = true
		cert.FN.Reason = "theta - gap is negative"
		log.WithFields(log.Fields{"dataset": datasetPath, "theta": theta,
			"gap": gap}).Warn("Theta - upper_bound is negative.")
	}

	cert.FP = Guarantee{Kind: filestore.GuaranteeFP, Threshold: (theta + gap) * 100.0}
	if err := c.mine(ctx, datasetPath, name, &cert.FP); err != nil {
		return cert, err
	}
	return cert, nil
}

func (c *Certifier) mine(ctx context.Context, datasetPath, name string, g *Guarantee) error {
	g.Path = filepath.Join(c.OutputDir, filestore.GuaranteeFileName(name, c.BoundName, g.Kind))
	if err := c.Oracle.Mine(ctx, datasetPath, g.Path, g.Threshold); err != nil {
		return E.Wrapf(err, "failed to mine %s guarantee of %s", g.Kind, datasetPath)
	}
	log.WithFields(log.Fields{"dataset": datasetPath, "kind": g.Kind,
		"threshold": U.FormatPercent(g.Threshold), "output": g.Path}).Info("Certified pattern set mined.")
	if c.Publisher == nil {
		return nil
	}
	return c.publish(name, g)
}

func (c *Certifier) publish(name string, g *Guarantee) error {
	f, err := os.Open(g.Path)
	if err != nil {
		return E.Wrapf(err, "failed to open certified set %s", g.Path)
	}
	defer f.Close()
	dir, fileName := c.Publisher.GetGuaranteeFilePathAndName(name, c.BoundName, g.Kind)
	if err := c.Publisher.Create(dir, fileName, f); err != nil {
		return E.Wrapf(err, "failed to publish certified set %s", g.Path)
	}
	g.Published = dir + fileName
	return nil
}
