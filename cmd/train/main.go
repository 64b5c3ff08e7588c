// Command train runs ScInOL on a synthetic sparse regression stream and
// reports the running loss and the recovered coefficients. The -scale
// flag multiplies every feature value by a constant, which should leave
// the loss trajectory unchanged.
package main

import (
	"flag"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/mihahauke/yamall/core"
	"github.com/mihahauke/yamall/ml"
)

func main() {
	var (
		bits     = flag.Int("bits", 18, "hash bits; the model addresses 2^bits coordinates")
		samples  = flag.Int("samples", 100000, "number of synthetic samples to train on")
		seed     = flag.Uint64("seed", 1, "random seed")
		scale    = flag.Float64("scale", 1, "multiply every feature value by this constant")
		noise    = flag.Float64("noise", 0.1, "label noise standard deviation")
		logEvery = flag.Int("log-every", 10000, "report running loss every N samples")
	)
	flag.Parse()

	log := logrus.New()

	hasher, err := core.NewFeatureHasher(*bits)
	if err != nil {
		log.WithError(err).Fatal("bad hasher configuration")
	}
	learner, err := ml.NewDefaultScInOL(*bits)
	if err != nil {
		log.WithError(err).Fatal("bad learner configuration")
	}
	loss := ml.SquaredLoss{}
	learner.SetLoss(loss)
	log.WithFields(logrus.Fields{
		"bits": *bits,
		"loss": loss.String(),
	}).Info("training ScInOL on synthetic stream")

	// Fixed iteration order keeps the stream reproducible for a seed.
	names := []string{"bias", "age", "height", "income"}
	trueWeights := map[string]float64{
		"bias":   0.1,
		"age":    0.7,
		"height": -0.4,
		"income": 0.2,
	}
	src := rand.NewSource(*seed)
	feature := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	labelNoise := distuv.Normal{Mu: 0, Sigma: *noise, Src: src}

	var lossSum float64
	for n := 1; n <= *samples; n++ {
		features := make(map[string]float64, len(names))
		var label float64
		for _, name := range names {
			x := 1.0
			if name != "bias" {
				x = feature.Rand()
			}
			label += trueWeights[name] * x
			features[name] = x * *scale
		}
		label += labelNoise.Rand()

		sample := core.NewInstance(label, hasher.Vectorize(features))
		pred, err := learner.Update(sample)
		if err != nil {
			log.WithError(err).Fatal("update failed")
		}
		lossSum += loss.Value(pred, label)
		if n%*logEvery == 0 {
			log.WithFields(logrus.Fields{
				"samples":  n,
				"avg_loss": lossSum / float64(*logEvery),
			}).Info("progress")
			lossSum = 0
		}
	}

	weights := learner.GetWeights()
	for _, name := range names {
		want := trueWeights[name]
		idx := hasher.Hash(name)
		var got float64
		for _, e := range weights {
			if e.Index == idx {
				got = e.Value
				break
			}
		}
		log.WithFields(logrus.Fields{
			"feature": name,
			"learned": got,
			"true":    want,
		}).Info("coefficient")
	}
}
