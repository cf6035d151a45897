package classify

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ppiankov/evadvisor/internal/model"
)

// TrainOptions controls the gradient descent fit
type TrainOptions struct {
	Iterations   int
	LearningRate float64
	L2           float64
}

// DefaultTrainOptions mirrors model.DefaultConfig().Training
func DefaultTrainOptions() TrainOptions {
	t := model.DefaultConfig().Training
	return TrainOptions{Iterations: t.Iterations, LearningRate: t.LearningRate, L2: t.L2}
}

// OptionsFromConfig converts the training section of the config
func OptionsFromConfig(cfg model.TrainingConfig) TrainOptions {
	return TrainOptions{
		Iterations:   cfg.Iterations,
		LearningRate: cfg.LearningRate,
		L2:           cfg.L2,
	}
}

// Prediction is the classifier output for one message
type Prediction struct {
	Intent        model.Intent
	Confidence    float64                  // Probability of Intent
	Probabilities map[model.Intent]float64 // Sums to 1 over Labels()
	Known         int                      // In-vocabulary tokens in the message
}

// Model is a multinomial logistic regression over TF-IDF features.
// It is immutable after Fit and safe for concurrent use.
type Model struct {
	vectorizer *Vectorizer
	labels     []model.Intent
	weights    [][]float64 // [label][term]
	bias       []float64
}

// Fit trains a model on the examples. Weights start at zero and full-batch
// gradient descent runs a fixed number of iterations, so the same examples
// and options always produce the same model.
func Fit(examples []model.TrainingExample, opts TrainOptions) (*Model, error) {
	if len(examples) == 0 {
		return nil, fmt.Errorf("no training examples")
	}
	if opts.Iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", opts.Iterations)
	}
	if opts.LearningRate <= 0 {
		return nil, fmt.Errorf("learning rate must be positive, got %g", opts.LearningRate)
	}

	docs := make([]string, len(examples))
	for i, ex := range examples {
		docs[i] = strings.ToLower(ex.Phrase)
	}
	vec := FitVectorizer(docs)

	labelIndex := make(map[model.Intent]int)
	var labels []model.Intent
	for _, ex := range examples {
		if !ex.Intent.Valid() {
			return nil, fmt.Errorf("example %q has invalid intent %s", ex.Phrase, ex.Intent)
		}
		if _, ok := labelIndex[ex.Intent]; !ok {
			labelIndex[ex.Intent] = 0
			labels = append(labels, ex.Intent)
		}
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	for i, l := range labels {
		labelIndex[l] = i
	}

	x := make([][]float64, len(docs))
	y := make([]int, len(docs))
	for i, doc := range docs {
		x[i], _ = vec.Transform(doc)
		y[i] = labelIndex[examples[i].Intent]
	}

	k, d, n := len(labels), vec.Size(), float64(len(docs))
	m := &Model{
		vectorizer: vec,
		labels:     labels,
		weights:    make([][]float64, k),
		bias:       make([]float64, k),
	}
	for c := range m.weights {
		m.weights[c] = make([]float64, d)
	}

	gradW := make([][]float64, k)
	for c := range gradW {
		gradW[c] = make([]float64, d)
	}
	gradB := make([]float64, k)
	probs := make([]float64, k)

	for iter := 0; iter < opts.Iterations; iter++ {
		for c := 0; c < k; c++ {
			clear(gradW[c])
		}
		clear(gradB)

		for i, xi := range x {
			m.scores(xi, probs)
			softmax(probs)
			for c := 0; c < k; c++ {
				g := probs[c]
				if c == y[i] {
					g -= 1
				}
				if g == 0 {
					continue
				}
				gradB[c] += g
				row := gradW[c]
				for j, v := range xi {
					if v != 0 {
						row[j] += g * v
					}
				}
			}
		}

		for c := 0; c < k; c++ {
			row := m.weights[c]
			for j := range row {
				row[j] -= opts.LearningRate * (gradW[c][j]/n + opts.L2*row[j])
			}
			m.bias[c] -= opts.LearningRate * gradB[c] / n
		}
	}

	return m, nil
}

// Predict classifies a message. The message is normalized by lower-casing.
func (m *Model) Predict(message string) Prediction {
	xi, known := m.vectorizer.Transform(strings.ToLower(message))

	probs := make([]float64, len(m.labels))
	m.scores(xi, probs)
	softmax(probs)

	best := 0
	for c := 1; c < len(probs); c++ {
		if probs[c] > probs[best] {
			best = c
		}
	}

	dist := make(map[model.Intent]float64, len(m.labels))
	for c, l := range m.labels {
		dist[l] = probs[c]
	}

	return Prediction{
		Intent:        m.labels[best],
		Confidence:    probs[best],
		Probabilities: dist,
		Known:         known,
	}
}

// Labels returns the intents the model was trained on, in enum order
func (m *Model) Labels() []model.Intent {
	out := make([]model.Intent, len(m.labels))
	copy(out, m.labels)
	return out
}

// Vocabulary returns the model's terms
func (m *Model) Vocabulary() []string {
	return m.vectorizer.Terms()
}

func (m *Model) scores(xi []float64, out []float64) {
	for c, row := range m.weights {
		s := m.bias[c]
		for j, v := range xi {
			if v != 0 {
				s += row[j] * v
			}
		}
		out[c] = s
	}
}

// softmax normalizes scores in place
func softmax(s []float64) {
	maxScore := math.Inf(-1)
	for _, v := range s {
		if v > maxScore {
			maxScore = v
		}
	}
	var sum float64
	for i, v := range s {
		s[i] = math.Exp(v - maxScore)
		sum += s[i]
	}
	for i := range s {
		s[i] /= sum
	}
}
