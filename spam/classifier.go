// Package spam implements the bag-of-words spam classifier behind /predict
// and /train: a multinomial naive Bayes model trained from a labeled CSV.
package spam

import (
	"encoding/csv"
	"encoding/json"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

const (
	LabelSpam    = "Spam"
	LabelNotSpam = "Not Spam"

	modelFileName = "spam_model.json"

	// Laplace smoothing factor.
	alpha = 1.0
)

// Prediction is the outcome for a single message.
type Prediction struct {
	Label      string
	Confidence float64
}

func (p *Prediction) IsSpam() bool {
	return p.Label == LabelSpam
}

// model holds the fitted parameters. Serialized as JSON by SaveModel.
type model struct {
	Classes        []string       `json:"classes"`
	Vocabulary     map[string]int `json:"vocabulary"`
	ClassLogPrior  []float64      `json:"class_log_prior"`
	FeatureLogProb [][]float64    `json:"feature_log_prob"`
	Accuracy       float64        `json:"accuracy"`
}

// Classifier is a multinomial naive Bayes spam classifier. Safe for
// concurrent Predict calls; Train and LoadModel swap the model atomically
// under the lock.
type Classifier struct {
	mu    sync.RWMutex
	model *model
}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Trained reports whether a model is loaded.
func (c *Classifier) Trained() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model != nil
}

// Accuracy returns the held-out accuracy from the last training run, or zero
// when no model is loaded.
func (c *Classifier) Accuracy() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.model == nil {
		return 0
	}
	return c.model.Accuracy
}

// Train fits the model from a labeled CSV with Category and Message columns.
// Duplicate and empty rows are dropped, ham/spam labels map to the public
// label names, and 20% of the shuffled data is held out to measure accuracy.
// The shuffle is seeded, so training is reproducible.
func (c *Classifier) Train(dataPath string) (float64, error) {
	labels, messages, err := loadDataset(dataPath)
	if err != nil {
		return 0, err
	}
	if len(messages) < 5 {
		return 0, errors.Errorf("not enough training data in %s: %d usable rows", dataPath, len(messages))
	}

	perm := rand.New(rand.NewSource(42)).Perm(len(messages))
	testSize := len(messages) / 5
	trainIdx, testIdx := perm[testSize:], perm[:testSize]

	m := fit(labels, messages, trainIdx)

	correct := 0
	for _, i := range testIdx {
		label, _ := m.predict(tokenize(messages[i]))
		if label == labels[i] {
			correct++
		}
	}
	if len(testIdx) > 0 {
		m.Accuracy = float64(correct) / float64(len(testIdx))
	}

	c.mu.Lock()
	c.model = m
	c.mu.Unlock()
	return m.Accuracy, nil
}

// Predict classifies a single message.
func (c *Classifier) Predict(message string) (*Prediction, error) {
	c.mu.RLock()
	m := c.model
	c.mu.RUnlock()
	if m == nil {
		return nil, errors.New("model not trained")
	}

	label, confidence := m.predict(tokenize(message))
	return &Prediction{Label: label, Confidence: confidence}, nil
}

// SaveModel writes the fitted model to modelDir.
func (c *Classifier) SaveModel(modelDir string) error {
	c.mu.RLock()
	m := c.model
	c.mu.RUnlock()
	if m == nil {
		return errors.New("model not trained")
	}

	if err := os.MkdirAll(modelDir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create model dir")
	}
	data, err := json.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	if err := os.WriteFile(filepath.Join(modelDir, modelFileName), data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write model")
	}
	return nil
}

// LoadModel reads a previously saved model from modelDir.
func (c *Classifier) LoadModel(modelDir string) error {
	data, err := os.ReadFile(filepath.Join(modelDir, modelFileName))
	if err != nil {
		return errors.Wrap(err, "failed to read model")
	}
	m := &model{}
	if err := json.Unmarshal(data, m); err != nil {
		return errors.Wrap(err, "failed to decode model")
	}

	c.mu.Lock()
	c.model = m
	c.mu.Unlock()
	return nil
}

func loadDataset(dataPath string) (labels, messages []string, err error) {
	f, err := os.Open(dataPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open training data")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to parse training data")
	}
	if len(records) < 2 {
		return nil, nil, errors.Errorf("no data rows in %s", dataPath)
	}

	categoryCol, messageCol := -1, -1
	for i, name := range records[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "category":
			categoryCol = i
		case "message":
			messageCol = i
		}
	}
	if categoryCol < 0 || messageCol < 0 {
		return nil, nil, errors.Errorf("missing Category or Message column in %s", dataPath)
	}

	seen := map[string]struct{}{}
	for _, record := range records[1:] {
		if len(record) <= categoryCol || len(record) <= messageCol {
			continue
		}
		label := strings.TrimSpace(record[categoryCol])
		message := record[messageCol]
		if label == "" || message == "" {
			continue
		}
		switch strings.ToLower(label) {
		case "ham":
			label = LabelNotSpam
		case "spam":
			label = LabelSpam
		}

		key := label + "\x00" + message
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		labels = append(labels, label)
		messages = append(messages, message)
	}
	return labels, messages, nil
}

func fit(labels, messages []string, trainIdx []int) *model {
	classIndex := map[string]int{}
	classes := []string{}
	for _, i := range trainIdx {
		if _, ok := classIndex[labels[i]]; !ok {
			classIndex[labels[i]] = len(classes)
			classes = append(classes, labels[i])
		}
	}

	vocabulary := map[string]int{}
	docs := make([][]string, 0, len(trainIdx))
	docClasses := make([]int, 0, len(trainIdx))
	for _, i := range trainIdx {
		tokens := tokenize(messages[i])
		for _, token := range tokens {
			if _, ok := vocabulary[token]; !ok {
				vocabulary[token] = len(vocabulary)
			}
		}
		docs = append(docs, tokens)
		docClasses = append(docClasses, classIndex[labels[i]])
	}

	classCounts := make([]float64, len(classes))
	termCounts := make([][]float64, len(classes))
	termTotals := make([]float64, len(classes))
	for c := range termCounts {
		termCounts[c] = make([]float64, len(vocabulary))
	}
	for d, tokens := range docs {
		c := docClasses[d]
		classCounts[c]++
		for _, token := range tokens {
			termCounts[c][vocabulary[token]]++
			termTotals[c]++
		}
	}

	m := &model{
		Classes:        classes,
		Vocabulary:     vocabulary,
		ClassLogPrior:  make([]float64, len(classes)),
		FeatureLogProb: make([][]float64, len(classes)),
	}
	totalDocs := float64(len(docs))
	for c := range classes {
		m.ClassLogPrior[c] = math.Log(classCounts[c] / totalDocs)
		m.FeatureLogProb[c] = make([]float64, len(vocabulary))
		denominator := termTotals[c] + alpha*float64(len(vocabulary))
		for t := range m.FeatureLogProb[c] {
			m.FeatureLogProb[c][t] = math.Log((termCounts[c][t] + alpha) / denominator)
		}
	}
	return m
}

// predict returns the best class and its posterior probability. Tokens
// outside the vocabulary are ignored, matching a fitted count vectorizer.
func (m *model) predict(tokens []string) (string, float64) {
	scores := make([]float64, len(m.Classes))
	copy(scores, m.ClassLogPrior)
	for _, token := range tokens {
		t, ok := m.Vocabulary[token]
		if !ok {
			continue
		}
		for c := range scores {
			scores[c] += m.FeatureLogProb[c][t]
		}
	}

	best := 0
	for c := range scores {
		if scores[c] > scores[best] {
			best = c
		}
	}
	confidence := math.Exp(scores[best] - floats.LogSumExp(scores))
	return m.Classes[best], confidence
}
