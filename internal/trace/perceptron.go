package trace

// Sample is one labelled training example. Labels are 0 or 1.
type Sample struct {
	Features []float64 `json:"features" yaml:"features"`
	Label    int       `json:"label" yaml:"label"`
}

type PerceptronConfig struct {
	LearningRate   float64   `json:"learning_rate" yaml:"learning_rate" mapstructure:"learning_rate"`
	MaxEpochs      int       `json:"max_epochs" yaml:"max_epochs" mapstructure:"max_epochs"`
	InitialWeights []float64 `json:"initial_weights,omitempty" yaml:"initial_weights,omitempty" mapstructure:"initial_weights"`
	InitialBias    float64   `json:"initial_bias" yaml:"initial_bias" mapstructure:"initial_bias"`
}

func DefaultPerceptronConfig() PerceptronConfig {
	return PerceptronConfig{LearningRate: 0.1, MaxEpochs: 20}
}

// PerceptronStep records one sample presentation.
type PerceptronStep struct {
	Epoch      int       `json:"epoch"`
	Sample     int       `json:"sample"`
	Input      []float64 `json:"input"`
	Label      int       `json:"label"`
	Prediction int       `json:"prediction"`
	Updated    bool      `json:"updated"`
	// Weights and Bias are the parameters after this step's update.
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
	// EpochErrors counts misclassifications so far in the current epoch.
	EpochErrors int `json:"epoch_errors"`
	// Accuracy is the fraction of the whole dataset the updated weights classify correctly.
	Accuracy float64 `json:"accuracy"`
}

// PerceptronInput bundles a dataset with its training configuration.
type PerceptronInput struct {
	Samples []Sample         `json:"samples" yaml:"samples"`
	Config  PerceptronConfig `json:"config" yaml:"config"`
}

// Perceptron traces online perceptron training with a step activation.
// The trace ends in Success after the first epoch without a
// misclassification and in Failure once MaxEpochs are exhausted.
func Perceptron(samples []Sample, cfg PerceptronConfig) Trace[PerceptronStep] {
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = DefaultPerceptronConfig().LearningRate
	}
	if cfg.MaxEpochs <= 0 {
		cfg.MaxEpochs = DefaultPerceptronConfig().MaxEpochs
	}

	var b builder[PerceptronStep]
	if len(samples) == 0 {
		return b.finish(Failure, PerceptronStep{Sample: -1})
	}

	dim := len(samples[0].Features)
	w := make([]float64, dim)
	if len(cfg.InitialWeights) == dim {
		copy(w, cfg.InitialWeights)
	}
	bias := cfg.InitialBias

	for epoch := 0; epoch < cfg.MaxEpochs; epoch++ {
		errs := 0
		for i, s := range samples {
			pred := predict(w, bias, s.Features)
			diff := float64(s.Label - pred)
			updated := diff != 0
			if updated {
				errs++
				for k := range w {
					w[k] += cfg.LearningRate * diff * feature(s.Features, k)
				}
				bias += cfg.LearningRate * diff
			}

			step := PerceptronStep{
				Epoch:       epoch,
				Sample:      i,
				Input:       append([]float64(nil), s.Features...),
				Label:       s.Label,
				Prediction:  pred,
				Updated:     updated,
				Weights:     append([]float64(nil), w...),
				Bias:        bias,
				EpochErrors: errs,
				Accuracy:    accuracy(w, bias, samples),
			}
			b.emit(step)
		}
		if errs == 0 {
			return b.finish(Success, PerceptronStep{})
		}
	}

	return b.finish(Failure, PerceptronStep{})
}

// PerceptronTrace adapts Perceptron to the Generator shape.
func PerceptronTrace(in PerceptronInput) Trace[PerceptronStep] {
	return Perceptron(in.Samples, in.Config)
}

// Predict classifies x with the weights recorded in a step.
func (s PerceptronStep) Predict(x []float64) int {
	return predict(s.Weights, s.Bias, x)
}

func predict(w []float64, bias float64, x []float64) int {
	sum := bias
	for k := range w {
		sum += w[k] * feature(x, k)
	}
	if sum >= 0 {
		return 1
	}
	return 0
}

func accuracy(w []float64, bias float64, samples []Sample) float64 {
	correct := 0
	for _, s := range samples {
		if predict(w, bias, s.Features) == s.Label {
			correct++
		}
	}
	return float64(correct) / float64(len(samples))
}

// feature tolerates ragged samples by treating missing features as zero.
func feature(x []float64, k int) float64 {
	if k < len(x) {
		return x[k]
	}
	return 0
}

// LogicGate returns the four-row truth table for "and", "or" or "xor".
// XOR is not linearly separable and makes a good failure demo.
func LogicGate(name string) []Sample {
	var out func(a, b int) int
	switch name {
	case "and":
		out = func(a, b int) int { return a & b }
	case "or":
		out = func(a, b int) int { return a | b }
	case "xor":
		out = func(a, b int) int { return a ^ b }
	default:
		return nil
	}
	samples := make([]Sample, 0, 4)
	for _, a := range []int{0, 1} {
		for _, b := range []int{0, 1} {
			samples = append(samples, Sample{
				Features: []float64{float64(a), float64(b)},
				Label:    out(a, b),
			})
		}
	}
	return samples
}
