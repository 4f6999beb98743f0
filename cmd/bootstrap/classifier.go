package bootstrap

import (
	"context"

	"github.com/VictorAraujo38/akkadian-test/config"
	"github.com/VictorAraujo38/akkadian-test/internal/service/classifier"
	"github.com/VictorAraujo38/akkadian-test/pkg/metrics"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/sirupsen/logrus"
)

// newSymptomClassifier builds the configured triage backend. Model backends
// are wrapped so that any failure degrades to keyword matching; a backend
// that cannot be constructed degrades at startup the same way. The returned
// closer is nil when there is nothing to release.
func newSymptomClassifier(
	ctx context.Context,
	cfg config.ClassifierConfig,
	log *logrus.Logger,
	m *metrics.SchedulingMetrics,
) (classifier.SymptomClassifier, func() error) {
	keyword := classifier.NewKeywordClassifier(log)

	var (
		primary classifier.SymptomClassifier
		closer  func() error
	)

	switch cfg.Provider {
	case config.ClassifierBedrock:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			log.Warnf("Failed to load AWS config, using keyword classifier: %+v", err)
			return keyword, nil
		}
		model, err := classifier.NewBedrockModel(bedrockruntime.NewFromConfig(awsCfg), cfg.BedrockModelID)
		if err != nil {
			log.Warnf("Failed to create Bedrock classifier, using keyword classifier: %+v", err)
			return keyword, nil
		}
		primary = classifier.NewModelClassifier(model)

	case config.ClassifierGemini:
		model, err := classifier.NewGeminiModel(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			log.Warnf("Failed to create Gemini classifier, using keyword classifier: %+v", err)
			return keyword, nil
		}
		primary = classifier.NewModelClassifier(model)
		closer = model.Close

	case config.ClassifierKeyword, "":
		log.Info("Using keyword symptom classifier")
		return keyword, nil

	default:
		log.Warnf("Unknown classifier provider %q, using keyword classifier", cfg.Provider)
		return keyword, nil
	}

	log.Infof("Using %s symptom classifier with keyword fallback", cfg.Provider)
	return classifier.NewFallbackClassifier(primary, keyword, cfg.Timeout, log, m), closer
}
