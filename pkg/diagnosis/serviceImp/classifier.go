package serviceImp

import (
	"context"

	"kisan/pkg/diagnosis/service"
)

// cannedClassifier stands in for a disease model and reports the same
// finding for every photo.
type cannedClassifier struct{}

func NewCannedClassifier() service.Classifier { return cannedClassifier{} }

func (cannedClassifier) Classify(ctx context.Context, _ []byte) (service.Finding, error) {
	if err := ctx.Err(); err != nil {
		return service.Finding{}, err
	}
	return service.Finding{
		Disease:    "Early Blight (Alternaria solani)",
		Confidence: 92,
		Severity:   "Moderate",
		Treatment: []string{
			"Remove affected leaves immediately",
			"Apply copper-based fungicide spray",
			"Improve air circulation around plants",
			"Avoid overhead watering",
		},
		Prevention: []string{
			"Use disease-resistant tomato varieties",
			"Practice crop rotation",
			"Maintain proper plant spacing",
			"Apply mulch to prevent soil splash",
		},
		LocalTreatments: []string{
			"Neem oil spray (available at local stores)",
			"Copper sulfate solution",
			"Baking soda spray (1 tsp per liter water)",
		},
	}, nil
}
