// Package predictor applies the persisted vectorizer+classifier pair to
// one new document.
package predictor

import (
	"errors"
	"strings"

	"probclass/internal/label"
	"probclass/internal/modelstore"
)

// ErrEmptyInput is returned when prediction is requested on blank text.
// Predicting on a meaningless zero vector is a usage error, not a
// degenerate prediction.
var ErrEmptyInput = errors.New("document text is empty")

// Predictor loads the current model pair per call, so it always sees a
// complete published pair even while a training run replaces it.
type Predictor struct {
	models *modelstore.Store
}

func New(models *modelstore.Store) *Predictor {
	return &Predictor{models: models}
}

// Predict classifies one document's extracted text. The text is
// transformed through the stored vectorizer (never re-fitted); a
// prediction that does not decompose into three parts degrades to the
// Unknown label, never an error.
func (p *Predictor) Predict(text string) (label.Label, error) {
	if strings.TrimSpace(text) == "" {
		return label.Label{}, ErrEmptyInput
	}

	vec, clf, err := p.models.Load()
	if err != nil {
		return label.Label{}, err
	}

	predicted, _ := label.ParseClass(clf.Predict(vec.Transform(text)))
	return predicted, nil
}
