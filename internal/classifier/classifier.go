// Package classifier maps free-text budget questions to structured intents.
// Two implementations exist: a Gemini-backed classifier and a rule-based one.
// The Gemini classifier degrades to the rules on any API failure, so the
// assistant keeps answering when the model is unreachable.
package classifier

import (
	"context"

	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/core"
)

// Classifier turns a natural-language question into an intent. It never
// produces numbers; every dollar figure in an answer comes from the view
// layer downstream.
type Classifier interface {
	Classify(ctx context.Context, question string) (core.Intent, error)
}
