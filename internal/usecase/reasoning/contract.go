package reasoning

import (
	"context"

	"github.com/clauselab/regdex/internal/transport/openai"
)

// Completer is the generative text service contract: one prompt in, one
// generated text out. The provider is a shared, rate-limited resource.
type Completer interface {
	Complete(ctx context.Context, req openai.CompletionRequest) (string, error)
}
