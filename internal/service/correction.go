package service

import (
	"strings"

	"github.com/openforum-dev/openforum/internal/search"
	"github.com/openforum-dev/openforum/shared/logger"
)

// correctText suggests a per-term respelling of the whole query.
// Terms the dictionary already knows pass through unchanged; a term
// with no close neighbour keeps its original form. Returns the
// corrected text and whether any term actually changed. Suggester
// errors degrade to "no correction" instead of failing the search.
func correctText(engine search.Engine, text string) (string, bool) {
	terms := strings.Fields(strings.ToLower(text))
	if len(terms) == 0 {
		return "", false
	}

	changed := false
	for i, term := range terms {
		suggestion, err := engine.Suggest(term)
		if err != nil {
			logger.Log.Warn("spelling suggestion failed", "term", term, "error", err.Error())
			return "", false
		}
		if suggestion != "" && suggestion != term {
			terms[i] = suggestion
			changed = true
		}
	}
	if !changed {
		return "", false
	}
	return strings.Join(terms, " "), true
}
