package http

import (
	"encoding/json"
	"net/http"

	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/log"
)

// askRequest is the POST /ask payload.
type askRequest struct {
	Question string `json:"question"`
}

// handleAsk serves POST /ask: classify the question, resolve the intent
// against the view layer and return the formatted answer.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequestError("invalid request body", err.Error()).Write(w)
		return
	}
	question := sanitizeInput(req.Question)
	if question == "" {
		BadRequestError("missing question", "question field is required").Write(w)
		return
	}

	intent, err := s.classifier.Classify(r.Context(), question)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Classification failed",
			log.FieldError, err, log.FieldQuestion, question)
		InternalServerError(err.Error()).Write(w)
		return
	}

	answer, err := s.resolver.Resolve(r.Context(), intent)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Intent resolution failed",
			log.FieldError, err,
			log.FieldQuestion, question,
			log.FieldAction, string(intent.Action))
		InternalServerError(err.Error()).Write(w)
		return
	}

	NewJSONResponse().Data(answer).Write(w)
}
